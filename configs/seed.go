package configs

import (
	"time"

	"mealhub/entity"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the back-office user once, from ADMIN_EMAIL/ADMIN_PASSWORD.
func SeedAdmin(cfg *Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logrus.Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Admin",
		LastName:  "Seed",
		Role:      "admin",
	}
	return db.Create(&admin).Error
}

// SeedDemo loads a small Addis Ababa fixture set for local runs: one owner,
// one restaurant with menus, one customer, two available partners and a promo.
func SeedDemo() error {
	var count int64
	db.Model(&entity.Restaurant{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)

	owner := entity.User{Email: "owner@mealhub.local", Password: string(hash), FirstName: "Owner", Role: "owner"}
	customer := entity.User{Email: "customer@mealhub.local", Password: string(hash), FirstName: "Customer", Role: "customer"}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}
	if err := db.Create(&customer).Error; err != nil {
		return err
	}

	lat1, lng1 := 9.0270, 38.7370
	lat2, lng2 := 9.0410, 38.7610
	partners := []entity.User{
		{Email: "partner1@mealhub.local", Password: string(hash), FirstName: "Abel", Role: "partner",
			AvailableForDelivery: true, Lat: &lat1, Lng: &lng1},
		{Email: "partner2@mealhub.local", Password: string(hash), FirstName: "Sara", Role: "partner",
			AvailableForDelivery: true, Lat: &lat2, Lng: &lng2},
	}
	if err := db.Create(&partners).Error; err != nil {
		return err
	}

	rest := entity.Restaurant{
		Name: "Bole Bistro", Address: "Bole Road, Addis Ababa",
		Lat: 9.03, Lng: 38.74, DeliveryRadiusKm: 5,
		OwnerID: owner.ID,
		Menus: []entity.Menu{
			{Name: "Doro Wat", Price: decimal.RequireFromString("180.00"), Available: true},
			{Name: "Tibs", Price: decimal.RequireFromString("150.00"), Available: true},
			{Name: "Shiro", Price: decimal.RequireFromString("95.00"), Available: true},
		},
	}
	if err := db.Create(&rest).Error; err != nil {
		return err
	}

	expires := time.Now().AddDate(0, 3, 0)
	promo := entity.PromoCode{
		Code:      "SAVE10",
		PromoType: entity.PromoPercentage,
		Value:     decimal.NewFromInt(10),
		MinOrder:  decimal.NewFromInt(100),
		UsageLimit: 100,
		ExpiresAt: &expires,
		Active:    true,
	}
	return db.Create(&promo).Error
}
