package configs

import (
	"mealhub/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(source string) {
	database, err := gorm.Open(sqlite.Open(source), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect database")
	}
	db = database
}

func SetupDatabase() {
	db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.Menu{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.DeliveryAssignment{},
		&entity.Payment{},
		&entity.PromoCode{}, &entity.PromoCodeUsage{},
		&entity.Review{},
	)
}
