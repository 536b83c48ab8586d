package configs

import (
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBSource string `env:"DB_SOURCE" envDefault:"mealhub.db"`
	Port     string `env:"PORT" envDefault:"8000"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"changeme"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// payment gateway
	ChapaSecretKey   string `env:"CHAPA_SECRET_KEY"`
	ChapaBaseURL     string `env:"CHAPA_BASE_URL"`
	Currency         string `env:"PAYMENT_CURRENCY" envDefault:"ETB"`
	PlaceholderEmail string `env:"PAYMENT_PLACEHOLDER_EMAIL" envDefault:"guest@mealhub.local"`

	// PublicBaseURL is where the gateway reaches our webhook; FrontendURL is
	// the default return target when the client supplies no origin.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8000"`
	FrontendURL   string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// optional kafka event sink; empty brokers = in-process bus
	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"mealhub-events"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SeedDemo      bool   `env:"SEED_DEMO" envDefault:"false"`
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, using environment as-is")
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		logrus.WithError(err).Fatal("config parse")
	}
	return &c
}
