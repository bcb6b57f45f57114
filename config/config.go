package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	StorageDriver  string        `envconfig:"STORAGE_DRIVER"   default:"postgres"`
	DBMaxConns     int32         `envconfig:"DB_MAX_CONNS"     default:"10"`
	MigrateOnStart bool          `envconfig:"MIGRATE_ON_START" default:"true"`
	HTTPAddr       string        `envconfig:"HTTP_ADDR"        default:":8080"`
	JWTSecret      string        `envconfig:"JWT_SECRET"       required:"true"`
	TokenTTL       time.Duration `envconfig:"TOKEN_TTL"        default:"24h"`
	BcryptCost     int           `envconfig:"BCRYPT_COST"      default:"10"`
	LogLevel       string        `envconfig:"LOG_LEVEL"        default:"info"`
	LogFormat      string        `envconfig:"LOG_FORMAT"       default:"json"`
	AdminEmail     string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword  string        `envconfig:"ADMIN_PASSWORD"`
	AdminFirstName string        `envconfig:"ADMIN_FIRST_NAME" default:"Admin"`
	AdminLastName  string        `envconfig:"ADMIN_LAST_NAME"  default:"HBnB"`
}

// Load reads an optional .env file from the working directory, then the
// process environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("config: DB_MAX_CONNS must be positive, got %d", c.DBMaxConns)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// HasAdmin reports whether an administrator should be bootstrapped.
func (c Config) HasAdmin() bool { return c.AdminEmail != "" }
