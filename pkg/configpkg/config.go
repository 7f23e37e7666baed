// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver            string        `mapstructure:"DB_DRIVER"`
	DBSource            string        `mapstructure:"DB_SOURCE"`
	ServerAddress       string        `mapstructure:"SERVER_ADDRESS"`
	TokenSymmetricKey   string        `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	TokenKind           string        `mapstructure:"TOKEN_KIND"`
	AccessTokenDuration time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	Environement        string        `mapstructure:"GO_ENV"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`

	// LenderAccountID is the account disbursing loans and receiving installments.
	LenderAccountID int32 `mapstructure:"LENDER_ACCOUNT_ID"`
	// LoanProductsFile overrides the built-in loan product catalog when set.
	LoanProductsFile string `mapstructure:"LOAN_PRODUCTS_FILE"`

	ProcessorSchedule   string        `mapstructure:"PROCESSOR_SCHEDULE"`
	ProcessorRunOnStart bool          `mapstructure:"PROCESSOR_RUN_ON_START"`
	ProcessorLockTTL    time.Duration `mapstructure:"PROCESSOR_LOCK_TTL"`
	ProcessorMaxCatchUp int           `mapstructure:"PROCESSOR_MAX_CATCH_UP"`

	// RedisAddress enables the distributed processing lease when set.
	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

// Load read configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("ACCESS_TOKEN_DURATION", 15*time.Minute)
	v.SetDefault("TOKEN_KIND", "paseto")
	v.SetDefault("PROCESSOR_SCHEDULE", "@hourly")
	v.SetDefault("PROCESSOR_RUN_ON_START", true)
	v.SetDefault("PROCESSOR_LOCK_TTL", 5*time.Minute)
	v.SetDefault("PROCESSOR_MAX_CATCH_UP", 31)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
