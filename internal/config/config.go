package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Ozon            Ozon            `mapstructure:",squash"`
	OrderSync       OrderSync       `mapstructure:",squash"`
	TransactionSync TransactionSync `mapstructure:",squash"`
	AdvertisingSync AdvertisingSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Ozon holds credentials for both marketplace APIs: the Seller API (orders
// and finance transactions) and the Performance API (advertising
// statistics). RateLimitMillis is shared across every outbound call.
type Ozon struct {
	SellerURL        string `mapstructure:"ozon_seller_url"`
	PerformanceURL   string `mapstructure:"ozon_performance_url"`
	ClientID         string `mapstructure:"ozon_client_id"`
	APIKey           string `mapstructure:"ozon_api_key"`
	PerformanceID    string `mapstructure:"ozon_performance_client_id"`
	PerformanceKey   string `mapstructure:"ozon_performance_client_secret"`
	RateLimitMillis  int    `mapstructure:"ozon_rate_limit_millis"`
	SyncStartDate    string `mapstructure:"ozon_sync_start_date"`
	TransactionsFrom string `mapstructure:"ozon_transactions_start_date"`

	// Campaigns billed per order instead of per click. Their daily report
	// rows are merged by (date, sku) before persisting.
	CPOCampaignIDs []string `mapstructure:"ozon_cpo_campaign_ids"`
}

type OrderSync struct {
	CronSchedule string `mapstructure:"order_sync_cron"`
	PageSize     int    `mapstructure:"order_sync_page_size"`
	Enabled      bool   `mapstructure:"order_sync_enabled"`
}

type TransactionSync struct {
	CronSchedule string `mapstructure:"transaction_sync_cron"`
	PageSize     int    `mapstructure:"transaction_sync_page_size"`
	Enabled      bool   `mapstructure:"transaction_sync_enabled"`
}

type AdvertisingSync struct {
	CronSchedule string `mapstructure:"advertising_sync_cron"`
	Enabled      bool   `mapstructure:"advertising_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/economics")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("OZON_SELLER_URL", "https://api-seller.ozon.ru")
	viper.SetDefault("OZON_PERFORMANCE_URL", "https://api-performance.ozon.ru")
	viper.SetDefault("OZON_CLIENT_ID", "your_client_id")
	viper.SetDefault("OZON_API_KEY", "your_api_key")
	viper.SetDefault("OZON_PERFORMANCE_CLIENT_ID", "your_performance_client_id")
	viper.SetDefault("OZON_PERFORMANCE_CLIENT_SECRET", "your_performance_client_secret")
	viper.SetDefault("OZON_RATE_LIMIT_MILLIS", 300)
	viper.SetDefault("OZON_SYNC_START_DATE", "2024-10-01")
	viper.SetDefault("OZON_TRANSACTIONS_START_DATE", "2024-10-01")
	viper.SetDefault("OZON_CPO_CAMPAIGN_IDS", "12950100")

	viper.SetDefault("ORDER_SYNC_CRON", "0 3 * * *")
	viper.SetDefault("ORDER_SYNC_PAGE_SIZE", 1000)
	viper.SetDefault("ORDER_SYNC_ENABLED", false)

	viper.SetDefault("TRANSACTION_SYNC_CRON", "30 3 * * *")
	viper.SetDefault("TRANSACTION_SYNC_PAGE_SIZE", 1000)
	viper.SetDefault("TRANSACTION_SYNC_ENABLED", false)

	viper.SetDefault("ADVERTISING_SYNC_CRON", "0 4 * * *")
	viper.SetDefault("ADVERTISING_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using environment variables loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// RateLimit returns the minimum interval between outbound marketplace calls.
func (c *Config) RateLimit() time.Duration {
	return time.Duration(c.Ozon.RateLimitMillis) * time.Millisecond
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded .env from: ", location)
			return
		}
	}

	logrus.Warn("no .env file found, relying on process environment")
}
