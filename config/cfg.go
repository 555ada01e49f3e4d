package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/salesboard/internal/api/http"
	"github.com/jekabolt/salesboard/internal/dashboard"
	"github.com/jekabolt/salesboard/internal/store"
	"github.com/jekabolt/salesboard/internal/warehouse"
	"github.com/jekabolt/salesboard/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config        `mapstructure:"mysql"`
	Logger    log.Config          `mapstructure:"logger"`
	HTTP      httpapi.Config      `mapstructure:"http"`
	Admin     httpapi.AdminConfig `mapstructure:"admin"`
	Warehouse warehouse.Config    `mapstructure:"warehouse"`
	Dashboard dashboard.Config    `mapstructure:"dashboard"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Flat names (MYSQL_DSN, ADMIN_KEY) are bound explicitly; any other key can be
// set with double underscores, e.g. DASHBOARD__TIMEZONE for dashboard.timezone.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	setDefaults(v)
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/salesboard")
		v.AddConfigPath("/etc/salesboard")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %w", err)
	}

	if config.DB.DSN == "" {
		config.DB.DSN = dsnFromEnv()
	}
	config.HTTP.AllowedOrigins = splitList(config.HTTP.AllowedOrigins)
	if config.Warehouse.Timezone == "" {
		config.Warehouse.Timezone = config.Dashboard.Timezone
	}

	return &config, nil
}

// dsnFromEnv builds a DSN from MYSQL_* env vars when MYSQL_DSN is not set.
func dsnFromEnv() string {
	host := os.Getenv("MYSQL_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("MYSQL_PORT")
	if port == "" {
		port = "3306"
	}
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	database := os.Getenv("MYSQL_DATABASE")
	if user == "" || password == "" || database == "" {
		return ""
	}
	params := "charset=utf8mb4&parseTime=true"
	if os.Getenv("MYSQL_TLS") == "true" {
		params += "&tls=custom"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

// splitList accepts both a TOML array and a single comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func setDefaults(v *viper.Viper) {
	d := dashboard.DefaultConfig()

	v.SetDefault("http.address", "0.0.0.0")
	v.SetDefault("http.port", "8080")

	v.SetDefault("mysql.automigrate", true)
	v.SetDefault("mysql.max_open_connections", 10)
	v.SetDefault("mysql.max_idle_connections", 5)

	v.SetDefault("warehouse.enabled", true)
	v.SetDefault("warehouse.orders_table", warehouse.DefaultOrdersTable)
	v.SetDefault("warehouse.location", "australia-southeast1")

	v.SetDefault("dashboard.timezone", d.Timezone)
	v.SetDefault("dashboard.worker_interval", d.WorkerInterval)
	v.SetDefault("dashboard.jitter", d.Jitter)
	v.SetDefault("dashboard.initial_delay", d.InitialDelay)
	v.SetDefault("dashboard.idle_after", d.IdleAfter)
	v.SetDefault("dashboard.fetch_timeout", d.FetchTimeout)
	v.SetDefault("dashboard.fy_start_month", d.FYStartMonth)

	v.SetDefault("admin.rate_limit_window", "1m")
	v.SetDefault("admin.rate_limit_max", 10)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	// MySQL
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	v.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	v.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	v.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT", "PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Admin
	v.BindEnv("admin.key", "ADMIN_KEY")
	v.BindEnv("admin.rate_limit_window", "ADMIN_RATE_LIMIT_WINDOW")
	v.BindEnv("admin.rate_limit_max", "ADMIN_RATE_LIMIT_MAX")

	// Warehouse
	v.BindEnv("warehouse.project_id", "WAREHOUSE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	v.BindEnv("warehouse.dataset", "WAREHOUSE_DATASET")
	v.BindEnv("warehouse.orders_table", "WAREHOUSE_ORDERS_TABLE")
	v.BindEnv("warehouse.location", "WAREHOUSE_LOCATION")
	v.BindEnv("warehouse.timezone", "WAREHOUSE_TIMEZONE")
	v.BindEnv("warehouse.credentials_json", "WAREHOUSE_CREDENTIALS_JSON", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("warehouse.enabled", "WAREHOUSE_ENABLED")

	// Dashboard
	v.BindEnv("dashboard.timezone", "DASHBOARD_TIMEZONE")
	v.BindEnv("dashboard.worker_interval", "DASHBOARD_WORKER_INTERVAL")
	v.BindEnv("dashboard.jitter", "DASHBOARD_JITTER")
	v.BindEnv("dashboard.initial_delay", "DASHBOARD_INITIAL_DELAY")
	v.BindEnv("dashboard.idle_after", "DASHBOARD_IDLE_AFTER")
	v.BindEnv("dashboard.fetch_timeout", "DASHBOARD_FETCH_TIMEOUT")
	v.BindEnv("dashboard.fy_start_month", "DASHBOARD_FY_START_MONTH")
}
