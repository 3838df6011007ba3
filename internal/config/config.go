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
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	CafeAPI          CafeAPI          `mapstructure:",squash"`
	Dashboard        Dashboard        `mapstructure:",squash"`
	DashboardRefresh DashboardRefresh `mapstructure:",squash"`
	SnapshotStore    SnapshotStore    `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// CafeAPI configura o acesso à API analítica do café
type CafeAPI struct {
	URL     string        `mapstructure:"cafe_api_url"`
	Timeout time.Duration `mapstructure:"cafe_api_timeout"`
}

// Dashboard define os filtros aplicados no primeiro ciclo
type Dashboard struct {
	DefaultRange    string `mapstructure:"dashboard_default_range"`
	DefaultCategory string `mapstructure:"dashboard_default_category"`
}

type DashboardRefresh struct {
	CronSchedule string `mapstructure:"dashboard_refresh_cron"`
	Enabled      bool   `mapstructure:"dashboard_refresh_enabled"`
}

// SnapshotStore controla o histórico de snapshots publicados no PostgreSQL
type SnapshotStore struct {
	Enabled       bool   `mapstructure:"snapshot_store_enabled"`
	RetentionDays int    `mapstructure:"snapshot_retention_days"`
	CleanupCron   string `mapstructure:"snapshot_cleanup_cron"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/cafe_bi?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("CAFE_API_URL", "http://localhost:8000")
	viper.SetDefault("CAFE_API_TIMEOUT", "30s")

	viper.SetDefault("DASHBOARD_DEFAULT_RANGE", "7d")
	viper.SetDefault("DASHBOARD_DEFAULT_CATEGORY", "all")

	viper.SetDefault("DASHBOARD_REFRESH_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("DASHBOARD_REFRESH_ENABLED", false)

	viper.SetDefault("SNAPSHOT_STORE_ENABLED", false)
	viper.SetDefault("SNAPSHOT_RETENTION_DAYS", 30)
	viper.SetDefault("SNAPSHOT_CLEANUP_CRON", "0 4 * * *") // Todos os dias às 4h da manhã

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.CafeAPI.Timeout <= 0 {
		return nil, fmt.Errorf("CAFE_API_TIMEOUT inválido: %s", config.CafeAPI.Timeout)
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

// loadEnvFile procura um .env no diretório atual e nos diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "..", ".env"),
		filepath.Join(cwd, "..", "..", ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
