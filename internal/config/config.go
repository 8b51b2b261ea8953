package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"     envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	TLS      bool   `env:"SMTP_TLS"      envDefault:"true"`
}

type NotifyConfig struct {
	Workers     uint          `env:"NOTIFY_WORKERS"`
	BatchSize   uint          `env:"NOTIFY_BATCH_SIZE"`
	MaxAttempts uint          `env:"NOTIFY_MAX_ATTEMPTS"`
	RetryBase   time.Duration `env:"NOTIFY_RETRY_BASE"`
	RetryMax    time.Duration `env:"NOTIFY_RETRY_MAX"`
}

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	JWTUserSecret string `env:"JWT_USER_SECRET"`

	// AdminUsers юзернеймы, которые получают роль администратора при регистрации.
	AdminUsers []string `env:"ADMIN_USERS" envSeparator:","`
	// ReportBalanceScope bank или account, см. service.ReportBalanceScope.
	ReportBalanceScope string `env:"REPORT_BALANCE_SCOPE" envDefault:"bank"`

	SMTP   SMTPConfig
	Notify NotifyConfig
}

// String не выводит секреты.
func (c Config) String() string {
	return fmt.Sprintf("RunAddress:%s MigrationsDir:%s Admins:%v ReportBalanceScope:%s SMTPHost:%s Notify:%+v",
		c.RunAddress, c.MigrationsDir, c.AdminUsers, c.ReportBalanceScope, c.SMTP.Host, c.Notify)
}

// LoadConfig собирает конфиг из .env файла (если есть), переменных окружения и флагов. Переменные окружения
// имеют приоритет над флагами.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var flagsConfig, envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %w", envParseErr)
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %w", flagsErr)
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.JWTUserSecret == "" {
		return nil, errors.New("jwt secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config, args []string) error {
	fs := flag.NewFlagSet("bank", flag.ContinueOnError)
	fs.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	fs.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	fs.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")
	fs.StringVar(&flagConfig.JWTUserSecret, "j", "", "JWT secret key")

	return fs.Parse(args) //nolint:wrapcheck
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	conf := *envConfig
	conf.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	conf.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	conf.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	conf.JWTUserSecret = defaultIfBlank(envConfig.JWTUserSecret, flagsConfig.JWTUserSecret)
	for i, u := range conf.AdminUsers {
		conf.AdminUsers[i] = strings.TrimSpace(u)
	}
	return &conf
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
