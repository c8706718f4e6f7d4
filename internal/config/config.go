package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env:"APP_ENV" env-default:"prod" validate:"oneof=local dev prod"`
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	CORS       CORSConfig       `yaml:"cors"`
	Warehouse  WarehouseConfig  `yaml:"warehouse"`
	Auth       AuthConfig       `yaml:"auth"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

// HTTPServerConfig структура http сервера
type HTTPServerConfig struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"35s" validate:"gt=0"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// CORSConfig разрешённые источники для фронтенда
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

// WarehouseConfig параметры подключения к хранилищу
type WarehouseConfig struct {
	Driver    string `yaml:"driver" env:"WAREHOUSE_DRIVER" env-default:"snowflake" validate:"oneof=postgres mysql snowflake"`
	Host      string `yaml:"host" env:"WAREHOUSE_HOST" validate:"required_unless=Driver snowflake"`
	Port      int    `yaml:"port" env:"WAREHOUSE_PORT"`
	Account   string `yaml:"account" env:"WAREHOUSE_ACCOUNT" validate:"required_if=Driver snowflake"`
	User      string `yaml:"user" env:"WAREHOUSE_USER" validate:"required"`
	Password  string `yaml:"-" env:"WAREHOUSE_PASSWORD"`
	Database  string `yaml:"database" env:"WAREHOUSE_DATABASE" validate:"required"`
	Schema    string `yaml:"schema" env:"WAREHOUSE_SCHEMA" env-default:"TPCH_SF10" validate:"required"`
	Warehouse string `yaml:"warehouse" env:"WAREHOUSE_NAME"`
	SSLMode   string `yaml:"ssl_mode" env:"WAREHOUSE_SSL_MODE" env-default:"disable"`

	QueryTimeout    time.Duration `yaml:"query_timeout" env:"WAREHOUSE_QUERY_TIMEOUT" env-default:"30s" validate:"gt=0"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"10" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
}

// AuthConfig настройка авторизации. Пустой Token означает отказ на любой запрос.
type AuthConfig struct {
	Mode      string `yaml:"mode" env:"AUTH_MODE" env-default:"static" validate:"oneof=static jwt"`
	Token     string `yaml:"-" env:"API_TOKEN"`
	JWTSecret string `yaml:"-" env:"JWT_SECRET" validate:"required_if=Mode jwt"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

var validate = validator.New()

// Validate проверяет загруженную конфигурацию
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MustLoad - если не загружаем - паникуем.
// Без -config и CONFIG_PATH конфигурация читается только из окружения (lambda).
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		return MustLoadFromEnv()
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	if f := flag.Lookup("config"); f != nil {
		path = f.Value.String()
	} else {
		flag.StringVar(&path, "config", "", "path to config file")
		flag.Parse()
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s: %v", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config %s: %v", configPath, err)
	}

	return &cfg
}

func MustLoadFromEnv() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("can't read config from environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("environment config: %v", err)
	}

	return &cfg
}
