package warehouse

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/linemk/warehouse-facade/internal/config"
	"github.com/snowflakedb/gosnowflake"
)

// DSN собирает строку подключения для выбранного драйвера
func DSN(cfg config.WarehouseConfig) (string, error) {
	switch cfg.Driver {
	case DriverPostgres:
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
			Path:     "/" + cfg.Database,
			RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
		}
		return u.String(), nil
	case DriverMySQL:
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		mc.DBName = cfg.Database
		mc.ParseTime = true
		return mc.FormatDSN(), nil
	case DriverSnowflake:
		return gosnowflake.DSN(&gosnowflake.Config{
			Account:   cfg.Account,
			User:      cfg.User,
			Password:  cfg.Password,
			Database:  cfg.Database,
			Schema:    cfg.Schema,
			Warehouse: cfg.Warehouse,
		})
	default:
		return "", fmt.Errorf("unsupported warehouse driver %q", cfg.Driver)
	}
}

// Open открывает пул соединений с хранилищем и проверяет его доступность.
// Пул передаётся в репозитории явно, глобального соединения нет.
func Open(ctx context.Context, cfg config.WarehouseConfig) (*sqlx.DB, Dialect, error) {
	dialect, err := NewDialect(cfg.Driver, cfg.Database, cfg.Schema)
	if err != nil {
		return nil, Dialect{}, err
	}

	dsn, err := DSN(cfg)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("failed to build dsn: %w", err)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("failed to open warehouse: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, Dialect{}, fmt.Errorf("failed to ping warehouse: %w", err)
	}

	return db, dialect, nil
}
