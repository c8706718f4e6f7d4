package warehouse

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	DriverPostgres  = "postgres"
	DriverMySQL     = "mysql"
	DriverSnowflake = "snowflake"
)

var identRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Dialect скрывает различия SQL между поддерживаемыми хранилищами.
// Запросы пишутся с плейсхолдерами "?", привязка к драйверу - через sqlx.Rebind.
type Dialect struct {
	Driver   string
	database string
	schema   string
}

// NewDialect проверяет идентификаторы, которые подставляются в текст запроса
func NewDialect(driver, database, schema string) (Dialect, error) {
	switch driver {
	case DriverPostgres, DriverMySQL, DriverSnowflake:
	default:
		return Dialect{}, fmt.Errorf("unsupported warehouse driver %q", driver)
	}
	if !identRe.MatchString(schema) {
		return Dialect{}, fmt.Errorf("invalid schema name %q", schema)
	}
	if driver == DriverSnowflake && !identRe.MatchString(database) {
		return Dialect{}, fmt.Errorf("invalid database name %q", database)
	}
	return Dialect{Driver: driver, database: database, schema: schema}, nil
}

// Table возвращает полное имя таблицы
func (d Dialect) Table(name string) string {
	if d.Driver == DriverSnowflake {
		return d.database + "." + d.schema + "." + name
	}
	return d.schema + "." + name
}

// Alias экранирует псевдоним колонки, чтобы регистр совпадал с тегами db
func (d Dialect) Alias(name string) string {
	if d.Driver == DriverMySQL {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// MonthLabel выражение, форматирующее дату как YYYY-MM
func (d Dialect) MonthLabel(column string) string {
	switch d.Driver {
	case DriverMySQL:
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", column)
	case DriverSnowflake:
		return fmt.Sprintf("TO_VARCHAR(%s, 'YYYY-MM')", column)
	default:
		return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM')", column)
	}
}

// VersionQuery запрос версии хранилища
func (d Dialect) VersionQuery() string {
	fn := "VERSION()"
	if d.Driver == DriverSnowflake {
		fn = "CURRENT_VERSION()"
	}
	return "SELECT " + fn + " AS " + d.Alias("version")
}

func (d Dialect) String() string {
	return strings.Join([]string{d.Driver, d.Table("*")}, ":")
}
