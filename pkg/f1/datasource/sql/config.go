package sql

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/Takshak-CS/F1-Database-Analytics/pkg/f1/config"
)

const (
	dialectMySQL    = "mysql"
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite"

	defaultDBHost     = "localhost"
	defaultDBUser     = "root"
	defaultDBName     = "f1_db"
	defaultMaxOpen    = 10
	defaultMaxIdle    = 2
	defaultConnMaxAge = 10 * time.Minute
)

var errUnsupportedDialect = errors.New("unsupported dialect")

// DBConfig has the connection settings read from configuration.
type DBConfig struct {
	Dialect         string
	HostName        string
	User            string
	Password        string
	Port            string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewDBConfig reads DB_* keys. Missing values fall back to a local MySQL server with the f1_db schema.
func NewDBConfig(c config.Config) *DBConfig {
	dialect := normalizeDialect(c.GetOrDefault("DB_DIALECT", dialectMySQL))

	return &DBConfig{
		Dialect:         dialect,
		HostName:        c.GetOrDefault("DB_HOST", defaultDBHost),
		User:            c.GetOrDefault("DB_USER", defaultDBUser),
		Password:        c.Get("DB_PASSWORD"),
		Port:            c.GetOrDefault("DB_PORT", defaultPort(dialect)),
		Database:        c.GetOrDefault("DB_NAME", defaultDBName),
		SSLMode:         c.GetOrDefault("DB_SSL_MODE", "disable"),
		MaxOpenConns:    intOrDefault(c.Get("DB_MAX_OPEN_CONNS"), defaultMaxOpen),
		MaxIdleConns:    intOrDefault(c.Get("DB_MAX_IDLE_CONNS"), defaultMaxIdle),
		ConnMaxLifetime: durationOrDefault(c.Get("DB_CONN_MAX_LIFETIME"), defaultConnMaxAge),
	}
}

func normalizeDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "", dialectMySQL, "mariadb":
		return dialectMySQL
	case dialectPostgres, "postgresql":
		return dialectPostgres
	case dialectSQLite, "sqlite3":
		return dialectSQLite
	default:
		return strings.ToLower(dialect)
	}
}

func defaultPort(dialect string) string {
	switch dialect {
	case dialectPostgres:
		return "5432"
	case dialectSQLite:
		return ""
	default:
		return "3306"
	}
}

func intOrDefault(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}

	return n
}

func durationOrDefault(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}

	return d
}

// driverName returns the database/sql driver registered for the dialect.
func (c *DBConfig) driverName() (string, error) {
	switch c.Dialect {
	case dialectMySQL:
		return "mysql", nil
	case dialectPostgres:
		return "postgres", nil
	case dialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, c.Dialect)
	}
}

// DSN builds the driver specific data source name.
func (c *DBConfig) DSN() (string, error) {
	switch c.Dialect {
	case dialectMySQL:
		cfg := mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.HostName, c.Port)
		cfg.DBName = c.Database
		cfg.ParseTime = true
		cfg.Params = map[string]string{"charset": "utf8mb4"}

		return cfg.FormatDSN(), nil
	case dialectPostgres:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.HostName, c.Port),
			Path:     "/" + c.Database,
			RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
		}

		return u.String(), nil
	case dialectSQLite:
		return c.Database, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnsupportedDialect, c.Dialect)
	}
}
