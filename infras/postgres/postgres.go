package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"shop/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

var ErrConnectionExhausted = errors.New("database connection retries exhausted")

// Connection holds separate pools for reads and writes. Both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type dsn struct {
	name, username, password, host, port, dbName, sslMode string
}

func (d dsn) String() string {
	u := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(d.username, d.password),
		Host:     net.JoinHostPort(d.host, d.port),
		Path:     d.dbName,
		RawQuery: url.Values{"sslmode": []string{d.sslMode}}.Encode(),
	}

	return u.String()
}

func New(cfg *config.Config) *Connection {
	read, err := connect(cfg, readDSN(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open read connection")
	}

	write, err := connect(cfg, writeDSN(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open write connection")
	}

	return &Connection{
		Read:  read,
		Write: write,
	}
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read pool: %w", err)
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// DBName returns the database name with prefix if configured
func DBName(cfg *config.Config, baseName string) string {
	if cfg.DB.Postgres.Prefix != "" {
		return cfg.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func readDSN(cfg *config.Config) dsn {
	read := cfg.DB.Postgres.Read

	return dsn{
		name:     "read",
		username: read.Username,
		password: read.Password,
		host:     read.Host,
		port:     read.Port,
		dbName:   DBName(cfg, read.Name),
		sslMode:  read.SSLMode,
	}
}

func writeDSN(cfg *config.Config) dsn {
	write := cfg.DB.Postgres.Write

	return dsn{
		name:     "write",
		username: write.Username,
		password: write.Password,
		host:     write.Host,
		port:     write.Port,
		dbName:   DBName(cfg, write.Name),
		sslMode:  write.SSLMode,
	}
}

// WriteURL is the write pool DSN, used by the migration runner.
func WriteURL(cfg *config.Config) string {
	return writeDSN(cfg).String()
}

func connect(cfg *config.Config, target dsn) (*sqlx.DB, error) {
	maxRetry := max(cfg.DB.Postgres.MaxRetry, 1)
	waitTime := time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second

	var lastErr error

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect(driverName, target.String())
		if err == nil {
			log.
				Info().
				Str("name", target.name).
				Str("host", target.host).
				Str("port", target.port).
				Str("dbName", target.dbName).
				Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", target.name).
			Str("host", target.host).
			Str("port", target.port).
			Str("dbName", target.dbName).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(waitTime)
	}

	return nil, fmt.Errorf("%w (%s): %w", ErrConnectionExhausted, target.name, lastErr)
}
