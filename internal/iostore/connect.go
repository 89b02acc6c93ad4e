package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/gnames/gnpin/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// conn is the single database connection owned by a store.
type conn struct {
	engine string
	db     *sql.DB

	// pool is set for PostgreSQL only.
	pool *pgxpool.Pool
}

func open(ctx context.Context, cfg *config.Config) (*conn, error) {
	switch cfg.Database.Engine {
	case config.EngineSQLite:
		return openSQLite(ctx, cfg.DatabasePath())
	case config.EnginePostgres:
		return openPostgres(ctx, &cfg.Database)
	default:
		return nil, UnknownEngineError(cfg.Database.Engine)
	}
}

// openSQLite opens a SQLite file with foreign-key enforcement.
// The file is created if it does not exist.
func openSQLite(ctx context.Context, path string) (*conn, error) {
	dsn := path + "?_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ConnectionError(config.EngineSQLite, path, err)
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, ConnectionError(config.EngineSQLite, path, err)
	}

	slog.Info("Connected to SQLite", "path", path)
	return &conn{engine: config.EngineSQLite, db: db}, nil
}

// openPostgres connects to PostgreSQL through a pgx pool limited to one
// connection.
func openPostgres(ctx context.Context, cfg *config.DatabaseConfig) (*conn, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)
	target := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(config.EnginePostgres, target, err)
	}
	poolConfig.MaxConns = 1
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(config.EnginePostgres, target, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(config.EnginePostgres, target, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	db.SetMaxOpenConns(1)

	slog.Info("Connected to PostgreSQL", "target", target)
	return &conn{engine: config.EnginePostgres, db: db, pool: pool}, nil
}

func (c *conn) close() error {
	err := c.db.Close()
	if c.pool != nil {
		c.pool.Close()
	}
	if err != nil {
		return CloseError(err)
	}
	return nil
}

// withoutForeignKeys runs fn on a dedicated connection with SQLite
// foreign-key enforcement switched off. Other engines run fn as is.
func (c *conn) withoutForeignKeys(
	ctx context.Context,
	fn func(context.Context, *sql.Conn) error,
) error {
	cn, err := c.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer cn.Close()

	if c.engine != config.EngineSQLite {
		return fn(ctx, cn)
	}

	if _, err = cn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}
	defer func() {
		_, _ = cn.ExecContext(context.Background(), "PRAGMA foreign_keys = ON")
	}()
	return fn(ctx, cn)
}
