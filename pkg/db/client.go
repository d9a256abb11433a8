package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adsync-labs/campaigns-backend/pkg/config"
	"github.com/adsync-labs/campaigns-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client wraps the shared GORM connection and tracks its reachability. It is
// constructed once and injected into every repository; there is no ambient
// data-source singleton.
type Client struct {
	conn *gorm.DB
	cfg  config.DBConfig
	logg *logger.Logger

	connected atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// Pinger exposes the health check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Availability reports whether the store is currently reachable.
type Availability interface {
	Connected() bool
}

// New opens a GORM client without dialing, so the HTTP server can start even
// when the database is still coming up. Run Monitor to track connectivity.
func New(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) (*Client, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  cfg.DSN,
		PreferSimpleProtocol: true,
	})

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	gormCfg := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	}

	conn, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("opening db connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}

	applyPoolSettings(sqlDB, cfg)

	client := &Client{
		conn: conn,
		cfg:  cfg,
		logg: logg,
		stop: make(chan struct{}),
	}

	if err := client.Ping(ctx); err == nil {
		client.markConnected(ctx, true)
	} else if logg != nil {
		logg.Warn(ctx, "database not reachable at startup, reconnecting in background")
	}

	return client, nil
}

func applyPoolSettings(sqlDB *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// Monitor pings the store until ctx is done or Close is called. While
// disconnected it retries with exponential backoff capped at the configured
// maximum; once connected it keeps pinging at the regular interval so a
// dropped connection flips the availability flag.
func (c *Client) Monitor(ctx context.Context) {
	base := c.cfg.ReconnectBaseDelay
	if base <= 0 {
		base = time.Second
	}
	maxDelay := c.cfg.ReconnectMaxDelay
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}
	interval := c.cfg.PingInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	delay := base
	for {
		wait := interval
		if !c.Connected() {
			wait = delay
		}

		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-time.After(wait):
		}

		if err := c.Ping(ctx); err != nil {
			if c.Connected() && c.logg != nil {
				c.logg.Error(ctx, "database connection lost", err)
			}
			c.markConnected(ctx, false)
			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
			continue
		}

		if !c.Connected() {
			c.markConnected(ctx, true)
		}
		delay = base
	}
}

func (c *Client) markConnected(ctx context.Context, up bool) {
	was := c.connected.Swap(up)
	if c.logg == nil || was == up {
		return
	}
	if up {
		c.logg.Info(ctx, "database connection established")
	} else {
		c.logg.Warn(ctx, "database marked unavailable")
	}
}

// Connected reports the last observed connectivity state.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// DB returns the underlying GORM connection.
func (c *Client) DB() *gorm.DB {
	return c.conn
}

// Ping verifies the datasource is reachable.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close stops the monitor and shuts down the pooled connections.
func (c *Client) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	sqlDB, err := c.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTx executes fn inside a transaction, rolling back on error/panic.
func (c *Client) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := c.conn.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
