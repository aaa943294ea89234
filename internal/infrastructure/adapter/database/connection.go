package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/capsule-market/backend/internal/domain/port/core"
)

// Manager owns the database connection lifecycle.
type Manager struct {
	db     *gorm.DB
	config *Config
	logger core.Logger
}

// NewManager validates the config and opens a connection, retrying
// transient failures according to the config's retry policy.
func NewManager(config *Config, logger core.Logger) (*Manager, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	m := &Manager{config: config, logger: logger}
	if err := m.connect(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) connect() error {
	gormConfig := &gorm.Config{
		Logger:                 NewGormLogger(m.logger, m.config.QueryTimeout),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	var db *gorm.DB
	var err error

	attempts := m.config.RetryAttempts + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err = gorm.Open(postgres.Open(m.config.DSN()), gormConfig)
		if err == nil {
			break
		}

		m.logger.Warn("database connection attempt failed", map[string]any{
			"attempt":      attempt,
			"max_attempts": attempts,
			"error":        err.Error(),
		})

		if attempt < attempts {
			time.Sleep(m.config.RetryDelay)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), m.config.QueryTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	m.db = db
	m.logger.Info("database connection established", map[string]any{
		"host":     m.config.Host,
		"port":     m.config.Port,
		"database": m.config.Database,
	})
	return nil
}

// DB returns the gorm handle.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// HealthCheck pings the database within the configured query timeout.
func (m *Manager) HealthCheck(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.config.QueryTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Stats returns connection pool statistics.
func (m *Manager) Stats() sql.DBStats {
	sqlDB, err := m.db.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	m.logger.Info("database connection closed", nil)
	return nil
}
