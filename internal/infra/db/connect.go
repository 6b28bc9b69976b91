package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applogger "reputation_server/internal/infra/logger"
)

// zerologWriter adapts zerolog.Logger to gorm logger.Writer interface
type zerologWriter struct {
	logger zerolog.Logger
}

func (w *zerologWriter) Printf(format string, v ...interface{}) {
	w.logger.Warn().Msg(fmt.Sprintf(format, v...))
}

// Connect opens the durable backend named by dsn: postgres for
// postgres://-style DSNs, a sqlite file path otherwise. Callers treat a
// returned error as "run cache-only", not as fatal.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn required")
	}

	gormLogger := applogger.Logger.With().Str("component", "gorm").Logger()
	writer := &zerologWriter{logger: gormLogger}

	newLogger := logger.New(
		writer,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		if err := ensureDirectory(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("underlying db: %w", err)
	}

	// Configure connection pool before ping
	configurePool(sqlDB, isPostgresDSN(dsn))

	// Retry ping with backoff
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		if err := sqlDB.PingContext(pingCtx); err == nil {
			return gormDB, nil
		}
		if i < maxRetries-1 {
			time.Sleep(time.Duration(i+1) * 500 * time.Millisecond)
		}
	}

	_ = sqlDB.Close()
	return nil, fmt.Errorf("ping database: failed after %d retries", maxRetries)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func configurePool(db *sql.DB, isPostgres bool) {
	if isPostgres {
		db.SetMaxIdleConns(10)
		db.SetMaxOpenConns(25)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(time.Hour)
		return
	}

	// sqlite serializes writers; a single connection avoids lock contention.
	db.SetMaxIdleConns(1)
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(0)
}

func ensureDirectory(dsn string) error {
	path := sqliteFilePath(dsn)
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite directory: %w", err)
	}
	return nil
}

func sqliteFilePath(dsn string) string {
	if dsn == ":memory:" {
		return ""
	}

	trimmed := strings.TrimPrefix(dsn, "file:")
	trimmed = strings.TrimPrefix(trimmed, "//")

	if idx := strings.IndexRune(trimmed, '?'); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	if trimmed == "" || trimmed == ":memory:" {
		return ""
	}

	return trimmed
}
