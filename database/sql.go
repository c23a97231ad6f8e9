package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mechanicbook/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLDB is the global gorm handle when jobs are stored in Postgres or SQLite.
var SQLDB *gorm.DB

// InitSQL opens the relational job store selected by JOB_STORE.
func InitSQL(log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.AppConfig.JobStore {
	case config.StorePostgres:
		if config.AppConfig.PostgresURL == "" {
			return nil, errors.New("POSTGRES_URL is not configured")
		}
		dialector = postgres.Open(config.AppConfig.PostgresURL)
	case config.StoreSQLite:
		dialector = sqlite.Open(config.AppConfig.SQLitePath)
	default:
		return nil, fmt.Errorf("job store %q is not a SQL store", config.AppConfig.JobStore)
	}

	db, err := OpenSQL(dialector, log)
	if err != nil {
		return nil, err
	}
	SQLDB = db
	log.Info("Connected to SQL job store", zap.String("store", config.AppConfig.JobStore))
	return db, nil
}

// OpenSQL opens any gorm dialector with queries logged through zap.
func OpenSQL(dialector gorm.Dialector, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: &gormLogger{log: log, level: logger.Warn}})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQL store: %w", err)
	}
	return db, nil
}

// CloseSQL closes the pool behind db.
func CloseSQL(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogger forwards gorm's logging to zap.
type gormLogger struct {
	log   *zap.Logger
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{log: l.log, level: level}
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		l.log.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		l.log.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		l.log.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		sql, rows := fc()
		l.log.Error("gorm query error", zap.Error(err), zap.Duration("duration", elapsed), zap.String("sql", sql), zap.Int64("rows", rows))
	case elapsed > 200*time.Millisecond && l.level >= logger.Warn:
		sql, rows := fc()
		l.log.Warn("slow query", zap.Duration("duration", elapsed), zap.String("sql", sql), zap.Int64("rows", rows))
	case l.level >= logger.Info:
		sql, rows := fc()
		l.log.Debug("gorm query", zap.Duration("duration", elapsed), zap.String("sql", sql), zap.Int64("rows", rows))
	}
}
