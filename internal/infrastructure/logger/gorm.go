package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger implements GORM's logger interface using zap
type GormLogger struct {
	logger        *zap.Logger
	logLevel      gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a new GORM logger backed by zap
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{
		logger:        zapLogger.Named("gorm"),
		logLevel:      level,
		slowThreshold: 200 * time.Millisecond,
	}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.logLevel = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(_ context.Context, msg string, data ...any) {
	if l.logLevel >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.logLevel >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(_ context.Context, msg string, data ...any) {
	if l.logLevel >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface and logs SQL queries
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && l.logLevel >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		fields = append(fields, zap.Error(err))
		l.logger.Error("SQL Error", fields...)

	case l.slowThreshold != 0 && elapsed > l.slowThreshold && l.logLevel >= gormlogger.Warn:
		l.logger.Warn(fmt.Sprintf("SLOW SQL >= %v", l.slowThreshold), fields...)

	case l.logLevel >= gormlogger.Info:
		l.logger.Debug("SQL Query", fields...)
	}
}
