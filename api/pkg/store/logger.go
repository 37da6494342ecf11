package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// GormLogger routes gorm output through zerolog. Queries are logged at
// trace, slow queries at warn and failures at error.
type GormLogger struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

var _ logger.Interface = &GormLogger{}

func NewGormLogger(slowThreshold time.Duration, ignoreRecordNotFoundError bool) *GormLogger {
	return &GormLogger{
		SlowThreshold:             slowThreshold,
		IgnoreRecordNotFoundError: ignoreRecordNotFoundError,
	}
}

// loggerFor prefers a logger attached to the context and falls back to the
// global one
func loggerFor(ctx context.Context) *zerolog.Logger {
	z := zerolog.Ctx(ctx)
	if z.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return z
}

func (l *GormLogger) LogMode(_ logger.LogLevel) logger.Interface {
	return l
}

func (l GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	loggerFor(ctx).Info().Msg(fmt.Sprintf(msg, data...))
}

func (l GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	loggerFor(ctx).Warn().Msg(fmt.Sprintf(msg, data...))
}

func (l GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	loggerFor(ctx).Error().Msg(fmt.Sprintf(msg, data...))
}

func (l GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	z := loggerFor(ctx)
	if z.GetLevel() == zerolog.Disabled {
		return
	}

	elapsed := time.Since(begin)

	var (
		event *zerolog.Event
		msg   string
	)
	switch {
	case err != nil && !(l.IgnoreRecordNotFoundError && errors.Is(err, gorm.ErrRecordNotFound)):
		event = z.Error().Err(err)
		msg = "SQL error"
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold:
		event = z.Warn()
		msg = "SQL slow query"
	default:
		event = z.Trace()
		msg = "SQL"
	}

	sql, rows := fc()
	event = event.Dur("elapsed", elapsed).Str("file", utils.FileWithLineNum())
	if sql != "" {
		event = event.Str("sql", sql)
	}
	if rows > -1 {
		event = event.Int64("rows", rows)
	}
	event.Msg(msg)
}
