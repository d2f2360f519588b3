package gorm

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var LogrusLogger logger.Interface = &logrusLogger{
	entry:         logrus.WithField("logger", "gorm"),
	slowThreshold: time.Second,
}

type logrusLogger struct {
	entry         *logrus.Entry
	slowThreshold time.Duration
	silent        bool
}

func (l *logrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.silent = level == logger.Silent
	return &clone
}

func (l *logrusLogger) Info(ctx context.Context, s string, i ...interface{}) {
	if !l.silent {
		l.entry.WithContext(ctx).Infof(s, i...)
	}
}

func (l *logrusLogger) Warn(ctx context.Context, s string, i ...interface{}) {
	if !l.silent {
		l.entry.WithContext(ctx).Warnf(s, i...)
	}
}

func (l *logrusLogger) Error(ctx context.Context, s string, i ...interface{}) {
	if !l.silent {
		l.entry.WithContext(ctx).Errorf(s, i...)
	}
}

func (l *logrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rowsAffected := fc()
	entry := l.entry.WithContext(ctx).WithFields(logrus.Fields{
		"elapsed": elapsed,
		"rows":    rowsAffected,
	})

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		entry.Warnf("%s: %v", sql, err)
	case elapsed > l.slowThreshold:
		entry.Infof("slow query: %s", sql)
	default:
		entry.Tracef("%s", sql)
	}
}
