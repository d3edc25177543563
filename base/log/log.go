package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/x-xyz/nftmeta/base/env"
)

// Fields to be added to a logger
type Fields map[string]interface{}

// Logger carries a sugared zap logger plus the key/value pairs attached to it
type Logger struct {
	logger *zap.SugaredLogger
	fields []interface{}
}

var base *zap.SugaredLogger

func init() {
	zapLogger, _ := zap.NewProduction(zap.AddCallerSkip(1))
	base = zapLogger.Sugar()
}

// Init replaces the process logger. debug switches to a console encoder at
// debug level. Deployment fields from the environment are stamped on every
// entry.
func Init(debug bool) error {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	s := zapLogger.Sugar()
	for k, v := range map[string]string{"env": env.EnvName(), "app": env.AppName(), "pod": env.PodName()} {
		if v != "" {
			s = s.With(k, v)
		}
	}
	base = s
	return nil
}

// Sync flushes buffered entries, call before exit
func Sync() {
	_ = base.Sync()
}

// Log returns an empty field logger
func Log() Logger {
	return Logger{
		logger: base,
		fields: []interface{}{},
	}
}

// WithField add a key/value pair to its fields
func (l Logger) WithField(key string, value interface{}) Logger {
	fields := make([]interface{}, len(l.fields), len(l.fields)+2)
	copy(fields, l.fields)
	l.fields = append(fields, key, value)
	return l
}

// WithFields add multiple key/value pairs to its fields
func (l Logger) WithFields(kvs Fields) Logger {
	for k, v := range kvs {
		l = l.WithField(k, v)
	}
	return l
}

func (l Logger) Debug(args ...interface{}) {
	l.logger.With(l.fields...).Debug(args...)
}

func (l Logger) Info(args ...interface{}) {
	l.logger.With(l.fields...).Info(args...)
}

func (l Logger) Infof(template string, args ...interface{}) {
	l.logger.With(l.fields...).Infof(template, args...)
}

func (l Logger) Warn(args ...interface{}) {
	l.logger.With(l.fields...).Warn(args...)
}

func (l Logger) Error(args ...interface{}) {
	l.logger.With(l.fields...).Error(args...)
}

func (l Logger) Panic(args ...interface{}) {
	l.logger.With(l.fields...).Panic(args...)
}
