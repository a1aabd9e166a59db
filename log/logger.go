// Package log is a small zap wrapper with a runtime-adjustable level.
package log

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Shared is the default logger used when a component is not given its own.
var Shared Logger

// Level is a logger level name.
type Level string

func (l Level) String() string {
	return string(l)
}

const (
	// LevelDebug Logger level debug
	LevelDebug Level = "debug"
	// LevelInfo Logger level info
	LevelInfo Level = "info"
	// LevelWarn Logger level warn
	LevelWarn Level = "warn"
	// LevelError Logger level error
	LevelError Level = "error"
)

// Encoding is the output format of a logger.
type Encoding string

const (
	EncodingConsole Encoding = "console"
	EncodingJSON    Encoding = "json"
)

// Logger is a zap logger whose level can be changed after construction.
type Logger interface {
	Debug(msg string, fields ...zapcore.Field)
	Info(msg string, fields ...zapcore.Field)
	Warn(msg string, fields ...zapcore.Field)
	Error(msg string, fields ...zapcore.Field)
	Sync() error

	Level() Level
	ChangeLevel(level Level) error
	Named(name string) Logger
	With(fields ...zapcore.Field) Logger
	Zap() *zap.Logger
}

type logger struct {
	*zap.Logger

	// zap does not expose the level of a built logger, so keep the
	// AtomicLevel shared with all children.
	level zap.AtomicLevel
}

type option struct {
	zap.Config
	name       string
	zapOptions []zap.Option
}

// Option configures New.
type Option func(*option) error

// WithName set logger name
func WithName(name string) Option {
	return func(o *option) error {
		o.name = name
		return nil
	}
}

// WithLevel set logger level
func WithLevel(level Level) Option {
	return func(o *option) error {
		lvl, err := LevelToZap(level)
		if err != nil {
			return err
		}
		o.Level.SetLevel(lvl)
		return nil
	}
}

// WithEncoding set logger encoding format
func WithEncoding(enc Encoding) Option {
	return func(o *option) error {
		switch enc {
		case EncodingConsole, EncodingJSON:
			o.Encoding = string(enc)
			return nil
		default:
			return errors.Errorf("invalid encoding: %s", enc)
		}
	}
}

// WithOutputPaths set output paths, like "stdout" or a file name
func WithOutputPaths(paths ...string) Option {
	return func(o *option) error {
		o.OutputPaths = paths
		return nil
	}
}

// WithZapOptions set logger with zap.Option
func WithZapOptions(opts ...zap.Option) Option {
	return func(o *option) error {
		o.zapOptions = append(o.zapOptions, opts...)
		return nil
	}
}

func defaultOption() *option {
	o := &option{
		name: "shamir",
		Config: zap.Config{
			Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
			Encoding:         string(EncodingConsole),
			EncoderConfig:    zap.NewProductionEncoderConfig(),
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		},
	}
	o.EncoderConfig.MessageKey = "message"
	o.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	o.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	o.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return o
}

// New create new logger
func New(opts ...Option) (Logger, error) {
	o := defaultOption()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	zl, err := o.Build(o.zapOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "build zap logger")
	}

	return &logger{Logger: zl.Named(o.name), level: o.Level}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &logger{Logger: zap.NewNop(), level: zap.NewAtomicLevel()}
}

// LevelToZap converts a Level to its zap counterpart.
func LevelToZap(level Level) (zapcore.Level, error) {
	switch level {
	case LevelDebug:
		return zap.DebugLevel, nil
	case LevelInfo:
		return zap.InfoLevel, nil
	case LevelWarn:
		return zap.WarnLevel, nil
	case LevelError:
		return zap.ErrorLevel, nil
	default:
		return 0, errors.Errorf("invalid level: %q", level)
	}
}

func (l *logger) Level() Level {
	switch l.level.Level() {
	case zap.DebugLevel:
		return LevelDebug
	case zap.InfoLevel:
		return LevelInfo
	case zap.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}

// ChangeLevel change logger level.
//
// The level is shared by a logger and every logger derived from it.
func (l *logger) ChangeLevel(level Level) error {
	lvl, err := LevelToZap(level)
	if err != nil {
		return err
	}

	l.level.SetLevel(lvl)
	l.Debug("set logger level", zap.String("level", level.String()))
	return nil
}

func (l *logger) Named(name string) Logger {
	return &logger{Logger: l.Logger.Named(name), level: l.level}
}

func (l *logger) With(fields ...zapcore.Field) Logger {
	return &logger{Logger: l.Logger.With(fields...), level: l.level}
}

func (l *logger) Zap() *zap.Logger {
	return l.Logger
}

func init() {
	var err error
	if Shared, err = New(); err != nil {
		panic(fmt.Sprintf("create logger: %+v", err))
	}
}
