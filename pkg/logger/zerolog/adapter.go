package zerolog

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/macrolens/macrolens/pkg/logger"
)

// Adapter exposes a zerolog instance through the logger.Logger interface.
type Adapter struct {
	*zerolog.Logger
}

// NewAdapter wraps an existing zerolog logger.
func NewAdapter(log *zerolog.Logger) *Adapter {
	return &Adapter{log}
}

func (a *Adapter) WithField(key string, value any) logger.Logger {
	next := a.With().Interface(key, value).Logger()
	return &Adapter{&next}
}

func (a *Adapter) WithFields(fields map[string]any) logger.Logger {
	next := a.With().Fields(fields).Logger()
	return &Adapter{&next}
}

func (a *Adapter) WithError(err error) logger.Logger {
	next := a.With().Err(err).Logger()
	return &Adapter{&next}
}

func (a *Adapter) Trace(args ...any) { a.Logger.Trace().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Debug(args ...any) { a.Logger.Debug().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Info(args ...any)  { a.Logger.Info().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Warn(args ...any)  { a.Logger.Warn().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Error(args ...any) { a.Logger.Error().Msg(fmt.Sprint(args...)) }
func (a *Adapter) Fatal(args ...any) { a.Logger.Fatal().Msg(fmt.Sprint(args...)) }

func (a *Adapter) Tracef(format string, args ...any) { a.Logger.Trace().Msgf(format, args...) }
func (a *Adapter) Debugf(format string, args ...any) { a.Logger.Debug().Msgf(format, args...) }
func (a *Adapter) Infof(format string, args ...any)  { a.Logger.Info().Msgf(format, args...) }
func (a *Adapter) Warnf(format string, args ...any)  { a.Logger.Warn().Msgf(format, args...) }
func (a *Adapter) Errorf(format string, args ...any) { a.Logger.Error().Msgf(format, args...) }
func (a *Adapter) Fatalf(format string, args ...any) { a.Logger.Fatal().Msgf(format, args...) }

// SetLevel adjusts the global zerolog level.
func (a *Adapter) SetLevel(level logger.Level) {
	zerolog.SetGlobalLevel(toZerologLevel(level))
}

// GetLevel reports the adapter's current level.
func (a *Adapter) GetLevel() logger.Level {
	return toLevel(a.Logger.GetLevel())
}

func toLevel(level zerolog.Level) logger.Level {
	switch level {
	case zerolog.Disabled:
		return logger.Disabled
	case zerolog.TraceLevel:
		return logger.TraceLevel
	case zerolog.DebugLevel:
		return logger.DebugLevel
	case zerolog.InfoLevel:
		return logger.InfoLevel
	case zerolog.WarnLevel:
		return logger.WarnLevel
	case zerolog.ErrorLevel:
		return logger.ErrorLevel
	case zerolog.FatalLevel:
		return logger.FatalLevel
	default:
		return logger.InfoLevel
	}
}

func toZerologLevel(level logger.Level) zerolog.Level {
	switch level {
	case logger.Disabled:
		return zerolog.Disabled
	case logger.TraceLevel:
		return zerolog.TraceLevel
	case logger.DebugLevel:
		return zerolog.DebugLevel
	case logger.InfoLevel:
		return zerolog.InfoLevel
	case logger.WarnLevel:
		return zerolog.WarnLevel
	case logger.ErrorLevel:
		return zerolog.ErrorLevel
	case logger.FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
