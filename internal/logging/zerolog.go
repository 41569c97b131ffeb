package logging

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts zerolog to Logger. Key-value args are attached as
// fields; an odd trailing key is dropped with a warning instead of panicking.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger writes JSON lines to w, or human-readable console output
// when console is true.
func NewZerologLogger(w io.Writer, console bool, level string) (*ZerologLogger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	out := w
	if console {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &ZerologLogger{l: l}, nil
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(z.checkFields(args)).Logger()}
}

func (z *ZerologLogger) emit(e *zerolog.Event, msg string, args []any) {
	e.Fields(z.checkFields(args)).Msg(msg)
}

func (z *ZerologLogger) checkFields(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	z.l.Warn().Int("fields_count", len(args)).Msg("odd number of log fields, last one ignored")
	return args[:len(args)-1]
}
