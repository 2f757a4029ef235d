package observability

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// LogOptions describes logger configuration supplied at creation time.
type LogOptions struct {
	Level  string
	Format string // "auto", "console" or "json"
	Writer io.Writer
}

// NewLogger creates a zerolog logger. In "auto" format a console writer is
// used when the destination is a terminal and JSON otherwise.
func NewLogger(opts LogOptions) (zerolog.Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var console bool
	switch strings.ToLower(opts.Format) {
	case "", "auto":
		console = isTerminal(writer)
	case "console", "text":
		console = true
	case "json":
		console = false
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", opts.Format)
	}

	out := writer
	if console {
		cw := zerolog.NewConsoleWriter()
		cw.Out = writer
		cw.TimeFormat = time.TimeOnly
		out = cw
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ZerologObserver implements Observer on top of zerolog.
type ZerologObserver struct {
	logger zerolog.Logger
	fields map[string]string
}

// NewZerologObserver wraps logger.
func NewZerologObserver(logger zerolog.Logger) *ZerologObserver {
	return &ZerologObserver{logger: logger, fields: map[string]string{}}
}

// Printf implements Logger.
func (o *ZerologObserver) Printf(format string, v ...any) {
	o.with(nil).Info().Msgf(format, v...)
}

// Event implements Observer.
func (o *ZerologObserver) Event(event Event) {
	l := o.with(event.Fields)

	var e *zerolog.Event
	switch event.Type.Severity() {
	case SeverityDebug:
		e = l.Debug()
	case SeverityWarn:
		e = l.Warn()
	case SeverityError:
		e = l.Error()
	default:
		e = l.Info()
	}

	e = e.Str("event", string(event.Type))
	if event.Phase != "" {
		e = e.Str("phase", event.Phase)
	}
	if event.Resource != "" {
		e = e.Str("resource", event.Resource)
	}
	if event.Err != nil {
		e = e.Err(event.Err)
	}
	if !event.Timestamp.IsZero() {
		e = e.Time("at", event.Timestamp)
	}
	e.Msg(event.Message)
}

// Progress implements Observer.
func (o *ZerologObserver) Progress(phase string, current, total int) {
	e := o.with(nil).Info().Str("phase", phase).Int("current", current).Int("total", total)
	if total > 0 {
		e = e.Int("percent", current*100/total)
	}
	e.Msg("progress")
}

// WithFields implements Observer.
func (o *ZerologObserver) WithFields(fields map[string]string) Observer {
	return &ZerologObserver{logger: o.logger, fields: mergeFields(o.fields, fields)}
}

func (o *ZerologObserver) with(extra map[string]string) *zerolog.Logger {
	fields := mergeFields(o.fields, extra)
	if len(fields) == 0 {
		return &o.logger
	}
	ctx := o.logger.With()
	for k, v := range fields {
		ctx = ctx.Str(k, v)
	}
	l := ctx.Logger()
	return &l
}
