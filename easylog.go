// Package easylog is a small console logger with global toggles.
//
// Every log request goes through [Logger.Dispatch]. Dispatch renders
// arguments, decides whether a line should be written, selects a console
// channel and reports an [Outcome] back to the caller:
//
//	logger := easylog.New(easylog.StdConsole(), easylog.DefaultOptions())
//	logger.Log("ready")       // [easylog] ready
//	logger.Warn("low memory") // [easylog][WARN] low memory
//
// Non-string arguments are rendered by [Render] .
//
// Declined outcomes are not errors. They are returned when the logger is
// silenced or a debug log is requested while the debug mode is off.
package easylog

import (
	"fmt"
	"strings"
	"sync"
)

// Logger dispatches logs to a [Console] .
// Options are safe for concurrent access, but [Logger.ForceLog] is not
// atomic against concurrent [Logger.SetSilent] calls.
type Logger struct {
	mu      sync.RWMutex
	opts    Options
	console Console
}

// New returns a new [Logger] .
// If console is nil, [StdConsole] is used.
func New(console Console, opts Options) *Logger {
	if console == nil {
		console = StdConsole()
	}
	return &Logger{
		opts:    opts,
		console: console,
	}
}

// Dispatch writes a log with the given severity.
// extras are appended to the message separated by a space.
func (l *Logger) Dispatch(message any, severity Severity, extras ...any) (o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = failed(criticalError(r))
		}
	}()
	if severity < SeverityLog || severity > SeverityError {
		return failed(criticalError(fmt.Sprintf("unknown severity: %s", severity)))
	}

	// declined calls never touch their arguments
	opts := l.Options()
	if opts.Silenced {
		return declined(ReasonSilenced)
	}
	if severity == SeverityDebug && !opts.DebugMode {
		return declined(ReasonDebugDisabled)
	}

	parts, err := l.renderAll(message, extras)
	if err != nil {
		return failed(err)
	}

	ch := ChannelInfo
	if !opts.RegularOnly {
		ch = severity.Channel()
	}
	if err := l.console.Write(ch, linePrefix(ch, severity)+strings.Join(parts, " ")); err != nil {
		return failed(criticalError(err))
	}

	if severity == SeverityError && opts.FailOnError {
		return failed(&FailError{Message: parts[0]})
	}
	return success(fmt.Sprintf("%s Logged successfully (severity: %s)", Tag, severity))
}

func (l *Logger) renderAll(message any, extras []any) ([]string, error) {
	parts := make([]string, 0, len(extras)+1)
	for _, v := range append([]any{message}, extras...) {
		a, err := Classify(v)
		if err != nil {
			return nil, criticalError(err)
		}
		switch x := a.(type) {
		case TextArg:
			parts = append(parts, string(x))
		case StructuredArg:
			s, err := prettyFields(x.Fields, "")
			if err != nil {
				return nil, criticalError(err)
			}
			parts = append(parts, s)
		case OpaqueArg:
			// carries no extras, so it can not fall back again
			l.Dispatch(fmt.Sprintf("An argument of type %s has no string form, appending %s instead",
				typeName(x.Type), Placeholder), SeverityWarn)
			parts = append(parts, Placeholder)
		}
	}
	return parts, nil
}

// Log writes a regular log.
func (l *Logger) Log(message any, extras ...any) Outcome {
	return l.Dispatch(message, SeverityLog, extras...)
}

// Debug writes a debug log.
func (l *Logger) Debug(message any, extras ...any) Outcome {
	return l.Dispatch(message, SeverityDebug, extras...)
}

// Warn writes a warning log.
func (l *Logger) Warn(message any, extras ...any) Outcome {
	return l.Dispatch(message, SeverityWarn, extras...)
}

// Error writes an error log.
// If FailOnError is enabled, Error returns a failed outcome
// after the line is written.
func (l *Logger) Error(message any, extras ...any) Outcome {
	return l.Dispatch(message, SeverityError, extras...)
}

// ForceLog writes a log even if the logger is silenced.
// Silenced is restored to the previous value when ForceLog returns.
func (l *Logger) ForceLog(message any, severity Severity, extras ...any) Outcome {
	prev := l.swapSilenced(false)
	defer l.SetSilent(prev)
	return l.Dispatch(message, severity, extras...)
}

// Print writes a line to the info channel regardless of the options.
func (l *Logger) Print(message any, extras ...any) (o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = failed(criticalError(r))
		}
	}()
	parts, err := l.renderAll(message, extras)
	if err != nil {
		return failed(err)
	}
	if err := l.console.Write(ChannelInfo, linePrefix(ChannelInfo, SeverityLog)+strings.Join(parts, " ")); err != nil {
		return failed(criticalError(err))
	}
	return success(Tag + " Printed successfully")
}

// Default is a [Logger] used by the package level functions.
var Default = New(StdConsole(), DefaultOptions())

// Log writes a regular log by the [Default] logger.
func Log(message any, extras ...any) Outcome {
	return Default.Log(message, extras...)
}

// Debug writes a debug log by the [Default] logger.
func Debug(message any, extras ...any) Outcome {
	return Default.Debug(message, extras...)
}

// Warn writes a warning log by the [Default] logger.
func Warn(message any, extras ...any) Outcome {
	return Default.Warn(message, extras...)
}

// Error writes an error log by the [Default] logger.
func Error(message any, extras ...any) Outcome {
	return Default.Error(message, extras...)
}

// ForceLog writes a log by the [Default] logger even if it is silenced.
func ForceLog(message any, severity Severity, extras ...any) Outcome {
	return Default.ForceLog(message, severity, extras...)
}

// Print writes a line by the [Default] logger regardless of the options.
func Print(message any, extras ...any) Outcome {
	return Default.Print(message, extras...)
}

// SetSilent sets Silenced of the [Default] logger.
func SetSilent(v bool) Outcome {
	return Default.SetSilent(v)
}

// SetDebugMode sets DebugMode of the [Default] logger.
func SetDebugMode(v bool) Outcome {
	return Default.SetDebugMode(v)
}

// SetFailOnError sets FailOnError of the [Default] logger.
func SetFailOnError(v bool) Outcome {
	return Default.SetFailOnError(v)
}

// SetRegularOnly sets RegularOnly of the [Default] logger.
func SetRegularOnly(v bool) Outcome {
	return Default.SetRegularOnly(v)
}

// GetOptions returns options of the [Default] logger.
func GetOptions() Options {
	return Default.Options()
}
