package easylog

import "strconv"

// Options is a set of toggles of the [Logger] .
type Options struct {
	// Silenced declines all logs.
	Silenced bool `mapstructure:"silenced"`

	// DebugMode enables debug logs.
	DebugMode bool `mapstructure:"debugMode"`

	// FailOnError makes error logs return a failed outcome after writing.
	FailOnError bool `mapstructure:"failOnError"`

	// RegularOnly writes all logs into the info channel.
	RegularOnly bool `mapstructure:"regularOnly"`
}

// DefaultOptions returns default [Options] .
func DefaultOptions() Options {
	return Options{
		Silenced:    false,
		DebugMode:   true,
		FailOnError: false,
		RegularOnly: false,
	}
}

// Options returns a snapshot of the current options.
func (l *Logger) Options() Options {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.opts
}

// SetOptions replaces all options.
func (l *Logger) SetOptions(opts Options) Outcome {
	l.mu.Lock()
	l.opts = opts
	l.mu.Unlock()
	return success("options updated")
}

// Silenced returns true if the logger is silenced.
func (l *Logger) Silenced() bool {
	return l.Options().Silenced
}

// SetSilent sets whether the logger declines all logs.
func (l *Logger) SetSilent(v bool) Outcome {
	l.mu.Lock()
	l.opts.Silenced = v
	l.mu.Unlock()
	return optionUpdated("silenced", v)
}

// DebugMode returns true if debug logs are enabled.
func (l *Logger) DebugMode() bool {
	return l.Options().DebugMode
}

// SetDebugMode sets whether debug logs are written.
func (l *Logger) SetDebugMode(v bool) Outcome {
	l.mu.Lock()
	l.opts.DebugMode = v
	l.mu.Unlock()
	return optionUpdated("debugMode", v)
}

// FailOnError returns true if error logs return failed outcomes.
func (l *Logger) FailOnError() bool {
	return l.Options().FailOnError
}

// SetFailOnError sets whether error logs return failed outcomes.
func (l *Logger) SetFailOnError(v bool) Outcome {
	l.mu.Lock()
	l.opts.FailOnError = v
	l.mu.Unlock()
	return optionUpdated("failOnError", v)
}

// RegularOnly returns true if all logs are written to the info channel.
func (l *Logger) RegularOnly() bool {
	return l.Options().RegularOnly
}

// SetRegularOnly sets whether all logs are written to the info channel.
func (l *Logger) SetRegularOnly(v bool) Outcome {
	l.mu.Lock()
	l.opts.RegularOnly = v
	l.mu.Unlock()
	return optionUpdated("regularOnly", v)
}

// swapSilenced sets Silenced and returns the previous value.
func (l *Logger) swapSilenced(v bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	prev := l.opts.Silenced
	l.opts.Silenced = v
	return prev
}

func optionUpdated(name string, v bool) Outcome {
	return success(name + "=" + strconv.FormatBool(v))
}
