package easylog

import (
	"fmt"
	"strings"
)

// Severity is a severity of the log.
type Severity int

const (
	// SeverityLog is a regular log.
	SeverityLog Severity = iota

	// SeverityDebug is a debug log.
	SeverityDebug

	// SeverityWarn is a warning log.
	SeverityWarn

	// SeverityError is an error log.
	SeverityError
)

var severityNames = [...]string{"LOG", "DEBUG", "WARN", "ERROR"}

// String implements [fmt].Stringer.
func (s Severity) String() string {
	if s < SeverityLog || s > SeverityError {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// Channel returns a default [Channel] for this severity.
func (s Severity) Channel() Channel {
	switch s {
	case SeverityDebug:
		return ChannelDebug
	case SeverityWarn:
		return ChannelWarn
	case SeverityError:
		return ChannelError
	default:
		return ChannelInfo
	}
}

// ParseSeverity converts a name like "warn" into a [Severity] .
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LOG", "INFO":
		return SeverityLog, nil
	case "DEBUG":
		return SeverityDebug, nil
	case "WARN", "WARNING":
		return SeverityWarn, nil
	case "ERROR":
		return SeverityError, nil
	}
	return SeverityLog, fmt.Errorf("Unknown severity: %s", name)
}

// Channel is a console output channel.
type Channel int

const (
	// ChannelInfo is a plain(info) channel.
	ChannelInfo Channel = iota

	// ChannelDebug is a debug channel.
	ChannelDebug

	// ChannelWarn is a warning channel.
	ChannelWarn

	// ChannelError is an error channel.
	ChannelError
)

// String implements [fmt].Stringer.
func (c Channel) String() string {
	switch c {
	case ChannelInfo:
		return "info"
	case ChannelDebug:
		return "debug"
	case ChannelWarn:
		return "warn"
	case ChannelError:
		return "error"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// Tag is prepended to every line this package writes.
const Tag = "[easylog]"

func linePrefix(ch Channel, severity Severity) string {
	if ch == ChannelInfo {
		return Tag + " "
	}
	return Tag + "[" + severity.String() + "] "
}
