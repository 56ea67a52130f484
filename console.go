package easylog

import (
	"fmt"
	"io"
	"os"
)

// Console writes lines into console channels.
type Console interface {
	// Write writes a line into the given channel.
	// line does not contain a trailing newline.
	Write(ch Channel, line string) error
}

// WriterConsole is a [Console] that writes to arbitrary writers.
// A nil writer discards lines for the channel.
type WriterConsole struct {
	Info  io.Writer
	Debug io.Writer
	Warn  io.Writer
	Error io.Writer
}

// Write implements [Console] .
func (c *WriterConsole) Write(ch Channel, line string) error {
	var w io.Writer
	switch ch {
	case ChannelInfo:
		w = c.Info
	case ChannelDebug:
		w = c.Debug
	case ChannelWarn:
		w = c.Warn
	case ChannelError:
		w = c.Error
	default:
		return fmt.Errorf("Unknown channel: %s", ch)
	}
	if w == nil {
		return nil
	}
	_, err := io.WriteString(w, line+"\n")
	return err
}

// StdConsole returns a [Console] that writes info and debug lines to
// stdout, warn and error lines to stderr.
func StdConsole() Console {
	return &WriterConsole{
		Info:  os.Stdout,
		Debug: os.Stdout,
		Warn:  os.Stderr,
		Error: os.Stderr,
	}
}

// Stream is a standard stream that a channel is written to.
type Stream int

const (
	// StreamDefault is a default value of Stream.
	StreamDefault Stream = iota

	// StreamStdout is the standard output.
	StreamStdout

	// StreamStderr is the standard error.
	StreamStderr

	// StreamDiscard drops lines.
	StreamDiscard
)

// String implements [fmt].Stringer.
func (s Stream) String() string {
	switch s {
	case StreamStdout:
		return "stdout"
	case StreamStderr:
		return "stderr"
	case StreamDiscard:
		return "discard"
	}
	return "default"
}

func (s Stream) writer() io.Writer {
	switch s {
	case StreamStdout:
		return os.Stdout
	case StreamStderr:
		return os.Stderr
	}
	return nil
}

func parseStream(name string) (Stream, error) {
	switch name {
	case "", "default":
		return StreamDefault, nil
	case "stdout":
		return StreamStdout, nil
	case "stderr":
		return StreamStderr, nil
	case "discard":
		return StreamDiscard, nil
	}
	return StreamDefault, fmt.Errorf("Unknown stream: %s", name)
}
