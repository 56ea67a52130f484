package easylog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		severity Severity
		name     string
		channel  Channel
	}{
		{SeverityLog, "LOG", ChannelInfo},
		{SeverityDebug, "DEBUG", ChannelDebug},
		{SeverityWarn, "WARN", ChannelWarn},
		{SeverityError, "ERROR", ChannelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.severity.String())
			assert.Equal(t, tt.channel, tt.severity.Channel())

			s, err := ParseSeverity(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.severity, s)
		})
	}
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestParseSeverityAliases(t *testing.T) {
	for name, expected := range map[string]Severity{
		"info":     SeverityLog,
		" warning": SeverityWarn,
		"Error":    SeverityError,
		"debug":    SeverityDebug,
	} {
		s, err := ParseSeverity(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, s, name)
	}

	_, err := ParseSeverity("fatal")
	assert.EqualError(t, err, "Unknown severity: fatal")
}

func TestLinePrefix(t *testing.T) {
	assert.Equal(t, "[easylog] ", linePrefix(ChannelInfo, SeverityLog))
	assert.Equal(t, "[easylog] ", linePrefix(ChannelInfo, SeverityError))
	assert.Equal(t, "[easylog][WARN] ", linePrefix(ChannelWarn, SeverityWarn))
}

func TestWriterConsole(t *testing.T) {
	var info, warn bytes.Buffer
	c := &WriterConsole{Info: &info, Warn: &warn}

	require.NoError(t, c.Write(ChannelInfo, "a"))
	require.NoError(t, c.Write(ChannelWarn, "b"))
	require.NoError(t, c.Write(ChannelDebug, "dropped"))
	assert.Error(t, c.Write(Channel(7), "c"))

	assert.Equal(t, "a\n", info.String())
	assert.Equal(t, "b\n", warn.String())
}

func TestStdConsole(t *testing.T) {
	c, ok := StdConsole().(*WriterConsole)
	require.True(t, ok)
	assert.Equal(t, c.Info, c.Debug)
	assert.Equal(t, c.Warn, c.Error)
	assert.NotEqual(t, c.Info, c.Error)
}

func TestParseStream(t *testing.T) {
	for name, expected := range map[string]Stream{
		"":        StreamDefault,
		"stdout":  StreamStdout,
		"stderr":  StreamStderr,
		"discard": StreamDiscard,
	} {
		s, err := parseStream(name)
		require.NoError(t, err)
		assert.Equal(t, expected, s)
		if name != "" {
			assert.Equal(t, name, s.String())
		}
	}
	_, err := parseStream("printer")
	assert.EqualError(t, err, "Unknown stream: printer")
	assert.Nil(t, StreamDiscard.writer())
}
