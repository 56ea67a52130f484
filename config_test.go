package easylog

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestConfig(t *testing.T, files map[string]string) (*Config, error) {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	config := DefaultConfig()
	err := LoadConfigFS(config, "easylog.yml", fsys)
	return config, err
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, DefaultOptions(), c.Options)
	assert.Equal(t, SeverityLog, c.Severity)
	assert.Equal(t, ConsoleConfig{
		Info:  StreamStdout,
		Debug: StreamStdout,
		Warn:  StreamStderr,
		Error: StreamStderr,
	}, c.Console)
}

func TestLoadConfigFS(t *testing.T) {
	c, err := loadTestConfig(t, map[string]string{
		"easylog.yml": `
silenced: true
severity: warn
console:
  debug: stderr
  error: discard
`,
	})
	require.NoError(t, err)
	assert.Equal(t, Options{Silenced: true, DebugMode: true}, c.Options)
	assert.Equal(t, SeverityWarn, c.Severity)
	assert.Equal(t, ConsoleConfig{
		Info:  StreamStdout,
		Debug: StreamStderr,
		Warn:  StreamStderr,
		Error: StreamDiscard,
	}, c.Console)
	assert.Equal(t, "easylog.yml", c.SourceFile)
}

func TestLoadConfigFSIncludes(t *testing.T) {
	c, err := loadTestConfig(t, map[string]string{
		"base/common.yml": "failOnError: true\nseverity: debug\nconsole:\n  info: stderr\n",
		"base/quiet.yml":  "silenced: true\n",
		"easylog.yml":     "_includes:\n  - base/*.yml\nseverity: error\nconsole:\n  warn: discard\n",
	})
	require.NoError(t, err)
	assert.Equal(t, Options{
		Silenced:    true,
		DebugMode:   true,
		FailOnError: true,
	}, c.Options)
	assert.Equal(t, SeverityError, c.Severity)
	assert.Equal(t, StreamStderr, c.Console.Info)
	assert.Equal(t, StreamDiscard, c.Console.Warn)
	assert.Equal(t, "easylog.yml", c.SourceFile)
}

func TestLoadConfigFSNestedEnv(t *testing.T) {
	t.Setenv("EASYLOG_TEST_STREAM", "discard")
	c, err := loadTestConfig(t, map[string]string{
		"easylog.yml": `
console:
  info: ${EASYLOG_TEST_STREAM:stdout}
  error: ${EASYLOG_TEST_UNSET_VARIABLE:stdout}
`,
	})
	require.NoError(t, err)
	assert.Equal(t, StreamDiscard, c.Console.Info)
	assert.Equal(t, StreamStdout, c.Console.Error)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("EASYLOG_TEST_NAME", "easylog")
	v := expandEnv(map[string]any{
		"list":   []any{"${EASYLOG_TEST_NAME}", 1},
		"nested": map[any]any{"name": "${EASYLOG_TEST_NAME}-${EASYLOG_TEST_UNSET_VARIABLE:x}"},
	})
	assert.Equal(t, map[string]any{
		"list":   []any{"easylog", 1},
		"nested": map[any]any{"name": "easylog-x"},
	}, v)
}

func TestLoadConfigFSSourceFile(t *testing.T) {
	c, err := loadTestConfig(t, map[string]string{
		"base/common.yml": "failOnError: true\n",
		"easylog.yml":     "_includes:\n  - base/common.yml\n",
	})
	require.NoError(t, err)
	assert.True(t, c.FailOnError)
	assert.Equal(t, "easylog.yml", c.SourceFile)

	m := map[any]any{"console": map[any]any{"info": "stdout"}}
	stampSourceFile(m, "a.yml")
	assert.Equal(t, "a.yml", m["sourceFile"])
	assert.Equal(t, "a.yml", m["console"].(map[any]any)["sourceFile"])
}

func TestLoadConfigFSEnv(t *testing.T) {
	t.Setenv("EASYLOG_TEST_SILENT", "true")
	c, err := loadTestConfig(t, map[string]string{
		"easylog.yml": `
silenced: ${EASYLOG_TEST_SILENT:false}
debugMode: ${EASYLOG_TEST_UNSET_VARIABLE:false}
`,
	})
	require.NoError(t, err)
	assert.True(t, c.Silenced)
	assert.False(t, c.DebugMode)
}

func TestLoadConfigFSErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected string
	}{
		{"invalid yaml", "silenced: [", "Failed to unmarshal a YAML file 'easylog.yml'"},
		{"unknown stream", "console:\n  info: printer\n", "Unknown stream: printer"},
		{"unknown severity", "severity: fatal\n", "Unknown severity: fatal"},
		{"stream out of range", "console:\n  warn: 9\n", "console.warn must be one of stdout, stderr, discard(got: 9)"},
		{"severity out of range", "severity: 7\n", "severity must be one of LOG, DEBUG, WARN, ERROR(got: 7)"},
		{"includes not a list", "_includes: conf.d\n", "_includes must be a list of paths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadTestConfig(t, map[string]string{"easylog.yml": tt.data})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestLoadConfigFSNotFound(t *testing.T) {
	_, err := loadTestConfig(t, map[string]string{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, LoadConfig(c, "testdata/easylog.yml"))
	assert.Equal(t, Options{
		Silenced:    false,
		DebugMode:   false,
		FailOnError: true,
		RegularOnly: true,
	}, c.Options)
	assert.Equal(t, SeverityWarn, c.Severity)
	assert.Equal(t, StreamStderr, c.Console.Debug)
	assert.Equal(t, StreamStdout, c.Console.Info)
}

func TestNewFromConfig(t *testing.T) {
	c := DefaultConfig()
	c.Console = ConsoleConfig{
		Info:  StreamDiscard,
		Debug: StreamDiscard,
		Warn:  StreamDiscard,
		Error: StreamDiscard,
	}
	c.FailOnError = true

	l := NewFromConfig(c)
	assert.Equal(t, c.Options, l.Options())
	assert.True(t, l.Log("discarded").Succeeded())
	assert.True(t, l.Error("discarded").Failed())
}

func TestToConfigName(t *testing.T) {
	assert.Equal(t, "debugMode", toConfigName("DebugMode"))
	assert.Equal(t, "ID", toConfigName("ID"))
	assert.Equal(t, "x", toConfigName("X"))
}
