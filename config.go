package easylog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"dario.cat/mergo"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/bmatcuk/doublestar/v4"
)

// Config is a definition of the [Logger] .
//
//	_includes:
//	  - conf.d/*.yml
//	silenced: false
//	debugMode: ${EASYLOG_DEBUG:true}
//	failOnError: false
//	regularOnly: false
//	severity: log
//	console:
//	  info: stdout
//	  debug: stdout
//	  warn: stderr
//	  error: stderr
type Config struct {
	Options `mapstructure:",squash"`

	// Severity is a severity used by commands when no severity is given.
	Severity Severity `mapstructure:"severity"`

	// Console is a definition of the console channels.
	Console ConsoleConfig `mapstructure:"console"`

	// SourceFile is a source file path that contains this configuration.
	SourceFile string `mapstructure:"sourceFile"`
}

// DefaultConfig returns a [Config] with default values.
func DefaultConfig() *Config {
	c := &Config{
		Options:  DefaultOptions(),
		Severity: SeverityLog,
	}
	_ = c.Console.ConfigLoaded("console")
	return c
}

// ConfigLoaded is an event handler will be executed when config is loaded.
func (c *Config) ConfigLoaded(path string) []error {
	if c.Severity < SeverityLog || c.Severity > SeverityError {
		return []error{fmt.Errorf("%s must be one of LOG, DEBUG, WARN, ERROR(got: %d)",
			joinConfigPath(path, "severity"), int(c.Severity))}
	}
	return nil
}

// ConsoleConfig maps console channels to standard streams.
type ConsoleConfig struct {
	Info  Stream `mapstructure:"info"`
	Debug Stream `mapstructure:"debug"`
	Warn  Stream `mapstructure:"warn"`
	Error Stream `mapstructure:"error"`
}

// ConfigLoaded is an event handler will be executed when config is loaded.
// Channels without streams are mapped to the same streams as [StdConsole] .
func (c *ConsoleConfig) ConfigLoaded(path string) []error {
	var errs []error
	for _, s := range []struct {
		name  string
		value *Stream
		def   Stream
	}{
		{"info", &c.Info, StreamStdout},
		{"debug", &c.Debug, StreamStdout},
		{"warn", &c.Warn, StreamStderr},
		{"error", &c.Error, StreamStderr},
	} {
		if *s.value < StreamDefault || *s.value > StreamDiscard {
			errs = append(errs, fmt.Errorf("%s must be one of stdout, stderr, discard(got: %d)",
				joinConfigPath(path, s.name), int(*s.value)))
			continue
		}
		if *s.value == StreamDefault {
			*s.value = s.def
		}
	}
	return errs
}

// Console returns a [Console] that writes to the configured streams.
func (c *ConsoleConfig) Console() Console {
	return &WriterConsole{
		Info:  c.Info.writer(),
		Debug: c.Debug.writer(),
		Warn:  c.Warn.writer(),
		Error: c.Error.writer(),
	}
}

// NewFromConfig returns a new [Logger] configured by c.
func NewFromConfig(c *Config) *Logger {
	return New(c.Console.Console(), c.Options)
}

// LoadConfigFS read a config file from `path` in `fs`.
func LoadConfigFS(target any, path string, fs fs.FS) error {
	m, err := loadMap(path, fs)
	if err != nil {
		return err
	}

	sm := map[string]any{}
	for key, value := range m {
		sm[fmt.Sprint(key)] = value
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToStreamHookFunc(),
			stringToSeverityHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}

	err = decoder.Decode(sm)
	if err != nil {
		return fmt.Errorf("Failed to map to a structure: %w", err)
	}
	v := reflect.ValueOf(&target)
	errs := walkConfig(v, "")
	if len(errs) != 0 {
		return errors.Join(errs...)
	}
	return nil
}

// osFS is a [fs.FS] that accepts any OS path, including absolute ones.
type osFS struct{}

func (osFS) Open(path string) (fs.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// LoadConfig read a config file from `path` relative to the current directory.
func LoadConfig(target any, path string) error {
	return LoadConfigFS(target, path, osFS{})
}

func stringToStreamHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(StreamDefault) {
			return data, nil
		}
		return parseStream(strings.ToLower(strings.TrimSpace(data.(string))))
	}
}

func stringToSeverityHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(SeverityLog) {
			return data, nil
		}
		return ParseSeverity(data.(string))
	}
}

func loadMap(path string, fs fs.FS) (m map[any]any, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tm := map[any]any{}
	err = yaml.Unmarshal(data, &tm)
	if err != nil {
		return nil, fmt.Errorf("Failed to unmarshal a YAML file '%s': %w", path, err)
	}

	var files []string
	if includes, ok := tm["_includes"]; ok {
		list, ok := includes.([]any)
		if !ok {
			return nil, fmt.Errorf("_includes must be a list of paths in '%s'", path)
		}
		for _, include := range list {
			fullPath := fmt.Sprint(include)
			if !filepath.IsAbs(fullPath) {
				fullPath = filepath.Join(filepath.Dir(path), fullPath)
			}
			paths, err := doublestar.Glob(fs, fullPath)
			if err != nil {
				return nil, err
			}
			files = append(files, paths...)
		}
	}
	delete(tm, "_includes")
	expandEnv(tm)
	stampSourceFile(tm, path)

	m = map[any]any{}
	for _, file := range files {
		include, err := loadMap(os.Expand(file, envMapper), fs)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(&m, include, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
			return nil, fmt.Errorf("Failed to merge '%s' into '%s': %w", file, path, err)
		}
	}
	if err := mergo.Merge(&m, tm, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
		return nil, fmt.Errorf("Failed to merge '%s': %w", path, err)
	}
	return m, nil
}

// expandEnv replaces ${VAR} and ${VAR:default} in all string values.
func expandEnv(v any) any {
	switch x := v.(type) {
	case string:
		return os.Expand(x, envMapper)
	case []any:
		for i := range x {
			x[i] = expandEnv(x[i])
		}
	case map[string]any:
		for k, e := range x {
			x[k] = expandEnv(e)
		}
	case map[any]any:
		for k, e := range x {
			x[k] = expandEnv(e)
		}
	}
	return v
}

// stampSourceFile records the file that defines each mapping.
func stampSourceFile(v any, path string) {
	switch x := v.(type) {
	case []any:
		for _, e := range x {
			stampSourceFile(e, path)
		}
	case map[string]any:
		for _, e := range x {
			stampSourceFile(e, path)
		}
		x["sourceFile"] = path
	case map[any]any:
		for _, e := range x {
			stampSourceFile(e, path)
		}
		x["sourceFile"] = path
	}
}

func envMapper(placeholder string) string {
	name, def, _ := strings.Cut(placeholder, ":")
	if val, ok := os.LookupEnv(name); ok {
		return val
	}
	return def
}

type configLoadedHandler interface {
	ConfigLoaded(string) []error
}

func walkConfig(v reflect.Value, path string) []error {
	var errs []error
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		errs = append(errs, walkConfig(v.Elem(), path)...)
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			errs = append(errs, walkConfig(v.Index(i), fmt.Sprintf("%s[%d]", path, i))...)
		}
	case reflect.Struct:
		if v.CanAddr() {
			if handler, ok := v.Addr().Interface().(configLoadedHandler); ok {
				errs = append(errs, handler.ConfigLoaded(path)...)
			}
		}
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			childPath := joinConfigPath(path, toConfigName(field.Name))
			if strings.Contains(field.Tag.Get("mapstructure"), "squash") {
				childPath = path
			}
			errs = append(errs, walkConfig(v.Field(i), childPath)...)
		}
	default:
	}
	return errs
}

func joinConfigPath(path, name string) string {
	if len(path) == 0 {
		return name
	}
	return path + "." + name
}

// toConfigName lower-cases the initial of a Go identifier unless it
// starts an acronym like "ID".
func toConfigName(v string) string {
	first, size := utf8.DecodeRuneInString(v)
	if size == 0 {
		return v
	}
	if size == len(v) {
		return string(unicode.ToLower(first))
	}
	second, _ := utf8.DecodeRuneInString(v[size:])
	if unicode.IsUpper(first) && unicode.IsLower(second) {
		return string(unicode.ToLower(first)) + v[size:]
	}
	return v
}
