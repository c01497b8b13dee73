package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Load reads configuration from environment variables.
// Unset values fall back to their default tag. Every malformed value is
// reported, not only the first, and the result is then validated.
func Load() (*Config, error) {
	cfg := &Config{}

	var errs []string
	loadStruct(reflect.ValueOf(cfg).Elem(), &errs)
	if len(errs) > 0 {
		return nil, fmt.Errorf("config load:\n  - %s", strings.Join(errs, "\n  - "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// loadStruct walks nested config sections and fills every env-tagged field.
//
// Supported tags:
//
//	env      primary variable name
//	envAlt   fallback variable name, read when env is unset
//	default  value used when neither variable is set
//	required "true" to reject an unset variable
//	unit     "bytes" to accept sizes such as 512KB or 100MB
func loadStruct(v reflect.Value, errs *[]string) {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			loadStruct(fieldVal, errs)
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}

		value, source := lookupEnv(envName, field.Tag.Get("envAlt"))
		if value == "" {
			if field.Tag.Get("required") == "true" {
				*errs = append(*errs, fmt.Sprintf("required environment variable %s is not set", envName))
				continue
			}
			value, source = field.Tag.Get("default"), "default"
		}
		if value == "" {
			continue
		}

		if field.Tag.Get("unit") == "bytes" {
			n, err := parseByteSize(value)
			if err != nil {
				*errs = append(*errs, fmt.Sprintf("invalid value for %s=%q (%s): %v", envName, value, source, err))
				continue
			}
			value = strconv.FormatInt(n, 10)
		}

		if err := setField(fieldVal, value); err != nil {
			*errs = append(*errs, fmt.Sprintf("invalid value for %s=%q (%s): %v", envName, value, source, err))
		}
	}
}

// lookupEnv returns the first non-empty variable among name and alt,
// together with the name it came from.
func lookupEnv(name, alt string) (string, string) {
	if v := os.Getenv(name); v != "" {
		return v, name
	}
	if alt != "" {
		if v := os.Getenv(alt); v != "" {
			return v, alt
		}
	}
	return "", ""
}

var byteUnits = []struct {
	suffix string
	scale  int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// parseByteSize parses a plain byte count or a number with a KB, MB or GB
// suffix (binary multiples, case-insensitive).
func parseByteSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	scale := int64(1)
	for _, u := range byteUnits {
		if strings.HasSuffix(s, u.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			scale = u.scale
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %w", err)
	}
	return n * scale, nil
}

// setField converts value to the field's kind.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.SetInt(int64(d))
			return nil
		}
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Catalog validation
	if strings.TrimSpace(c.Catalog.Dir) == "" {
		errs = append(errs, "CATALOG_DIR must not be empty")
	}
	if c.Catalog.FileMarker == "" {
		errs = append(errs, "CATALOG_FILE_MARKER must not be empty")
	}
	if utf8.RuneCountInString(c.Catalog.Delimiter) != 1 {
		errs = append(errs, fmt.Sprintf("CSV_DELIMITER (%q) must be a single character", c.Catalog.Delimiter))
	} else if d := c.Catalog.DelimiterRune(); d == '\n' || d == '\r' || d == '"' || d == utf8.RuneError {
		errs = append(errs, fmt.Sprintf("CSV_DELIMITER (%q) is not a valid delimiter", c.Catalog.Delimiter))
	}
	validParsers := map[string]bool{"naive": true, "csv": true}
	if !validParsers[strings.ToLower(strings.TrimSpace(c.Catalog.Parser))] {
		errs = append(errs, fmt.Sprintf("CSV_PARSER (%q) must be one of: naive, csv", c.Catalog.Parser))
	}
	if c.Catalog.MaxFileSize <= 0 {
		errs = append(errs, "CATALOG_MAX_FILE_SIZE must be positive")
	}

	// Export validation
	if strings.TrimSpace(c.Export.Path) == "" {
		errs = append(errs, "EXPORT_PATH must not be empty")
	}
	if c.Export.Timeout <= 0 {
		errs = append(errs, "EXPORT_TIMEOUT must be positive")
	}

	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "SERVER_REQUEST_TIMEOUT must be positive")
	}
	if c.Server.MaxSnapshots < 1 {
		errs = append(errs, fmt.Sprintf("SERVER_MAX_SNAPSHOTS (%d) must be at least 1", c.Server.MaxSnapshots))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a safe string representation of the config for logging.
// Database credentials in the export target are masked.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	fmt.Fprintf(&b, "Catalog: {Dir: %q, FileMarker: %q, Delimiter: %q, Parser: %q, MaxFileSize: %d}, ",
		c.Catalog.Dir, c.Catalog.FileMarker, c.Catalog.Delimiter, c.Catalog.Parser, c.Catalog.MaxFileSize)
	fmt.Fprintf(&b, "Export: {Path: %q, Timeout: %s}, ", MaskTarget(c.Export.Path), c.Export.Timeout)
	fmt.Fprintf(&b, "Server: {Addr: %q, MaxSnapshots: %d}, ", c.Server.Addr(), c.Server.MaxSnapshots)
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}", c.Logging.Level, c.Logging.Format)
	b.WriteString("}")
	return b.String()
}

// MaskTarget hides database URLs, which may carry credentials.
func MaskTarget(target string) string {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return "[MASKED]"
	}
	return target
}
