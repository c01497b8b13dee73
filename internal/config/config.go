// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
	"unicode/utf8"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Catalog CatalogConfig
	Export  ExportConfig
	Server  ServerConfig
	Logging LoggingConfig
}

// CatalogConfig holds price list discovery and parsing settings.
type CatalogConfig struct {
	// Dir is the directory scanned for price lists (default: catalog)
	Dir string `env:"CATALOG_DIR" default:"catalog"`

	// FileMarker is the substring a file name must contain to be loaded (default: price)
	FileMarker string `env:"CATALOG_FILE_MARKER" envAlt:"FILE_MARKER" default:"price"`

	// Delimiter is the single-character field separator (default: ,)
	Delimiter string `env:"CSV_DELIMITER" default:","`

	// Parser is the row splitter: naive (plain split) or csv (quoted fields) (default: naive)
	Parser string `env:"CSV_PARSER" default:"naive"`

	// MaxFileSize is the maximum allowed price list size: bytes or KB/MB/GB (default: 100MB)
	MaxFileSize int64 `env:"CATALOG_MAX_FILE_SIZE" default:"100MB" unit:"bytes"`
}

// ExportConfig holds aggregate table export settings.
type ExportConfig struct {
	// Path is the export target: .html, .msgpack, .db/.sqlite file or postgres:// URL
	Path string `env:"EXPORT_PATH" default:"prices_output.html"`

	// Timeout bounds database export targets (default: 2m)
	Timeout time.Duration `env:"EXPORT_TIMEOUT" default:"2m"`
}

// ServerConfig holds settings for the read-only browse server.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxSnapshots limits parallel /api/snapshot downloads (default: 2)
	MaxSnapshots int `env:"SERVER_MAX_SNAPSHOTS" default:"2"`

	// SnapshotWait is how long a snapshot request waits for a free slot (default: 5s)
	SnapshotWait time.Duration `env:"SERVER_SNAPSHOT_WAIT" default:"5s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DelimiterRune returns the configured delimiter as a rune.
// Validate guarantees it is exactly one character.
func (c *CatalogConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
