// Package config provides configuration management for gnmarine.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     max_connections, uri, path, collection
//   - Server: host, port, request_timeout, shutdown_timeout, allowed_origins
//   - Assistant: api_key, model, timeout
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNMARINE_ prefix with underscores for nesting:
//
//	GNMARINE_DATABASE_DRIVER=postgres
//	GNMARINE_DATABASE_HOST=localhost
//	GNMARINE_SERVER_PORT=8080
//	GNMARINE_ASSISTANT_API_KEY=...
//	GNMARINE_LOG_LEVEL=info
package config

import (
	"runtime"
	"time"
)

// Config represents the complete gnmarine configuration.
type Config struct {
	// Database contains settings of the occurrence record store.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Server contains settings of the HTTP query surface.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Assistant contains settings of the hosted text-generation model.
	Assistant AssistantConfig `mapstructure:"assistant" yaml:"assistant"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of scientific name parsers kept in the pool.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig describes how to reach the occurrence record store.
type DatabaseConfig struct {
	// Driver selects the store implementation.
	// Valid values: "postgres", "mongo", "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL or MongoDB database name.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the PostgreSQL SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// MaxConnections caps the PostgreSQL connection pool.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`

	// URI is the MongoDB connection string.
	URI string `mapstructure:"uri" yaml:"uri"`

	// Path is the location of an SQLite snapshot file.
	Path string `mapstructure:"path" yaml:"path"`

	// Collection is the table (PostgreSQL, SQLite) or collection (MongoDB)
	// that keeps occurrence records.
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// ServerConfig contains settings of the HTTP server.
type ServerConfig struct {
	// Host is the interface the server binds to. Empty means all interfaces.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the TCP port of the server.
	Port int `mapstructure:"port" yaml:"port"`

	// RequestTimeout bounds every record store call made for one request.
	// A request that runs out of time gets ServiceUnavailable.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`

	// ShutdownTimeout limits graceful shutdown attempts.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	// AllowedOrigins lists CORS origins allowed to call the API.
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// AssistantConfig contains settings for the generative assistant.
type AssistantConfig struct {
	// APIKey of the Gemini API. Assistant endpoints are unavailable
	// when it is empty.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// Model is the name of the text-generation model.
	Model string `mapstructure:"model" yaml:"model"`

	// Timeout bounds one call to the model.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:         "postgres",
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Password:       "postgres",
			Database:       "gnmarine",
			SSLMode:        "disable",
			MaxConnections: 10,
			URI:            "mongodb://localhost:27017",
			Path:           "occurrences.sqlite",
			Collection:     "occurrences",
		},
		Server: ServerConfig{
			Port:            8080,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Assistant: AssistantConfig{
			Model:   "gemini-2.0-flash",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
