package config_test

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gnames/gnmarine/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnmarine"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gnmarine"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnmarine", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnmarine", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Database defaults
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "gnmarine", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "occurrences", cfg.Database.Collection)

		// Server defaults
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
		assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
		assert.Equal(t, ":8080", cfg.Server.Addr())

		// Assistant defaults
		assert.Empty(t, cfg.Assistant.APIKey)
		assert.NotEmpty(t, cfg.Assistant.Model)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionDatabaseDriver(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets mongo", input: "mongo", expected: "mongo"},
		{name: "sets sqlite", input: "sqlite", expected: "sqlite"},
		{name: "normalizes case", input: " SQLite ", expected: "sqlite"},
		{name: "ignores unknown", input: "mysql", expected: "postgres"},
		{name: "ignores empty", input: "", expected: "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseDriver(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Driver)
		})
	}
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabasePort(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "sets valid port", input: 6432, expected: 6432},
		{name: "ignores zero", input: 0, expected: 5432},
		{name: "ignores negative", input: -100, expected: 5432},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabasePort(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Port)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "require", input: "require", expected: "require"},
		{name: "upper case", input: "VERIFY-FULL", expected: "verify-full"},
		{name: "ignores invalid", input: "sometimes", expected: "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseSSLMode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionDatabaseCollection(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "sets name", input: "obis_records", expected: "obis_records"},
		{name: "rejects spaces", input: "obis records", expected: "occurrences"},
		{name: "rejects sql", input: "x; drop table y", expected: "occurrences"},
		{name: "rejects leading digit", input: "1table", expected: "occurrences"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseCollection(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Collection)
		})
	}
}

func TestOptionServer(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptServerHost("127.0.0.1"),
		config.OptServerPort(9000),
		config.OptServerRequestTimeout(2 * time.Second),
		config.OptServerShutdownTimeout(-time.Second),
		config.OptServerAllowedOrigins([]string{" https://a.org ", ""}),
	})
	assert.Equal("127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(2*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal([]string{"https://a.org"}, cfg.Server.AllowedOrigins)

	cfg.Update([]config.Option{config.OptServerAllowedOrigins([]string{" "})})
	assert.Equal([]string{"https://a.org"}, cfg.Server.AllowedOrigins)
}

func TestOptionLog(t *testing.T) {
	tests := []struct {
		name   string
		opt    config.Option
		format string
		level  string
		dest   string
	}{
		{
			name:   "text format",
			opt:    config.OptLogFormat("TEXT"),
			format: "text", level: "info", dest: "file",
		},
		{
			name:   "bad format",
			opt:    config.OptLogFormat("xml"),
			format: "json", level: "info", dest: "file",
		},
		{
			name:   "debug level",
			opt:    config.OptLogLevel("debug"),
			format: "json", level: "debug", dest: "file",
		},
		{
			name:   "bad level",
			opt:    config.OptLogLevel("trace"),
			format: "json", level: "info", dest: "file",
		},
		{
			name:   "stderr",
			opt:    config.OptLogDestination("stderr"),
			format: "json", level: "info", dest: "stderr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.format, cfg.Log.Format)
			assert.Equal(t, tt.level, cfg.Log.Level)
			assert.Equal(t, tt.dest, cfg.Log.Destination)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(3)})
	assert.Equal(t, 3, cfg.JobsNumber)
	cfg.Update([]config.Option{config.OptJobsNumber(0)})
	assert.Equal(t, 3, cfg.JobsNumber)
}

func TestToOptions(t *testing.T) {
	assert := assert.New(t)
	src := config.New()
	src.Update([]config.Option{
		config.OptDatabaseDriver("mongo"),
		config.OptDatabaseURI("mongodb://db:27017"),
		config.OptServerPort(9999),
		config.OptServerHost("0.0.0.0"),
		config.OptAssistantAPIKey("secret"),
		config.OptAssistantTimeout(time.Minute),
		config.OptLogLevel("warn"),
		config.OptJobsNumber(2),
		config.OptHomeDir("/tmp/home"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal("mongo", dst.Database.Driver)
	assert.Equal("mongodb://db:27017", dst.Database.URI)
	assert.Equal(9999, dst.Server.Port)
	assert.Equal("0.0.0.0", dst.Server.Host)
	assert.Equal("secret", dst.Assistant.APIKey)
	assert.Equal(time.Minute, dst.Assistant.Timeout)
	assert.Equal("warn", dst.Log.Level)
	assert.Equal(2, dst.JobsNumber)
	// runtime-only field is not carried over
	assert.Empty(dst.HomeDir)
}
