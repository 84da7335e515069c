package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the record store implementation.
// Valid values: "postgres", "mongo", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseMaxConnections sets the size of PostgreSQL connection pool.
func OptDatabaseMaxConnections(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Max Connections", i) {
			c.Database.MaxConnections = i
		}
	}
}

// OptDatabaseURI sets the MongoDB connection string.
func OptDatabaseURI(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database URI", s) {
			c.Database.URI = s
		}
	}
}

// OptDatabasePath sets the location of SQLite snapshot.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseCollection sets the table or collection with occurrences.
func OptDatabaseCollection(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidIdent("Database Collection", s) {
			c.Database.Collection = s
		}
	}
}

// OptServerHost sets the interface for the HTTP server. Empty string
// means all interfaces and is accepted.
func OptServerHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Server.Host = s
	}
}

// OptServerPort sets the port of the HTTP server.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptServerRequestTimeout sets the time limit for store calls of one request.
func OptServerRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Server Request Timeout", d) {
			c.Server.RequestTimeout = d
		}
	}
}

// OptServerShutdownTimeout sets the time limit for graceful shutdown.
func OptServerShutdownTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Server Shutdown Timeout", d) {
			c.Server.ShutdownTimeout = d
		}
	}
}

// OptServerAllowedOrigins sets CORS origins. Empty entries are dropped.
func OptServerAllowedOrigins(ss []string) Option {
	var res []string
	for _, v := range ss {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return func(c *Config) {
		if len(res) > 0 {
			c.Server.AllowedOrigins = res
		}
	}
}

// OptAssistantAPIKey sets the API key of the text-generation service.
func OptAssistantAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Assistant API Key", s) {
			c.Assistant.APIKey = s
		}
	}
}

// OptAssistantModel sets the text-generation model name.
func OptAssistantModel(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Assistant Model", s) {
			c.Assistant.Model = s
		}
	}
}

// OptAssistantTimeout sets the time limit of one assistant call.
func OptAssistantTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Assistant Timeout", d) {
			c.Assistant.Timeout = d
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of parsers in the name parser pool.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
