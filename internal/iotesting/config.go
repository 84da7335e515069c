// Package iotesting provides shared test utilities and fixtures.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"

	"github.com/gnames/gnmarine/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnmarine_test"

	// TestCollection is the table or collection used by integration tests.
	TestCollection = "occurrences_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from defaults, applies GNMARINE_TEST_* environment variables
// and always uses TestDatabaseName and TestCollection for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("GNMARINE_TEST_DB_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("GNMARINE_TEST_DB_PORT"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(i))
		}
	}
	if s := os.Getenv("GNMARINE_TEST_DB_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("GNMARINE_TEST_DB_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := os.Getenv("GNMARINE_TEST_MONGO_URI"); s != "" {
		opts = append(opts, config.OptDatabaseURI(s))
	}
	opts = append(opts,
		config.OptDatabaseDatabase(TestDatabaseName),
		config.OptDatabaseCollection(TestCollection),
	)
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for
// tests with the given driver.
func GetTestDatabaseConfig(driver string) *config.DatabaseConfig {
	cfg := GetTestConfig()
	cfg.Update([]config.Option{config.OptDatabaseDriver(driver)})
	return &cfg.Database
}
