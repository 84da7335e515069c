/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gnmarine/internal/ioschema"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create occurrence schema and indexes",
		Long: `Create the occurrence table or collection with its indexes.

This command:
  1. Connects to the configured record store
  2. PostgreSQL: creates the table using GORM AutoMigrate and sets
     "C" collation on indexed text columns
  3. SQLite: creates the table and indexes in the snapshot file
  4. MongoDB: creates indexes of the collection

Existing tables and data are kept.

Examples:
  gnmarine create
  gnmarine create --driver sqlite`,
		RunE: runCreate,
	}

	createCmd.Flags().StringP("driver", "d", "",
		"record store driver (postgres, mongo, sqlite)")

	return createCmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd, driverFlag)
	ctx := context.Background()

	gn.Info("Creating schema of <em>%s</em> in %s store...",
		cfg.Database.Collection, cfg.Database.Driver)

	if err := ioschema.NewManager(cfg).Create(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Schema creation complete")
	return nil
}
