package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/gnames/gn"
	app "github.com/gnames/gnmarine/pkg"
	"github.com/gnames/gnmarine/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

func driverFlag(cmd *cobra.Command) {
	s, _ := cmd.Flags().GetString("driver")
	if s != "" {
		opts = append(opts, config.OptDatabaseDriver(s))
	}
}

func hostFlag(cmd *cobra.Command) {
	s, _ := cmd.Flags().GetString("host")
	if s != "" {
		opts = append(opts, config.OptServerHost(s))
	}
}

func portFlag(cmd *cobra.Command) {
	i, _ := cmd.Flags().GetInt("port")
	if i > 0 {
		opts = append(opts, config.OptServerPort(i))
	}
}

// formats of the stats command output.
var formats = []string{"text", "json", "yaml"}

func formatFlag(cmd *cobra.Command) string {
	s, _ := cmd.Flags().GetString("format")
	if !slices.Contains(formats, s) {
		gn.Warn("Unknown format <em>%s</em>, using text", s)
		return "text"
	}
	return s
}

// applyFlags runs flag functions and updates the config with the
// resulting options.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	for _, f := range flags {
		f(cmd)
	}
	cfg.Update(opts)
}
