package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmarine/internal/iostore"
	"github.com/gnames/gnmarine/pkg/species"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func getStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print global statistics of the record store",
		Long: `Print global statistics of occurrence records: totals, top species,
habitat and locality distributions, depth statistics and recent activity.

Examples:
  gnmarine stats
  gnmarine stats --format json
  gnmarine stats -f yaml --driver mongo`,
		RunE: runStats,
	}

	statsCmd.Flags().StringP("driver", "d", "",
		"record store driver (postgres, mongo, sqlite)")
	statsCmd.Flags().StringP("format", "f", "text",
		"output format (text, json, yaml)")
	return statsCmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd, driverFlag)
	format := formatFlag(cmd)
	ctx := context.Background()

	s, err := iostore.Open(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	engine := species.New(s, species.OptTimeout(cfg.Server.RequestTimeout))
	res, err := engine.Stats(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = writeStats(os.Stdout, res, format); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func writeStats(w io.Writer, st species.Stats, format string) error {
	switch format {
	case "json":
		res, err := gnfmt.GNjson{Pretty: true}.Encode(st)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(res))
		return err
	case "yaml":
		return writeYAML(w, st)
	}
	return writeStatsText(w, st)
}

// writeYAML keeps JSON field names and order by reading the JSON form
// into a YAML node tree.
func writeYAML(w io.Writer, st species.Stats) error {
	js, err := gnfmt.GNjson{}.Encode(st)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err = yaml.Unmarshal(js, &doc); err != nil {
		return err
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func writeStatsText(w io.Writer, st species.Stats) error {
	ov := st.Overview
	lines := []string{
		"Overview",
		fmt.Sprintf("  occurrences:  %s", humanize.Comma(int64(ov.TotalOccurrences))),
		fmt.Sprintf("  species:      %s", humanize.Comma(int64(ov.UniqueSpecies))),
		fmt.Sprintf("  localities:   %s", humanize.Comma(int64(ov.TotalLocations))),
		fmt.Sprintf("  habitats:     %s", humanize.Comma(int64(ov.TotalHabitats))),
	}

	if len(st.TopSpecies) > 0 {
		lines = append(lines, "", "Top species")
		for i, v := range st.TopSpecies {
			lines = append(lines, fmt.Sprintf("  %s %s: %s occurrences at %s",
				humanize.Ordinal(i+1), v.ScientificName,
				humanize.Comma(int64(v.OccurrenceCount)),
				plural(v.LocationCount, "locality", "localities"),
			))
		}
	}

	if len(st.HabitatDistribution) > 0 {
		lines = append(lines, "", "Habitats")
		for _, v := range st.HabitatDistribution {
			lines = append(lines, fmt.Sprintf("  %s: %s", v.Habitat,
				humanize.Comma(int64(v.Count))))
		}
	}

	if len(st.LocalityDistribution) > 0 {
		lines = append(lines, "", "Localities")
		for _, v := range st.LocalityDistribution {
			lines = append(lines, fmt.Sprintf("  %s: %s", v.Locality,
				humanize.Comma(int64(v.Count))))
		}
	}

	lines = append(lines, "", "Depth")
	if d := st.DepthStatistics; d != nil {
		lines = append(lines,
			fmt.Sprintf("  recorded:     %sm - %sm",
				humanize.Ftoa(d.MinRecordedDepth), humanize.Ftoa(d.MaxRecordedDepth)),
			fmt.Sprintf("  average:      %sm - %sm",
				humanize.Ftoa(d.AverageMinDepth), humanize.Ftoa(d.AverageMaxDepth)),
		)
	} else {
		lines = append(lines, "  no records with depth")
	}

	if len(st.RecentActivity) > 0 {
		lines = append(lines, "", "Recent activity")
		for _, v := range st.RecentActivity {
			lines = append(lines, fmt.Sprintf("  %s: %s", v.Date,
				humanize.Comma(int64(v.Occurrences))))
		}
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}
