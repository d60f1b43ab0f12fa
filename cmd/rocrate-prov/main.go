// Package main provides the rocrate-prov binary entry point: a thin
// command-line surface over the provenance query library. All query
// semantics live in the library; this file only parses flags, loads
// the crate and prints results.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	provenance "github.com/GusEllerm/ro-crate-provenance-tools"
	"github.com/GusEllerm/ro-crate-provenance-tools/crate"
	"github.com/GusEllerm/ro-crate-provenance-tools/model"
)

const (
	Version = "0.1.0"
	appName = "rocrate-prov"
)

var (
	cratePath string
	format    string
	maxDepth  int
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	// A local .env may carry CRATE_PATH so repeated queries against the
	// same crate need no flag.
	_ = godotenv.Load()

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Query workflow-run provenance crates",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cratePath, "crate", "c", os.Getenv("CRATE_PATH"),
		"crate directory or ro-crate-metadata.json path")
	cmd.PersistentFlags().StringVarP(&format, "format", "f", "toon",
		"output format: toon or json")
	cmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0,
		"bound closure traversals to this many hops (0 = unbounded)")

	cmd.AddCommand(
		lineageCmd(),
		ancestryCmd(),
		descendantsCmd(),
		siteCmd(),
		resolveCmd(),
		pathCmd(),
	)

	return cmd
}

func loadCrate() (*provenance.Crate, error) {
	if cratePath == "" {
		return nil, fmt.Errorf("no crate given: pass --crate or set CRATE_PATH")
	}

	info, err := os.Stat(cratePath)
	if err != nil {
		return nil, err
	}

	var c *provenance.Crate
	if info.IsDir() {
		c, err = provenance.FromDir(cratePath)
	} else {
		c, err = provenance.FromFile(cratePath)
	}
	if err != nil {
		return nil, err
	}

	if format == "json" {
		// A nil encoder degrades the Toon* methods to JSON.
		c.Encoder = nil
	}

	return c, nil
}

func traversalConfig() model.TraversalConfig {
	config := model.DefaultTraversalConfig()
	config.MaxDepth = maxDepth
	return config
}

func lineageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lineage <file>",
		Short: "Show what directly produced a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCrate()
			if err != nil {
				return err
			}
			out, err := c.ToonLineage(args[0])
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func ancestryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestry <file>",
		Short: "Show everything transitively upstream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCrate()
			if err != nil {
				return err
			}
			out, err := c.ToonAncestry(args[0], traversalConfig())
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func descendantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descendants <file>",
		Short: "Show everything transitively derived from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCrate()
			if err != nil {
				return err
			}
			out, err := c.ToonDescendants(args[0], traversalConfig())
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func siteCmd() *cobra.Command {
	var includeAll bool
	cmd := &cobra.Command{
		Use:   "site <site-id>",
		Short: "Show the artifacts belonging to one processing site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCrate()
			if err != nil {
				return err
			}
			out, err := c.ToonSiteSummary(args[0], includeAll)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&includeAll, "all", false, "include site parameters")
	return cmd
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <token>",
		Short: "Show which entity a token resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCrate()
			if err != nil {
				return err
			}
			ent, err := c.Resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%v\t%s\n", ent.ID, ent.Types, ent.Label())
			return nil
		},
	}
}

func pathCmd() *cobra.Command {
	var noCheck bool
	cmd := &cobra.Command{
		Use:   "path <file>",
		Short: "Resolve a file entity to a local path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCrate()
			if err != nil {
				return err
			}
			path, err := c.LocalPath(args[0], crate.PathOptions{CheckExists: !noCheck})
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "skip the existence check")
	return cmd
}
