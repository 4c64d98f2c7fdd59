package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "h2h",
		Short: "Head-to-head heat sheet viewer",
		Long: `h2h reads speed skating heat sheets (PDF or text exports),
pairs the inner and outer lane skaters of every heat and shows,
exports or stores the result.

parse, view and export <file> keep nothing between runs. The database
(DB_DRIVER, DB_URL) is an optional archive used only by batch, list, db,
export --sheet-id and the h2hd daemon; it is not part of a viewer session.

Examples:
  h2h parse ritten.pdf --format yaml
  h2h view ritten.pdf
  h2h export ritten.pdf --out ritten.xlsx
  h2h batch --dir ./inbox`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().String("strategy", "", "Segmentation strategy: strict, global or tolerant (default from PARSE_STRATEGY)")
	rootCmd.PersistentFlags().String("locale", "", "Placeholder language for missing metadata: nl or en (default from PARSE_LOCALE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default from LOG_LEVEL)")

	rootCmd.AddCommand(parseCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(viewCmd(a))
	rootCmd.AddCommand(batchCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(dbCmd(a))
	return rootCmd
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
