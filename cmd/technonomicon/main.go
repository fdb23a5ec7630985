// Package main provides the technonomicon CLI: the HTTP server and one-shot
// craft/summon resolution for scripting and balance checks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericogr/technonomicon/internal/logging"
	"github.com/ericogr/technonomicon/internal/version"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "technonomicon",
		Short: "Spell crafting and ally summoning discovery engine",
		Long: `Technonomicon resolves spell crafts and summoning rituals from element and
code-bit compositions, tracks discoveries and evolves the spell library.

Examples:
  technonomicon serve
  technonomicon craft --element fire --code-bit damage --level 5 --data 150
  technonomicon summon -e wind -c summon -c heal --roll 5
  technonomicon catalog validate ./catalog.toml`,
		Version:       version.Current().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logging.SetLevel(logging.ParseLevel(logLevel))
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		serveCmd(),
		attemptCmd(kindSpell),
		attemptCmd(kindRitual),
		catalogCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
