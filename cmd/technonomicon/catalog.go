package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ericogr/technonomicon/internal/config"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect catalog files",
	}
	cmd.AddCommand(catalogValidateCmd())
	return cmd
}

func catalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a JSON or TOML catalog (default: the built-in one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			lc, err := config.LoadCatalog(path)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", color.RedString("✗"), err)
				return err
			}
			source := path
			if source == "" {
				source = "built-in catalog"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("✓"), source)
			fmt.Fprintf(cmd.OutOrStdout(), "  elements: %d (%d core)\n", len(lc.Catalog.Elements()), len(lc.Catalog.CoreElementIDs()))
			fmt.Fprintf(cmd.OutOrStdout(), "  code bits: %d (%d core)\n", len(lc.Catalog.CodeBits()), len(lc.Catalog.CoreCodeBitIDs()))
			fmt.Fprintf(cmd.OutOrStdout(), "  spells: %d\n", len(lc.Spells))
			fmt.Fprintf(cmd.OutOrStdout(), "  rituals: %d\n", len(lc.Rituals))
			return nil
		},
	}
}
