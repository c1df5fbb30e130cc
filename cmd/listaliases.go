package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/aliases"
	"github.com/credshell/credshell/internal/engine"
)

var listAliasesCmd = &cobra.Command{
	Use:   "list-aliases",
	Short: "Lists assume-role aliases from the alias file",
	RunE:  runListAliases,
}

func init() {
	RootCmd.AddCommand(listAliasesCmd)
}

func runListAliases(cmd *cobra.Command, args []string) error {
	entries, err := aliases.New(aliasFile()).List()
	if err != nil {
		return fmt.Errorf("%s, %w", err, engine.ErrToolUnavailable)
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Name, e.Args)
	}
	return nil
}
