package cmd

import (
	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/session"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipes the credential session back to unauthenticated",
	RunE:  runClear,
}

func init() {
	RootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	slot := session.FromEnv()
	snap := engine.New(slot, logger).Clear()
	session.Export(cmd.OutOrStdout(), snap)
	return nil
}
