package cmd

import (
	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

var sessionTokenCmd = &cobra.Command{
	Use:                "get-session-token [--duration N]",
	Short:              "Vends a plain session token from the current base identity",
	DisableFlagParsing: true,
	RunE:               runSessionToken,
}

func init() {
	RootCmd.AddCommand(sessionTokenCmd)
}

func runSessionToken(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	duration, err := resolver.ParseDurationOnly(args)
	if err != nil {
		return err
	}

	slot := session.FromEnv()
	defer func() { session.Export(cmd.OutOrStdout(), slot.Snapshot()) }()

	ctx, cancel := providerContext()
	defer cancel()

	svc, err := stsClientFor(ctx, slot.Snapshot(), "")
	if err != nil {
		return err
	}
	_, err = engine.New(slot, logger).GetSessionToken(ctx, svc, defaultedDuration(duration))
	return err
}
