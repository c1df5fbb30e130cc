package cmd

import (
	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

var validateCmd = &cobra.Command{
	Use:                "validate [--silent]",
	Short:              "Checks the current credentials against the identity provider",
	Long:               `Fetches the caller identity with whatever credentials are current and refreshes the session's account, caller ARN and user id. The elevation layer does not change.`,
	DisableFlagParsing: true,
	RunE:               runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	silent, err := resolver.ParseSilent(args)
	if err != nil {
		return err
	}

	slot := session.FromEnv()
	defer func() { session.Export(cmd.OutOrStdout(), slot.Snapshot()) }()

	ctx, cancel := providerContext()
	defer cancel()

	svc, err := stsClientFor(ctx, slot.Snapshot(), "")
	if err != nil {
		return quiet(err, silent)
	}
	_, err = engine.New(slot, logger).Validate(ctx, svc, silent)
	return quiet(err, silent)
}
