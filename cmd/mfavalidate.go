package cmd

import (
	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

var mfaValidateCmd = &cobra.Command{
	Use:                "mfa-validate [--silent]",
	Short:              "Checks the MFA session expiry against the local clock",
	DisableFlagParsing: true,
	RunE:               runMfaValidate,
}

func init() {
	RootCmd.AddCommand(mfaValidateCmd)
}

func runMfaValidate(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	silent, err := resolver.ParseSilent(args)
	if err != nil {
		return err
	}

	slot := session.FromEnv()
	defer func() { session.Export(cmd.OutOrStdout(), slot.Snapshot()) }()

	return quiet(engine.New(slot, logger).MfaValidate(silent), silent)
}
