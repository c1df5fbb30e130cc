package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/prompt"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

var mfaCmd = &cobra.Command{
	Use:                "mfa [CODE] [--duration N]",
	Short:              "Elevates validated base credentials with an MFA proof",
	Long:               `Exchanges the validated base identity plus a one-time MFA code for a time-bounded session token. Refused while a session token or assumed role is already active; provider tokens do not stack.`,
	DisableFlagParsing: true,
	RunE:               runMfa,
}

func init() {
	RootCmd.AddCommand(mfaCmd)
}

func runMfa(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	req, err := resolver.ParseMfa(args)
	if err != nil {
		return err
	}
	if req.Code == "" {
		if req.Code, err = prompt.MaskedLine(cmd.ErrOrStderr(), "mfa code"); err != nil {
			return err
		}
	}
	if req.Code == "" {
		return fmt.Errorf("mfa code, %w", resolver.ErrMissingArgument)
	}

	slot := session.FromEnv()
	defer func() { session.Export(cmd.OutOrStdout(), slot.Snapshot()) }()

	ctx, cancel := providerContext()
	defer cancel()

	snap := slot.Snapshot()
	svc, err := stsClientFor(ctx, snap, "")
	if err != nil {
		return err
	}
	devices, err := iamClientFor(ctx, snap)
	if err != nil {
		return err
	}
	_, err = engine.New(slot, logger).Mfa(ctx, svc, devices, req.Code, defaultedDuration(req.Duration))
	return err
}
