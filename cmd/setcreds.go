package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/prompt"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

var setCredsCmd = &cobra.Command{
	Use:                "set-creds [PROFILE]",
	Short:              "Clears the session and validates a profile as the new base identity",
	Long:               `Wipes any existing session, then validates PROFILE against the identity provider. The profile name is read interactively when not supplied. On validation failure the session stays cleared.`,
	DisableFlagParsing: true,
	RunE:               runSetCreds,
}

func init() {
	RootCmd.AddCommand(setCredsCmd)
}

func runSetCreds(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	profile, err := resolver.ParseProfile(args)
	if err != nil {
		return err
	}
	if profile == "" {
		if profile, err = prompt.Line(os.Stdin, cmd.ErrOrStderr(), "profile name"); err != nil {
			return err
		}
	}
	if profile == "" {
		return fmt.Errorf("profile name, %w", resolver.ErrMissingArgument)
	}

	slot := session.FromEnv()
	defer func() { session.Export(cmd.OutOrStdout(), slot.Snapshot()) }()

	ctx, cancel := providerContext()
	defer cancel()

	svc, err := stsClientFor(ctx, session.Snapshot{}, profile)
	if err != nil {
		return err
	}
	_, err = engine.New(slot, logger).SetCreds(ctx, svc, profile)
	return err
}
