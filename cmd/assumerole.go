package cmd

import (
	"github.com/spf13/cobra"

	"github.com/credshell/credshell/internal/aliases"
	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

var assumeRoleCmd = &cobra.Command{
	Use:   "assume-role (ROLE_ARN | ROLE_NAME [ACCOUNT] | ALIAS) [--external-id ID] [--mfa CODE] [--duration N]",
	Short: "Assumes a role on top of the validated base identity",
	Long: `Resolves the role from an explicit ARN, a role name with optional account
id (defaulting to the session's current account), or an alias from the alias
file. When the first argument matches an alias entry verbatim, the whole
argument list is replaced by the alias body before parsing.`,
	DisableFlagParsing: true,
	RunE:               runAssumeRole,
}

func init() {
	RootCmd.AddCommand(assumeRoleCmd)
}

func runAssumeRole(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	req, err := resolver.ParseAssumeRole(args, aliases.New(aliasFile()))
	if err != nil {
		return err
	}
	req.Duration = defaultedDuration(req.Duration)

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
	_, err = engine.New(slot, logger).AssumeRole(ctx, svc, devices, req)
	return err
}
