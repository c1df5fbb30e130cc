package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/samltool"
	"github.com/credshell/credshell/internal/session"
)

var samlLoginCmd = &cobra.Command{
	Use:                "saml-login [--duration N]",
	Short:              "Starts a federated session through the external SAML helper",
	Long:               `Clears the session, delegates the federation exchange to the configured helper binary (saml-cmd) and imports the credential environment it exports. Role and account are parsed from the helper's response text best-effort.`,
	DisableFlagParsing: true,
	RunE:               runSamlLogin,
}

func init() {
	RootCmd.AddCommand(samlLoginCmd)
}

func runSamlLogin(cmd *cobra.Command, args []string) error {
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

	tool := samltool.New(viper.GetString("saml-cmd"))
	_, err = engine.New(slot, logger).SamlLogin(ctx, tool, defaultedDuration(duration))
	if err != nil {
		// an interrupted helper can leave processes behind
		if kerr := tool.KillHanging(); kerr != nil {
			logger.Debugf("helper cleanup: %s", kerr)
		}
	}
	return err
}
