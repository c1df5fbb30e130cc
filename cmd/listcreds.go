package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/credshell/credshell/internal/config"
	"github.com/credshell/credshell/internal/engine"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

var listCredsCmd = &cobra.Command{
	Use:                "list-creds [--file PATH]",
	Short:              "Lists the named sections of the shared credentials file",
	DisableFlagParsing: true,
	RunE:               runListCreds,
}

func init() {
	RootCmd.AddCommand(listCredsCmd)
}

func runListCreds(cmd *cobra.Command, args []string) error {
	if helpRequested(args) {
		return cmd.Help()
	}
	file, err := resolver.ParseFile(args)
	if err != nil {
		return err
	}
	if file == "" {
		file = viper.GetString("credentials-file")
	}
	if file == "" {
		file = config.SharedCredentialsFile()
	}

	profiles, err := engine.New(session.New(), logger).ListCreds(file)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
