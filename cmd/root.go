package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/credshell/credshell/internal/config"
	"github.com/credshell/credshell/internal/logging"
)

var (
	cfgFile string
	verbose bool
	logger  = logging.New(os.Stderr)

	RootCmd = &cobra.Command{
		Use:   config.SELF_NAME,
		Short: "Layered temporary credential sessions for AWS",
		Long: `Manages a single short-lived credential session against AWS STS:
set base credentials, elevate them with MFA, elevate further by assuming a
cross-account role. Each successful step replaces the session's credential
triple and is re-exported for the hosting shell to eval.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// errQuiet marks failures of a --silent call so Execute does not log
// them; the silence guarantee covers the whole invocation.
var errQuiet = errors.New("silenced")

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		if !errors.Is(err, errQuiet) {
			logger.Errorf("%s", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default $HOME/.credshell.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.HomeDir())
		viper.SetConfigType("yaml")
		viper.SetConfigName(fmt.Sprintf(".%s", config.SELF_NAME))
	}

	viper.SetDefault("default-duration", config.DEFAULT_DURATION_SECONDS)
	viper.SetDefault("provider-timeout", config.DEFAULT_PROVIDER_TIMEOUT)
	viper.SetDefault("saml-cmd", fmt.Sprintf("%s-saml", config.SELF_NAME))
	viper.AutomaticEnv()

	logger.Verbose(verbose)

	if err := viper.ReadInConfig(); err == nil {
		logger.Debugf("using config file: %s", viper.ConfigFileUsed())
	}
}

// providerContext caps the latency of any single identity-provider
// call; a helper that never returns would otherwise hang the session.
func providerContext() (context.Context, context.CancelFunc) {
	timeout := viper.GetDuration("provider-timeout")
	if timeout <= 0 {
		timeout = config.DEFAULT_PROVIDER_TIMEOUT
	}
	return context.WithTimeout(context.Background(), timeout)
}

// Subcommands parse their own grammar, so cobra's flag handling is off
// and --help has to be spotted by hand.
func helpRequested(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

func quiet(err error, silent bool) error {
	if err != nil && silent {
		return errors.Join(err, errQuiet)
	}
	return err
}

func defaultedDuration(d int32) int32 {
	if d == 0 {
		return int32(viper.GetInt("default-duration"))
	}
	return d
}

func aliasFile() string {
	if p := viper.GetString("alias-file"); p != "" {
		return p
	}
	return config.AliasFile("")
}
