package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"time"
)

const (
	SELF_NAME = "credshell"

	// STS accepts durations in this range; values outside it are not
	// rejected locally, the provider reports them itself.
	DURATION_MIN_SECONDS = 900
	DURATION_MAX_SECONDS = 129600

	DEFAULT_DURATION_SECONDS = 3600

	// Upper bound on any single identity-provider call.
	DEFAULT_PROVIDER_TIMEOUT = 30 * time.Second
)

// Environment variable names the slot is exported under between invocations.
const (
	ENV_ACCESS_KEY_ID     = "AWS_ACCESS_KEY_ID"
	ENV_SECRET_ACCESS_KEY = "AWS_SECRET_ACCESS_KEY"
	ENV_SESSION_TOKEN     = "AWS_SESSION_TOKEN"
	ENV_LAYER             = "CREDSHELL_LAYER"
	ENV_IDENTITY          = "CREDSHELL_IDENTITY"
	ENV_PROFILE           = "CREDSHELL_PROFILE"
	ENV_ACCOUNT           = "CREDSHELL_ACCOUNT"
	ENV_CALLER_ARN        = "CREDSHELL_CALLER_ARN"
	ENV_USER_ID           = "CREDSHELL_USER_ID"
	ENV_ROLE_ARN          = "CREDSHELL_ROLE_ARN"
	ENV_SESSION_EXPIRY    = "CREDSHELL_SESSION_EXPIRY"
	ENV_MFA_EXPIRY        = "CREDSHELL_MFA_EXPIRY"
)

func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatal("unable to get the user home dir")
	}
	return home
}

// AliasFile returns the alias file location, basePath overrides the
// home directory for tests.
func AliasFile(basePath string) string {
	base := basePath
	if base == "" {
		base = HomeDir()
	}
	return path.Join(base, fmt.Sprintf(".%s.aliases", SELF_NAME))
}

// SharedCredentialsFile resolves the provider-native credentials file,
// honouring the standard override variable.
func SharedCredentialsFile() string {
	if overridden, exists := os.LookupEnv("AWS_SHARED_CREDENTIALS_FILE"); exists {
		return overridden
	}
	return path.Join(HomeDir(), ".aws", "credentials")
}
