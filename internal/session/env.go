package session

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/credshell/credshell/internal/config"
)

// The slot lives in the hosting shell's environment between invocations.
// FromEnv rebuilds it on startup, Export writes it back after every
// transition, success or failure.

func FromEnv() *Slot {
	snap := Snapshot{
		Layer:           ParseLayer(os.Getenv(config.ENV_LAYER)),
		AccessKeyID:     os.Getenv(config.ENV_ACCESS_KEY_ID),
		SecretAccessKey: os.Getenv(config.ENV_SECRET_ACCESS_KEY),
		SessionToken:    os.Getenv(config.ENV_SESSION_TOKEN),
		AccountID:       os.Getenv(config.ENV_ACCOUNT),
		CallerArn:       os.Getenv(config.ENV_CALLER_ARN),
		UserID:          os.Getenv(config.ENV_USER_ID),
		AssumedRoleArn:  os.Getenv(config.ENV_ROLE_ARN),
		SessionExpiry:   parseExpiry(os.Getenv(config.ENV_SESSION_EXPIRY)),
		MfaExpiry:       parseExpiry(os.Getenv(config.ENV_MFA_EXPIRY)),
	}

	switch os.Getenv(config.ENV_IDENTITY) {
	case "profile":
		snap.Identity = Identity{Kind: IdentityProfile, Profile: os.Getenv(config.ENV_PROFILE)}
	case "static":
		snap.Identity = Identity{Kind: IdentityStaticKeys}
	}

	s := New()
	if err := s.Apply(snap); err != nil {
		// a tampered or partial environment is treated as no session
		s.Clear()
	}
	return s
}

// Export synchronises the process environment with the snapshot and
// emits export/unset lines for the hosting shell to eval.
func Export(w io.Writer, snap Snapshot) {
	pairs := []struct {
		name  string
		value string
	}{
		{config.ENV_ACCESS_KEY_ID, snap.AccessKeyID},
		{config.ENV_SECRET_ACCESS_KEY, snap.SecretAccessKey},
		{config.ENV_SESSION_TOKEN, snap.SessionToken},
		{config.ENV_LAYER, layerValue(snap.Layer)},
		{config.ENV_IDENTITY, identityValue(snap.Identity)},
		{config.ENV_PROFILE, snap.Identity.Profile},
		{config.ENV_ACCOUNT, snap.AccountID},
		{config.ENV_CALLER_ARN, snap.CallerArn},
		{config.ENV_USER_ID, snap.UserID},
		{config.ENV_ROLE_ARN, snap.AssumedRoleArn},
		{config.ENV_SESSION_EXPIRY, formatExpiry(snap.SessionExpiry)},
		{config.ENV_MFA_EXPIRY, formatExpiry(snap.MfaExpiry)},
	}

	for _, p := range pairs {
		if p.value == "" {
			os.Unsetenv(p.name)
			fmt.Fprintf(w, "unset %s\n", p.name)
			continue
		}
		os.Setenv(p.name, p.value)
		fmt.Fprintf(w, "export %s=%q\n", p.name, p.value)
	}
}

func layerValue(l Layer) string {
	if l == Unauthenticated {
		return ""
	}
	return l.String()
}

func identityValue(id Identity) string {
	if id.Kind == IdentityNone {
		return ""
	}
	return id.Kind.String()
}

func parseExpiry(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
