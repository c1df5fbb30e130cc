package session_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/credshell/credshell/internal/config"
	"github.com/credshell/credshell/internal/session"
)

func clearSessionEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		config.ENV_ACCESS_KEY_ID, config.ENV_SECRET_ACCESS_KEY, config.ENV_SESSION_TOKEN,
		config.ENV_LAYER, config.ENV_IDENTITY, config.ENV_PROFILE, config.ENV_ACCOUNT,
		config.ENV_CALLER_ARN, config.ENV_USER_ID, config.ENV_ROLE_ARN,
		config.ENV_SESSION_EXPIRY, config.ENV_MFA_EXPIRY,
	} {
		t.Setenv(v, "")
	}
}

func Test_Export_then_FromEnv_round_trips(t *testing.T) {
	clearSessionEnv(t)

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	snap := session.Snapshot{
		Identity:        session.Identity{Kind: session.IdentityProfile, Profile: "dev"},
		Layer:           session.SessionTokenLayer,
		AccessKeyID:     "AKIA123",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		AccountID:       "123456789012",
		CallerArn:       "arn:aws:iam::123456789012:user/bob",
		UserID:          "AIDA123",
		SessionExpiry:   expiry,
		MfaExpiry:       expiry,
	}

	out := new(bytes.Buffer)
	session.Export(out, snap)

	got := session.FromEnv().Snapshot()
	if got.AccessKeyID != snap.AccessKeyID || got.SecretAccessKey != snap.SecretAccessKey || got.SessionToken != snap.SessionToken {
		t.Errorf("triple did not round trip: %+v", got)
	}
	if got.Layer != session.SessionTokenLayer {
		t.Errorf("got layer %v, wanted SessionTokenLayer", got.Layer)
	}
	if got.Identity != snap.Identity {
		t.Errorf("got identity %+v, wanted %+v", got.Identity, snap.Identity)
	}
	if !got.MfaExpiry.Equal(expiry) {
		t.Errorf("got mfa expiry %v, wanted %v", got.MfaExpiry, expiry)
	}
	if !strings.Contains(out.String(), "export "+config.ENV_ACCESS_KEY_ID+"=") {
		t.Errorf("export lines missing access key: %s", out.String())
	}
}

func Test_Export_of_cleared_slot_unsets(t *testing.T) {
	clearSessionEnv(t)
	t.Setenv(config.ENV_ACCESS_KEY_ID, "stale")
	t.Setenv(config.ENV_LAYER, "session-token")

	out := new(bytes.Buffer)
	session.Export(out, session.Snapshot{})

	if got := session.FromEnv().Snapshot(); got != (session.Snapshot{}) {
		t.Errorf("cleared export left state behind: %+v", got)
	}
	if !strings.Contains(out.String(), "unset "+config.ENV_ACCESS_KEY_ID) {
		t.Errorf("missing unset line: %s", out.String())
	}
}

func Test_FromEnv_treats_partial_triple_as_no_session(t *testing.T) {
	clearSessionEnv(t)
	t.Setenv(config.ENV_ACCESS_KEY_ID, "AKIA123")
	t.Setenv(config.ENV_LAYER, "session-token")

	if got := session.FromEnv().Snapshot(); got != (session.Snapshot{}) {
		t.Errorf("partial environment should rebuild as empty slot, got %+v", got)
	}
}
