// engine implements the guarded state machine over the credential slot.
// Every transition validates its precondition against the current layer,
// makes at most one elevation call against the provider, and applies the
// fully-built next state only when the call succeeded. A failed call
// never leaves the slot partially written.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"

	"github.com/credshell/credshell/internal/config"
	"github.com/credshell/credshell/internal/credfile"
	"github.com/credshell/credshell/internal/logging"
	"github.com/credshell/credshell/internal/resolver"
	"github.com/credshell/credshell/internal/session"
)

type Engine struct {
	slot *session.Slot
	log  *logging.Logger
	now  func() time.Time
}

func New(slot *session.Slot, log *logging.Logger) *Engine {
	return &Engine{slot: slot, log: log, now: time.Now}
}

// WithClock overrides the evaluation clock, for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Clear wipes every slot field. It cannot fail.
func (e *Engine) Clear() session.Snapshot {
	e.slot.Clear()
	e.log.Infof("session cleared")
	return e.slot.Snapshot()
}

// SetCreds clears the slot, then validates the named profile as the new
// base identity. On validation failure the slot stays cleared.
func (e *Engine) SetCreds(ctx context.Context, svc CallerIdentityAPI, profile string) (session.Snapshot, error) {
	e.slot.Clear()

	out, err := svc.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		e.log.Errorf("profile %s did not validate: %s", profile, providerDetail(err))
		return e.slot.Snapshot(), fmt.Errorf("profile %s, %w", profile, ErrCredentialsInvalid)
	}

	next := session.Snapshot{
		Identity:  session.Identity{Kind: session.IdentityProfile, Profile: profile},
		Layer:     session.BaseValidated,
		AccountID: aws.ToString(out.Account),
		CallerArn: aws.ToString(out.Arn),
		UserID:    aws.ToString(out.UserId),
	}
	if err := e.slot.Apply(next); err != nil {
		return e.slot.Snapshot(), err
	}
	e.log.Infof("base identity %s validated (account %s)", next.CallerArn, next.AccountID)
	return next, nil
}

// Validate fetches the caller identity with whatever credentials are
// current and refreshes the identity metadata. The layer is untouched
// and nothing is mutated on failure.
func (e *Engine) Validate(ctx context.Context, svc CallerIdentityAPI, silent bool) (session.Snapshot, error) {
	var next session.Snapshot
	err := e.log.Silently(silent, func() error {
		out, err := svc.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			e.log.Errorf("caller identity check failed: %s", providerDetail(err))
			return fmt.Errorf("%s, %w", providerDetail(err), ErrCredentialsInvalid)
		}
		next = e.slot.Snapshot()
		next.AccountID = aws.ToString(out.Account)
		next.CallerArn = aws.ToString(out.Arn)
		next.UserID = aws.ToString(out.UserId)
		if err := e.slot.Apply(next); err != nil {
			return err
		}
		e.log.Infof("credentials valid: %s (account %s)", next.CallerArn, next.AccountID)
		return nil
	})
	if err != nil {
		return e.slot.Snapshot(), err
	}
	return next, nil
}

// GetSessionToken vends a plain session token. Works from any base
// identity; the identity source is cleared to an anonymous session
// since the vended triple no longer maps onto a profile.
func (e *Engine) GetSessionToken(ctx context.Context, svc SessionTokenAPI, duration int32) (session.Snapshot, error) {
	out, err := svc.GetSessionToken(ctx, &sts.GetSessionTokenInput{
		DurationSeconds: aws.Int32(orDefaultDuration(duration)),
	})
	if err != nil {
		e.log.Errorf("session token not vended: %s", providerDetail(err))
		return e.slot.Snapshot(), fmt.Errorf("%s, %w", providerDetail(err), ErrTokenVendFailed)
	}
	triple, expiry, ok := credentialTriple(out.Credentials)
	if !ok {
		e.log.Errorf("provider response missing credential fields")
		return e.slot.Snapshot(), fmt.Errorf("incomplete response, %w", ErrTokenVendFailed)
	}

	next := e.slot.Snapshot()
	next.Identity = session.Identity{}
	next.Layer = session.SessionTokenLayer
	next.AccessKeyID, next.SecretAccessKey, next.SessionToken = triple[0], triple[1], triple[2]
	next.SessionExpiry = expiry
	next.MfaExpiry = time.Time{}
	if err := e.slot.Apply(next); err != nil {
		return e.slot.Snapshot(), err
	}
	e.log.Infof("session token valid until %s", expiry.Local().Format(time.RFC3339))
	return next, nil
}

// Mfa elevates validated base credentials with an MFA proof. Session
// tokens are not stackable, so an existing token or assumed role is
// rejected outright.
func (e *Engine) Mfa(ctx context.Context, svc SessionTokenAPI, devices MFADeviceAPI, code string, duration int32) (session.Snapshot, error) {
	snap := e.slot.Snapshot()
	if snap.Layer == session.SessionTokenLayer || snap.Layer == session.RoleAssumed || snap.SessionToken != "" {
		return snap, fmt.Errorf("clear the current session first, %w", ErrAlreadyElevated)
	}
	if snap.Layer != session.BaseValidated {
		return snap, fmt.Errorf("run set-creds or validate first, %w", ErrNoBaseCredentials)
	}

	serial, err := e.mfaSerial(ctx, snap.CallerArn, devices)
	if err != nil {
		return snap, fmt.Errorf("%s, %w", err, ErrMfaFailed)
	}

	out, err := svc.GetSessionToken(ctx, &sts.GetSessionTokenInput{
		DurationSeconds: aws.Int32(orDefaultDuration(duration)),
		SerialNumber:    aws.String(serial),
		TokenCode:       aws.String(code),
	})
	if err != nil {
		e.log.Errorf("mfa exchange with %s failed: %s", serial, providerDetail(err))
		return snap, fmt.Errorf("%s, %w", providerDetail(err), ErrMfaFailed)
	}
	triple, expiry, ok := credentialTriple(out.Credentials)
	if !ok {
		return snap, fmt.Errorf("incomplete response, %w", ErrMfaFailed)
	}

	next := snap
	next.Layer = session.SessionTokenLayer
	next.AccessKeyID, next.SecretAccessKey, next.SessionToken = triple[0], triple[1], triple[2]
	next.SessionExpiry = expiry
	next.MfaExpiry = expiry
	if err := e.slot.Apply(next); err != nil {
		return snap, err
	}
	e.log.Infof("mfa session active until %s", expiry.Local().Format(time.RFC3339))
	return next, nil
}

// MfaValidate is a local clock check only; no provider call, no
// mutation. An expiry exactly at the evaluation instant counts as
// expired.
func (e *Engine) MfaValidate(silent bool) error {
	return e.log.Silently(silent, func() error {
		snap := e.slot.Snapshot()
		if snap.Layer != session.SessionTokenLayer || !snap.HasCredentials() || snap.MfaExpiry.IsZero() {
			e.log.Errorf("no mfa session to validate")
			return ErrNoSession
		}
		if !snap.MfaExpiry.After(e.now()) {
			e.log.Errorf("mfa session expired at %s", snap.MfaExpiry.Local().Format(time.RFC3339))
			return ErrSessionExpired
		}
		e.log.Infof("mfa session valid for another %s", snap.MfaExpiry.Sub(e.now()).Round(time.Second))
		return nil
	})
}

// AssumeRole exchanges the validated base identity for role-scoped
// credentials. The role must resolve before any provider traffic; the
// account default for name-only specs comes from the freshly validated
// identity.
func (e *Engine) AssumeRole(ctx context.Context, svc AssumeRoleAPI, devices MFADeviceAPI, req resolver.AssumeRoleRequest) (session.Snapshot, error) {
	if req.RoleArn == "" && req.RoleName == "" {
		return e.slot.Snapshot(), fmt.Errorf("no role supplied, %w", resolver.ErrRoleUnresolved)
	}

	if _, err := e.Validate(ctx, svc, true); err != nil {
		return e.slot.Snapshot(), fmt.Errorf("%s, %w", err, ErrNoBaseCredentials)
	}
	snap := e.slot.Snapshot()

	roleArn, err := req.ResolveArn(snap.AccountID)
	if err != nil {
		return snap, err
	}

	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleArn),
		RoleSessionName: aws.String(SessionName(snap.CallerArn)),
		DurationSeconds: aws.Int32(orDefaultDuration(req.Duration)),
	}
	if req.ExternalID != "" {
		input.ExternalId = aws.String(req.ExternalID)
	}
	if req.MfaCode != "" {
		serial, err := e.mfaSerial(ctx, snap.CallerArn, devices)
		if err != nil {
			return snap, fmt.Errorf("%s, %w", err, ErrAssumeRoleFailed)
		}
		input.SerialNumber = aws.String(serial)
		input.TokenCode = aws.String(req.MfaCode)
	}

	out, err := svc.AssumeRole(ctx, input)
	if err != nil {
		e.log.Errorf("assume %s failed: %s", roleArn, providerDetail(err))
		return snap, fmt.Errorf("%s: %s, %w", roleArn, providerDetail(err), ErrAssumeRoleFailed)
	}
	triple, expiry, ok := credentialTriple(out.Credentials)
	if !ok {
		return snap, fmt.Errorf("incomplete response for %s, %w", roleArn, ErrAssumeRoleFailed)
	}

	next := snap
	next.Layer = session.RoleAssumed
	next.AccessKeyID, next.SecretAccessKey, next.SessionToken = triple[0], triple[1], triple[2]
	next.AssumedRoleArn = roleArn
	next.SessionExpiry = expiry
	next.MfaExpiry = time.Time{}
	if err := e.slot.Apply(next); err != nil {
		return snap, err
	}
	e.log.Infof("assumed %s until %s", roleArn, expiry.Local().Format(time.RFC3339))
	return next, nil
}

// SamlLogin clears the slot, delegates the federation exchange to the
// external helper and imports the environment it exported verbatim.
// Role and account are parsed from the response text best-effort.
func (e *Engine) SamlLogin(ctx context.Context, tool SamlTool, duration int32) (session.Snapshot, error) {
	e.slot.Clear()
	duration = orDefaultDuration(duration)

	raw, err := tool.Login(ctx, duration)
	if err != nil {
		e.log.Errorf("saml helper: %s", err)
		return e.slot.Snapshot(), fmt.Errorf("%s, %w", err, ErrSamlLoginFailed)
	}
	env, err := tool.ExportEnvironment(ctx)
	if err != nil {
		e.log.Errorf("saml helper: %s", err)
		return e.slot.Snapshot(), fmt.Errorf("%s, %w", err, ErrSamlLoginFailed)
	}

	next := session.Snapshot{
		Layer:           session.SessionTokenLayer,
		AccessKeyID:     env[config.ENV_ACCESS_KEY_ID],
		SecretAccessKey: env[config.ENV_SECRET_ACCESS_KEY],
		SessionToken:    env[config.ENV_SESSION_TOKEN],
		SessionExpiry:   e.now().Add(time.Duration(duration) * time.Second),
	}
	if !next.HasCredentials() {
		e.log.Errorf("saml helper did not export a full credential triple")
		return e.slot.Snapshot(), fmt.Errorf("credential triple incomplete, %w", ErrSamlLoginFailed)
	}
	next.CallerArn, next.AccountID = parseLoginText(raw)
	if err := e.slot.Apply(next); err != nil {
		return e.slot.Snapshot(), err
	}
	e.log.Infof("federated session active until %s", next.SessionExpiry.Local().Format(time.RFC3339))
	return next, nil
}

// ListCreds lists the named sections of the provider-native credentials
// file. No session state involved.
func (e *Engine) ListCreds(path string) ([]string, error) {
	profiles, err := credfile.ListProfiles(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %s, %w", path, err, ErrToolUnavailable)
	}
	return profiles, nil
}

func orDefaultDuration(d int32) int32 {
	if d == 0 {
		return config.DEFAULT_DURATION_SECONDS
	}
	return d
}

func credentialTriple(c *ststypes.Credentials) ([3]string, time.Time, bool) {
	if c == nil || c.AccessKeyId == nil || c.SecretAccessKey == nil || c.SessionToken == nil {
		return [3]string{}, time.Time{}, false
	}
	expiry := time.Time{}
	if c.Expiration != nil {
		expiry = *c.Expiration
	}
	return [3]string{*c.AccessKeyId, *c.SecretAccessKey, *c.SessionToken}, expiry, true
}
