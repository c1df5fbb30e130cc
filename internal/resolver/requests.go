package resolver

import (
	"fmt"
	"strconv"
	"strings"
)

// AliasLookup is the read side of the alias store; absent names simply
// do not expand.
type AliasLookup interface {
	Lookup(name string) (string, bool)
}

// AssumeRoleRequest is the structured form of the assume-role surface.
// A Duration of 0 means "not supplied".
type AssumeRoleRequest struct {
	RoleArn    string
	RoleName   string
	AccountID  string
	MfaCode    string
	ExternalID string
	Duration   int32
}

// ResolveArn produces the canonical role ARN. An explicit ARN literal
// always wins over name+account construction; the account falls back to
// the slot's current account when none was supplied.
func (r AssumeRoleRequest) ResolveArn(currentAccount string) (string, error) {
	if r.RoleArn != "" {
		return r.RoleArn, nil
	}
	if r.RoleName == "" {
		return "", fmt.Errorf("no role name or arn supplied, %w", ErrRoleUnresolved)
	}
	account := r.AccountID
	if account == "" {
		account = currentAccount
	}
	if account == "" {
		return "", fmt.Errorf("no account id for role %s, %w", r.RoleName, ErrRoleUnresolved)
	}
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", account, r.RoleName), nil
}

// ParseAssumeRole expands a matching alias on the first raw token, then
// classifies. Expansion replaces the whole argument list and runs once,
// never recursively.
func ParseAssumeRole(args []string, aliases AliasLookup) (AssumeRoleRequest, error) {
	if len(args) > 0 && aliases != nil {
		if body, ok := aliases.Lookup(args[0]); ok {
			args = strings.Fields(body)
		}
	}

	toks, err := Classify(args, Grammar{Flags: map[string]bool{
		"--external-id": true,
		"--mfa":         true,
		"--duration":    true,
	}})
	if err != nil {
		return AssumeRoleRequest{}, err
	}

	var req AssumeRoleRequest
	for _, t := range toks {
		switch t.Kind {
		case KindFlag:
			switch t.Name {
			case "external-id":
				req.ExternalID = t.Value
			case "mfa":
				req.MfaCode = t.Value
			case "duration":
				if req.Duration, err = parseDuration(t.Value); err != nil {
					return AssumeRoleRequest{}, err
				}
			}
		case KindRoleArn:
			req.RoleArn = t.Value
		case KindAccountID:
			req.AccountID = t.Value
		case KindFree:
			req.RoleName = t.Value
		}
	}
	return req, nil
}

type MfaRequest struct {
	Code     string
	Duration int32
}

// ParseMfa binds any positional token to the code; an all-digit MFA
// code would otherwise classify as an account id, which the mfa grammar
// has no slot for.
func ParseMfa(args []string) (MfaRequest, error) {
	toks, err := Classify(args, Grammar{Flags: map[string]bool{"--duration": true}})
	if err != nil {
		return MfaRequest{}, err
	}
	var req MfaRequest
	for _, t := range toks {
		switch t.Kind {
		case KindFlag:
			if req.Duration, err = parseDuration(t.Value); err != nil {
				return MfaRequest{}, err
			}
		default:
			req.Code = t.Value
		}
	}
	return req, nil
}

// ParseSilent covers validate and mfa-validate.
func ParseSilent(args []string) (bool, error) {
	toks, err := Classify(args, Grammar{Flags: map[string]bool{"--silent": false}})
	if err != nil {
		return false, err
	}
	for _, t := range toks {
		if t.Kind == KindFlag && t.Name == "silent" {
			return true, nil
		}
	}
	return false, nil
}

// ParseProfile covers set-creds, whose only positional is a profile name.
func ParseProfile(args []string) (string, error) {
	toks, err := Classify(args, Grammar{})
	if err != nil {
		return "", err
	}
	profile := ""
	for _, t := range toks {
		if t.Kind != KindFlag {
			profile = t.Value
		}
	}
	return profile, nil
}

// ParseDurationOnly covers get-session-token and saml-login.
func ParseDurationOnly(args []string) (int32, error) {
	toks, err := Classify(args, Grammar{Flags: map[string]bool{"--duration": true}})
	if err != nil {
		return 0, err
	}
	var duration int32
	for _, t := range toks {
		if t.Kind == KindFlag {
			if duration, err = parseDuration(t.Value); err != nil {
				return 0, err
			}
		}
	}
	return duration, nil
}

// ParseFile covers list-creds.
func ParseFile(args []string) (string, error) {
	toks, err := Classify(args, Grammar{Flags: map[string]bool{"--file": true}})
	if err != nil {
		return "", err
	}
	file := ""
	for _, t := range toks {
		if t.Kind == KindFlag {
			file = t.Value
		}
	}
	return file, nil
}

// Duration bounds (900-129600s) are deliberately not enforced here; the
// provider reports out-of-range values itself.
func parseDuration(v string) (int32, error) {
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("--duration needs a numeric value, got %q, %w", v, ErrMissingArgument)
	}
	return int32(n), nil
}
