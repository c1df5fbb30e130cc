package engine

import (
	"errors"

	"github.com/aws/smithy-go"
)

var (
	ErrCredentialsInvalid = errors.New("credentials failed validation")
	ErrAlreadyElevated    = errors.New("an elevated session is already active")
	ErrNoBaseCredentials  = errors.New("no validated base credentials")
	ErrMfaFailed          = errors.New("mfa elevation failed")
	ErrTokenVendFailed    = errors.New("session token response incomplete")
	ErrAssumeRoleFailed   = errors.New("role assumption failed")
	ErrSamlLoginFailed    = errors.New("saml login failed")
	ErrSessionExpired     = errors.New("mfa session expired")
	ErrNoSession          = errors.New("no mfa session active")
	ErrToolUnavailable    = errors.New("required tool or file unavailable")
)

// providerDetail flattens a smithy API error to its code and message
// for log output; any other error is reported as-is.
func providerDetail(err error) string {
	var api smithy.APIError
	if errors.As(err, &api) {
		return api.ErrorCode() + ": " + api.ErrorMessage()
	}
	return err.Error()
}
