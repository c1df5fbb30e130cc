package engine

import (
	"context"
	"errors"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/credshell/credshell/internal/config"
)

const maxSessionNameLen = 64

var (
	nonAlnum     = regexp.MustCompile(`[^a-zA-Z0-9]`)
	userArnShape = regexp.MustCompile(`^(arn:[a-zA-Z0-9-]+:iam::\d+:)user/(.+)$`)
	roleInText   = regexp.MustCompile(`arn:[a-zA-Z0-9-]+:iam::(\d+):role/[^\s"']+`)
	accountOnly  = regexp.MustCompile(`arn:[a-zA-Z0-9-]+:[a-z]+::(\d{12}):`)
)

// SessionName derives the bounded role-session name the provider
// requires from the caller ARN: every non-alphanumeric character
// becomes a dash and the result is capped at 64 characters.
func SessionName(callerArn string) string {
	if callerArn == "" {
		return config.SELF_NAME
	}
	name := nonAlnum.ReplaceAllString(callerArn, "-")
	if len(name) > maxSessionNameLen {
		name = name[:maxSessionNameLen]
	}
	return name
}

// mfaSerial picks the device serial deterministically: a user caller
// ARN maps directly onto its mfa ARN; anything else falls back to the
// first registered device.
func (e *Engine) mfaSerial(ctx context.Context, callerArn string, devices MFADeviceAPI) (string, error) {
	if m := userArnShape.FindStringSubmatch(callerArn); m != nil {
		return m[1] + "mfa/" + m[2], nil
	}
	if devices == nil {
		return "", errors.New("no mfa device source available")
	}
	out, err := devices.ListMFADevices(ctx, &iam.ListMFADevicesInput{})
	if err != nil {
		return "", err
	}
	if len(out.MFADevices) == 0 {
		return "", errors.New("no mfa device registered")
	}
	return aws.ToString(out.MFADevices[0].SerialNumber), nil
}

// parseLoginText pulls the federated role ARN and account id out of the
// helper's response text. Both are best-effort; a malformed response
// yields empty fields, never a failure.
func parseLoginText(raw string) (roleArn string, accountID string) {
	if m := roleInText.FindStringSubmatch(raw); m != nil {
		return m[0], m[1]
	}
	if m := accountOnly.FindStringSubmatch(raw); m != nil {
		return "", m[1]
	}
	return "", ""
}
