package cmd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/viper"

	"github.com/credshell/credshell/internal/session"
)

// awsConfigFor loads provider configuration for the current slot state:
// an explicit profile wins, then the slot's own credential triple, then
// the slot's profile identity, then the default chain.
func awsConfigFor(ctx context.Context, snap session.Snapshot, profile string) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region := viper.GetString("region"); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	switch {
	case profile != "":
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	case snap.HasCredentials():
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(snap.AccessKeyID, snap.SecretAccessKey, snap.SessionToken)))
	case snap.Identity.Kind == session.IdentityProfile && snap.Identity.Profile != "":
		opts = append(opts, awsconfig.WithSharedConfigProfile(snap.Identity.Profile))
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

func stsClientFor(ctx context.Context, snap session.Snapshot, profile string) (*sts.Client, error) {
	cfg, err := awsConfigFor(ctx, snap, profile)
	if err != nil {
		return nil, err
	}
	return sts.NewFromConfig(cfg), nil
}

func iamClientFor(ctx context.Context, snap session.Snapshot) (*iam.Client, error) {
	cfg, err := awsConfigFor(ctx, snap, "")
	if err != nil {
		return nil, err
	}
	return iam.NewFromConfig(cfg), nil
}
