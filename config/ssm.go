package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
)

// ParameterGetter is the slice of the SSM client used to resolve secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// NewSSMClient builds an SSM client from the default AWS credential chain.
func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// ResolveAdminSecret replaces cfg.AdminSecret with the decrypted value of
// cfg.AdminSecretSSMParameter. It is a no-op when no parameter is configured.
func ResolveAdminSecret(ctx context.Context, cfg *Config, client ParameterGetter) error {
	if cfg.AdminSecretSSMParameter == "" {
		return nil
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(cfg.AdminSecretSSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return errs.NewConfigError("ADMIN_SECRET_SSM_PARAMETER", err)
	}
	if out.Parameter == nil || strings.TrimSpace(aws.ToString(out.Parameter.Value)) == "" {
		return errs.NewInvalidConfigError("ADMIN_SECRET_SSM_PARAMETER", "parameter is empty")
	}

	cfg.AdminSecret = aws.ToString(out.Parameter.Value)
	log.Info().Str("parameter", cfg.AdminSecretSSMParameter).Msg("admin secret loaded from SSM")
	return nil
}
