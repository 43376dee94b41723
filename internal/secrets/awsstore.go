package secrets

import (
	"context"
	"fmt"
	"strings"

	oerrors "github.com/ochre-sh/ochre/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Secret key escrow in AWS Secrets Manager. The stored secret is named after
// the document's public key, so one AWS account can hold keys for any number
// of documents without collisions.

func awsSecretName(pub PublicKey) string {
	return "ochre-" + pub.String()
}

func newSecretsManagerClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// SaveSecretKeyToAWS stores the secret key in AWS Secrets Manager and returns
// the ARN of the created secret. The public key doubles as the idempotency
// token, so retrying init does not create duplicate secrets.
func SaveSecretKeyToAWS(ctx context.Context, region string, pub PublicKey, key SecretKey) (string, error) {
	client, err := newSecretsManagerClient(ctx, region)
	if err != nil {
		return "", err
	}

	out, err := client.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:               aws.String(awsSecretName(pub)),
		ClientRequestToken: aws.String(pub.String()),
		Description:        aws.String("ochre secret key"),
		SecretString:       aws.String(key.Hex()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store secret key in AWS Secrets Manager: %w", err)
	}
	return aws.ToString(out.ARN), nil
}

// LoadSecretKeyFromAWS fetches the secret key for the given public key from
// AWS Secrets Manager and validates that the two halves pair up.
func LoadSecretKeyFromAWS(ctx context.Context, region string, pub PublicKey) (SecretKey, error) {
	client, err := newSecretsManagerClient(ctx, region)
	if err != nil {
		return SecretKey{}, err
	}

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(awsSecretName(pub)),
	})
	if err != nil {
		return SecretKey{}, fmt.Errorf("failed to load secret key from AWS Secrets Manager: %w", err)
	}
	if out.SecretString == nil {
		return SecretKey{}, fmt.Errorf("%w: AWS secret %s has no string value", oerrors.ErrInvalidKeyEncoding, awsSecretName(pub))
	}

	key, err := ParseSecretKey(strings.TrimSpace(aws.ToString(out.SecretString)))
	if err != nil {
		return SecretKey{}, fmt.Errorf("failed to decode secret key from AWS Secrets Manager: %w", err)
	}
	if key.PublicKey() != pub {
		return SecretKey{}, oerrors.ErrSecretKeyMismatch
	}
	return key, nil
}
