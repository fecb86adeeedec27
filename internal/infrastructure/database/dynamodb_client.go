package database

import (
	"context"

	"climatec_os/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// NewAWSConfig builds the shared AWS configuration used by the DynamoDB and S3
// clients.
//
// Static credentials are always set: local emulators (dynamodb-local, minio)
// ignore them but the SDK refuses to sign requests without them.
func NewAWSConfig(ctx context.Context, cfg config.AWS) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
}

// NewDynamoDBClient creates a DynamoDB client, pointing it to DYNAMODB_ENDPOINT
// when set (e.g. http://dynamodb:8000).
func NewDynamoDBClient(awsCfg aws.Config, cfg config.AWS) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}
