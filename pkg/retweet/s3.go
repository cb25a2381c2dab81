package retweet

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dd0wney/cluso-hits/pkg/config"
)

// GetObjectAPI is the part of the S3 client the source needs
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads one line-delimited JSON object from S3
type S3Source struct {
	client GetObjectAPI
	bucket string
	key    string
}

// NewS3Source builds an S3 client from the default AWS credential chain,
// overridden by static credentials, region and endpoint when set
func NewS3Source(ctx context.Context, cfg config.S3Config) (*S3Source, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3SourceWithClient(client, cfg.Bucket, cfg.Key), nil
}

// NewS3SourceWithClient creates a source around an existing client
func NewS3SourceWithClient(client GetObjectAPI, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

func (s *S3Source) Name() string { return config.SourceS3 }

func (s *S3Source) Load(ctx context.Context) (*Batch, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	return Decode(ctx, s.uri(), Decompress(s.key, out.Body))
}

func (s *S3Source) Close() error { return nil }

func (s *S3Source) uri() string {
	return "s3://" + s.bucket + "/" + s.key
}
