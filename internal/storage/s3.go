package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"storefront/internal/config"
	"storefront/internal/models"
)

const s3KeyPrefix = "uploads/"

// ObjectPutter es la parte del cliente S3 que usamos.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store sube a un bucket S3 compatible (AWS, R2, MinIO) y devuelve una
// referencia externa.
type S3Store struct {
	client    ObjectPutter
	bucket    string
	publicURL string
}

func NewS3Store(client ObjectPutter, bucket, publicURL string) *S3Store {
	return &S3Store{client: client, bucket: bucket, publicURL: publicURL}
}

// NewS3Client arma el cliente a partir de la configuración. Con Endpoint
// definido usa path-style, que es lo que esperan R2 y MinIO.
func NewS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
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

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (s *S3Store) Put(ctx context.Context, name, contentType string, body io.ReadSeeker, size int64) (models.ImageRef, error) {
	key := s3KeyPrefix + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return models.ExternalImage(s.objectURL(key)), nil
}

// objectURL acepta PublicURL con un %s para la key o como prefijo.
func (s *S3Store) objectURL(key string) string {
	if strings.Contains(s.publicURL, "%s") {
		return fmt.Sprintf(s.publicURL, key)
	}
	return strings.TrimRight(s.publicURL, "/") + "/" + key
}
