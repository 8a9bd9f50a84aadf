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
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"eduxchange/config"
)

type S3Bucket struct {
	bucket    string
	client    *s3.Client
	publicURL string
	// acl is sent with every PutObject when set. Buckets with ACLs
	// disabled reject any value.
	acl types.ObjectCannedACL
}

func NewS3(ctx context.Context, cfg config.Storage, bucket string) (*S3Bucket, error) {
	if bucket == "" {
		return nil, fmt.Errorf("missing bucket name")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Bucket{
		bucket:    bucket,
		client:    client,
		publicURL: s3PublicBase(cfg, bucket),
		acl:       types.ObjectCannedACL(cfg.ObjectACL),
	}, nil
}

func s3PublicBase(cfg config.Storage, bucket string) string {
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL + "/" + bucket + "/"
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + bucket + "/"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", bucket, cfg.Region)
}

func (b *S3Bucket) Name() string { return b.bucket }

func (b *S3Bucket) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	if _, err = b.client.PutObject(ctx, b.putInput(key, r, size, contentType)); err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (b *S3Bucket) putInput(key string, r io.Reader, size int64, contentType string) *s3.PutObjectInput {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if b.acl != "" {
		in.ACL = b.acl
	}
	return in
}

func (b *S3Bucket) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	if _, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (b *S3Bucket) PublicURL(key string) string { return b.publicURL + key }

func (b *S3Bucket) KeyFromURL(u string) (string, bool) { return trimPrefixKey(u, b.publicURL) }
