package data

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"reelcfg/internal/conf"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-kratos/kratos/v2/log"
)

const (
	maxRetries     = 3
	retryDelay     = time.Second
	uploadTimeout  = 30 * time.Second
	presignExpires = time.Hour * 24 * 3
)

type S3Bucket struct {
	client *s3.Client
	bucket string
	logger *log.Helper
}

// NewS3Bucket 未配置 s3 时返回 nil，上传会直接报错
func NewS3Bucket(c *conf.Data, logger log.Logger) (*S3Bucket, func(), error) {
	l := log.NewHelper(logger)
	if c == nil || c.S3 == nil || c.S3.Bucket == "" {
		l.Warn("s3 not configured, replay report upload disabled")
		return nil, func() {}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(c.S3.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.S3.AccessKeyId, c.S3.SecretAccessKey, "")),
	)
	if err != nil {
		l.Errorf("failed loading AWS config: %v", err)
		return nil, nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.S3.Endpoint)
			o.UsePathStyle = true
		}
	})
	if c.S3.Endpoint != "" {
		l.Infof("Using custom S3 endpoint: %s", c.S3.Endpoint)
	}

	cleanup := func() {
		l.Info("S3 uploader closed")
	}
	return &S3Bucket{client: client, bucket: c.S3.Bucket, logger: l}, cleanup, nil
}

// UploadBytes 上传到默认桶并返回预签名下载地址
func (r *dataRepo) UploadBytes(ctx context.Context, key, contentType string, data []byte) (string, error) {
	s := r.data.s3Bucket
	if s == nil {
		return "", fmt.Errorf("s3 not configured")
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			time.Sleep(retryDelay * time.Duration(i))
			s.logger.Infof("Retry upload %d/%d: %s", i, maxRetries-1, key)
		}

		uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
		_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			ContentType: aws.String(contentType),
			Body:        bytes.NewReader(data),
		})
		cancel()
		if err != nil {
			lastErr = err
			s.logger.Warnf("Upload attempt %d/%d failed: %v", i+1, maxRetries, err)
			continue
		}

		presigned, err := s3.NewPresignClient(s.client).PresignGetObject(ctx,
			&s3.GetObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)},
			s3.WithPresignExpires(presignExpires),
		)
		if err != nil {
			lastErr = fmt.Errorf("failed to generate presigned GET URL: %w", err)
			s.logger.Warnf("Failed to generate presigned GET URL: %v", err)
			continue
		}

		s.logger.Infof("S3 upload success: bucket=%s, key=%s", s.bucket, key)
		return presigned.URL, nil
	}

	return "", fmt.Errorf("upload failed after %d attempts: %w", maxRetries, lastErr)
}
