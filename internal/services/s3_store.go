package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/damacus/bucket-gate/internal/config"
	"github.com/damacus/bucket-gate/internal/models"
)

// S3Store implements ObjectStore with the AWS SDK
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
}

func NewS3Store(cfg config.StorageConfig) (*S3Store, error) {
	scheme := "https://"
	if !useSSL(cfg) {
		scheme = "http://"
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(scheme + cfg.ResolvedEndpoint()),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: true,
	})

	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
	}, nil
}

func (s *S3Store) ListObjects(ctx context.Context, bucket string) ([]models.ObjectSummary, error) {
	objects := []models.ObjectSummary{}
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects in %s: %w", bucket, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, models.ObjectSummary{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

func (s *S3Store) Presign(ctx context.Context, req PresignRequest) (*url.URL, error) {
	if err := validatePresign(req); err != nil {
		return nil, err
	}

	var (
		raw string
		err error
	)
	switch req.Method {
	case http.MethodGet:
		out, perr := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(req.Bucket),
			Key:    aws.String(req.Key),
		}, s3.WithPresignExpires(req.Expires))
		if out != nil {
			raw = out.URL
		}
		err = perr
	case http.MethodPut:
		in := &s3.PutObjectInput{
			Bucket: aws.String(req.Bucket),
			Key:    aws.String(req.Key),
		}
		if req.ContentType != "" {
			in.ContentType = aws.String(req.ContentType)
		}
		out, perr := s.presigner.PresignPutObject(ctx, in, s3.WithPresignExpires(req.Expires))
		if out != nil {
			raw = out.URL
		}
		err = perr
	}
	if err != nil {
		return nil, fmt.Errorf("presign %s %s: %w", req.Method, req.Key, err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse presigned url: %w", err)
	}
	return u, nil
}
