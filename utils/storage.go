package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client *s3.Client
	s3Bucket string
	initOnce sync.Once
)

// initS3 initializes the inbound bucket client once. Works against any
// S3-compatible endpoint (MinIO, R2) via S3_ENDPOINT.
func initS3() error {
	var initErr error
	initOnce.Do(func() {
		s3Bucket = os.Getenv("S3_BUCKET")
		endpoint := os.Getenv("S3_ENDPOINT")

		if s3Bucket == "" || endpoint == "" {
			initErr = fmt.Errorf("missing required S3 environment variables")
			return
		}

		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           endpoint,
				SigningRegion: "auto",
			}, nil
		})

		cfg, err := config.LoadDefaultConfig(context.Background(),
			config.WithRegion("auto"),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				os.Getenv("S3_ACCESS_KEY_ID"),
				os.Getenv("S3_SECRET_ACCESS_KEY"),
				"",
			)),
			config.WithEndpointResolverWithOptions(customResolver),
		)
		if err != nil {
			initErr = fmt.Errorf("failed to load S3 config: %v", err)
			return
		}

		s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	})
	return initErr
}

// S3Configured reports whether the inbound bucket variables are set.
func S3Configured() bool {
	return os.Getenv("S3_BUCKET") != "" && os.Getenv("S3_ENDPOINT") != ""
}

// FetchInboundXML downloads every XML object from the inbound bucket into
// destDir and deletes each object after a successful download. Returns the
// number of files fetched.
func FetchInboundXML(ctx context.Context, destDir string) (int, error) {
	if err := initS3(); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return 0, err
	}

	fetched := 0
	var continuation *string
	for {
		out, err := s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s3Bucket),
			ContinuationToken: continuation,
		})
		if err != nil {
			return fetched, fmt.Errorf("failed to list inbound bucket: %v", err)
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(strings.ToLower(key), ".xml") {
				continue
			}
			if err := downloadObject(ctx, key, destDir); err != nil {
				return fetched, err
			}
			_, err = s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s3Bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return fetched, fmt.Errorf("failed to delete inbound object %s: %v", key, err)
			}
			fetched++
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuation = out.NextContinuationToken
	}
	return fetched, nil
}

func downloadObject(ctx context.Context, key, destDir string) error {
	obj, err := s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to fetch inbound object %s: %v", key, err)
	}
	defer obj.Body.Close()

	destPath := filepath.Join(destDir, filepath.Base(key))
	dest, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dest.Close()

	_, err = io.Copy(dest, obj.Body)
	return err
}
