package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sethvargo/go-retry"

	"github.com/raidellg/blocnotes/internal/client/models"
	"github.com/raidellg/blocnotes/internal/common"
	"github.com/raidellg/blocnotes/internal/filex"
	"github.com/raidellg/blocnotes/internal/logging"
)

// S3Config carries the settings for the blob store connection. BaseEndpoint
// is set when talking to a minio-style deployment instead of AWS proper.
type S3Config struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Bucket       string
}

// S3BlobStore stores attachments in a single physical bucket under the key
// layout <bucket>/<ownerID>/<filename>, where bucket is the logical
// attachment namespace (images, audios).
type S3BlobStore struct {
	client  *s3.Client
	bucket  string
	session OwnerProvider
	timeout time.Duration
	log     logging.Logger
}

func NewS3BlobStore(ctx context.Context, cfg S3Config, session OwnerProvider, timeout time.Duration, log logging.Logger) (*S3BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3BlobStore{
		client:  client,
		bucket:  cfg.Bucket,
		session: session,
		timeout: timeout,
		log:     log,
	}, nil
}

// ObjectKey builds the remote key for an attachment.
func ObjectKey(bucket models.Bucket, ownerID, filename string) string {
	return string(bucket) + "/" + ownerID + "/" + filename
}

// ContentTypeFor infers the MIME type of an attachment from its filename.
// Audio defaults to mpeg for legacy mp3 recordings.
func ContentTypeFor(bucket models.Bucket, filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	if bucket == models.BucketImages {
		switch ext {
		case "jpg", "jpeg":
			return "image/jpeg"
		case "":
			return "application/octet-stream"
		default:
			return "image/" + ext
		}
	}

	switch ext {
	case "wav":
		return "audio/wav"
	case "ogg":
		return "audio/ogg"
	case "aac":
		return "audio/aac"
	case "m4a":
		return "audio/mp4"
	default:
		return "audio/mpeg"
	}
}

func (s *S3BlobStore) backoff() retry.Backoff {
	return retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
}

func (s *S3BlobStore) Upload(ctx context.Context, bucket models.Bucket, filename, cachePath string) error {
	owner, err := s.session.CurrentOwner(ctx)
	if err != nil {
		return err
	}

	if !filex.Exists(cachePath) {
		s.log.Warn(ctx, "skipping upload, file not in cache", "filename", filename)
		return nil
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cachePath, err)
	}

	key := ObjectKey(bucket, owner.ID, filename)
	contentType := ContentTypeFor(bucket, filename)

	err = retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		_, err := s.client.PutObject(callCtx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.log.Debug(ctx, "uploaded blob", "key", key, "contentType", contentType)
	return nil
}

func (s *S3BlobStore) Download(ctx context.Context, bucket models.Bucket, filename string) ([]byte, error) {
	owner, err := s.session.CurrentOwner(ctx)
	if err != nil {
		return nil, err
	}

	key := ObjectKey(bucket, owner.ID, filename)

	var data []byte
	err = retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		out, err := s.client.GetObject(callCtx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			var nsk *types.NoSuchKey
			if errors.As(err, &nsk) {
				return fmt.Errorf("%w: %s", common.ErrorNotFound, key)
			}
			return retry.RetryableError(err)
		}
		defer out.Body.Close()

		data, err = io.ReadAll(out.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}

	s.log.Debug(ctx, "downloaded blob", "key", key, "size", len(data))
	return data, nil
}
