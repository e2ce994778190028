package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"churchcms/config"
)

const photoPrefix = "counsellors/"

type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("created bucket", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: PublicBaseURL(cfg),
		logger:  logger,
	}, nil
}

// PublicBaseURL is the prefix object names are appended to. S3_PUBLIC_URL
// wins (CDN or minio gateway); otherwise the AWS virtual-host style is used.
func PublicBaseURL(cfg config.S3Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// DetectImage returns the content type and object extension for an image
// upload.
func DetectImage(data []byte, filename string) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	fileType := http.DetectContentType(data)
	if !strings.HasPrefix(fileType, "image/") {
		return "", "", ErrNotImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		switch fileType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".bin"
		}
	}

	return fileType, ext, nil
}

func (s *S3Storage) UploadFile(ctx context.Context, data []byte, filename string) (string, error) {
	fileType, ext, err := DetectImage(data, filename)
	if err != nil {
		return "", err
	}

	objectName := photoPrefix + uuid.New().String() + ext

	_, err = s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: fileType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}

	return s.baseURL + "/" + objectName, nil
}

func (s *S3Storage) DeleteFile(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	objectName, err := ObjectName(s.baseURL, fileURL)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", objectName, err)
	}

	return nil
}

// ObjectName recovers the object key from a URL produced by UploadFile.
func ObjectName(baseURL, fileURL string) (string, error) {
	name, ok := strings.CutPrefix(fileURL, baseURL+"/")
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, fileURL)
	}
	return name, nil
}
