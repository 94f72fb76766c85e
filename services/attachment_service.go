package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/mdferoz/electricity-board-api/config"
	"github.com/mdferoz/electricity-board-api/utils"
)

// AttachmentStore persists a complaint attachment and returns an opaque
// reference stored verbatim on the complaint record. Content is not
// inspected beyond the safe-filename transform and size/format checks done
// by the request layer.
type AttachmentStore interface {
	Save(fileHeader *multipart.FileHeader) (string, error)
}

var attachmentStoreInstance AttachmentStore

// InitAttachmentStore initializes the configured attachment backend.
func InitAttachmentStore(cfg *appconfig.Config) (AttachmentStore, error) {
	switch cfg.StorageBackend {
	case "s3":
		s3Store, err := newS3AttachmentStore(cfg)
		if err != nil {
			return nil, err
		}
		attachmentStoreInstance = s3Store
	default:
		attachmentStoreInstance = &LocalAttachmentStore{Dir: cfg.UploadDir}
	}
	return attachmentStoreInstance, nil
}

// GetAttachmentStore returns the initialized attachment store instance.
func GetAttachmentStore() AttachmentStore {
	return attachmentStoreInstance
}

// SetAttachmentStore sets the attachment store instance (primarily for testing).
func SetAttachmentStore(s AttachmentStore) {
	attachmentStoreInstance = s
}

// LocalAttachmentStore writes attachments to the local upload directory.
type LocalAttachmentStore struct {
	Dir string
}

// Save stores the file under a collision-free sanitized name and returns
// the stored filename.
func (l *LocalAttachmentStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	return utils.SaveUploadedFile(fileHeader, l.Dir)
}

// S3AttachmentStore uploads attachments to an S3 bucket.
type S3AttachmentStore struct {
	client *s3.Client
	bucket string
}

func newS3AttachmentStore(cfg *appconfig.Config) (*S3AttachmentStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3AttachmentStore{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.AWSS3Bucket,
	}, nil
}

// Save uploads the attachment and returns its S3 key.
func (s *S3AttachmentStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("attachments/%d_%s", time.Now().Unix(), utils.SafeFilename(fileHeader.Filename))

	_, err = s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return key, nil
}
