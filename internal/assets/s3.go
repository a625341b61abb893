package assets

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"server/config"
	"server/internal/logger"
	"server/internal/models"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// S3Uploader implements BlobUploader against an S3-compatible bucket.
// Objects are written public-read; the returned reference is the public URL.
type S3Uploader struct {
	svc       *s3.S3
	bucket    string
	publicURL string
	log       logger.Logger
}

func NewS3Uploader(config config.Config) (*S3Uploader, error) {
	log := logger.New("assets").Function("NewS3Uploader")

	if config.S3Bucket == "" {
		return nil, log.ErrMsg("s3 bucket is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.S3Region),
	})
	if err != nil {
		return nil, log.Err("failed to create s3 session", err)
	}

	publicURL := strings.TrimSuffix(config.S3PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com", config.S3Bucket)
	}

	return &S3Uploader{
		svc:       s3.New(sess),
		bucket:    config.S3Bucket,
		publicURL: publicURL,
		log:       logger.New("assets").File("s3"),
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, upload models.UploadRequest) (string, error) {
	log := u.log.Function("Upload")

	key := fmt.Sprintf("uploads/%s_%s", uuid.NewString(), NormalizeFilename(upload.Filename))
	acl := "public-read"

	_, err := u.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(upload.Data),
		ACL:         aws.String(acl),
		ContentType: aws.String(upload.ContentType),
	})
	if err != nil {
		return "", log.Err("failed to put object", err, "bucket", u.bucket, "key", key)
	}

	return u.publicURL + "/" + key, nil
}
