package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"server/config"
	"server/internal/logger"
	"server/internal/models"
)

type Policy string

const (
	PolicyS3     Policy = "s3"
	PolicyLocal  Policy = "local"
	PolicyInline Policy = "inline"
)

// BlobUploader is the remote placement capability. Implementations return a
// public URL for the stored object.
type BlobUploader interface {
	Upload(ctx context.Context, upload models.UploadRequest) (string, error)
}

// Resolver turns an uploaded image into its persisted reference: a blob URL,
// a local path under the content directory, or an inline data string. One
// policy is active per deployment; a failing placement falls through to the
// next policy rather than aborting the surrounding record write.
type Resolver struct {
	policy    Policy
	uploader  BlobUploader
	uploadDir string
	log       logger.Logger
}

func NewResolver(config config.Config, uploader BlobUploader) *Resolver {
	return &Resolver{
		policy:    Policy(config.AssetStorage),
		uploader:  uploader,
		uploadDir: config.AssetUploadDir,
		log:       logger.New("assets"),
	}
}

// Resolve returns the reference for the upload, or the empty reference when
// no bytes were supplied. Callers treat the empty reference as "inherit the
// poll's main symbol".
func (r *Resolver) Resolve(ctx context.Context, upload models.UploadRequest) string {
	if len(upload.Data) == 0 || upload.Filename == "" {
		return ""
	}
	log := r.log.Function("Resolve")

	switch r.policy {
	case PolicyS3:
		if r.uploader != nil {
			url, err := r.uploader.Upload(ctx, upload)
			if err == nil {
				return url
			}
			log.Er("blob upload failed, falling back to local file", err, "filename", upload.Filename)
		}
		fallthrough
	case PolicyLocal:
		path, err := r.writeLocal(upload)
		if err == nil {
			return path
		}
		log.Er("local asset write failed, falling back to inline encoding", err, "filename", upload.Filename)
		fallthrough
	default:
		return EncodeDataURI(upload.ContentType, upload.Data)
	}
}

func (r *Resolver) writeLocal(upload models.UploadRequest) (string, error) {
	if err := os.MkdirAll(r.uploadDir, 0o755); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), NormalizeFilename(upload.Filename))
	if err := os.WriteFile(filepath.Join(r.uploadDir, fileName), upload.Data, 0o644); err != nil {
		return "", err
	}

	return "/uploads/" + fileName, nil
}

// NormalizeFilename collapses whitespace so the reference survives as a URL
// path segment.
func NormalizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Join(strings.Fields(name), "_")
}
