package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/property/domain"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"go.uber.org/zap"
)

// Object name prefixes by upload origin.
const (
	prefixPublic = ""
	prefixAdmin  = "admin-"
	prefixEdit   = "edit-"
)

// ImageUpload is one file attached to a submission or edit.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type imageUploader struct {
	storage domain.ImageStorage
	logger  *logger.Logger
	now     func() time.Time
}

func newImageUploader(storage domain.ImageStorage, log *logger.Logger) *imageUploader {
	return &imageUploader{storage: storage, logger: log, now: time.Now}
}

func validateImages(images []ImageUpload) error {
	if len(images) > domain.MaxImages {
		return fmt.Errorf("%w: maximum %d images allowed", domain.ErrInvalidInput, domain.MaxImages)
	}
	for i, img := range images {
		if len(img.Data) == 0 {
			return fmt.Errorf("%w: image %d is empty", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}

// uploadAll uploads images one at a time in order. The first failure
// abandons the rest; blobs already stored are left in place.
func (u *imageUploader) uploadAll(ctx context.Context, prefix string, images []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(images))
	for i, img := range images {
		objectName := u.objectName(prefix, img.FileName)
		url, err := u.storage.Upload(ctx, objectName, img.ContentType, img.Data)
		if err != nil {
			u.logger.Error("Image upload failed, aborting remaining uploads",
				zap.String("object_name", objectName),
				zap.Int("index", i),
				zap.Int("uploaded", len(urls)),
				zap.Error(err))
			return nil, fmt.Errorf("%w: upload %s: %v", domain.ErrStorage, img.FileName, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (u *imageUploader) objectName(prefix, fileName string) string {
	return fmt.Sprintf("%s%d-%s", prefix, u.now().UnixMilli(), sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "image"
	}
	return out
}
