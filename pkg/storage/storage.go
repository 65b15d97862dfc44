package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"tierboard/pkg/apperrors"
	"tierboard/pkg/config"
	"tierboard/pkg/messages"

	"github.com/oklog/ulid/v2"
)

// MaxAvatarSize is the upload limit for a single avatar.
const MaxAvatarSize = 5 << 20

var allowedAvatarTypes = []string{"jpeg", "jpg", "png", "gif", "webp"}

// AvatarStore writes avatar images and hands back the path clients fetch them from.
type AvatarStore interface {
	Save(ctx context.Context, filename string, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, path string) error
}

// NewAvatarStore creates the store for the configured provider.
func NewAvatarStore(ctx context.Context, cfg config.BucketConfiguration) (AvatarStore, error) {
	switch cfg.Provider {
	case config.StorageDisk:
		return NewDiskStore(cfg.UploadDir)
	case config.StorageS3:
		return NewS3Store(cfg), nil
	case config.StorageMinio:
		return NewMinioStore(ctx, cfg)
	default:
		return nil, fmt.Errorf(messages.UnsupportedStorageType, cfg.Provider)
	}
}

// ValidateAvatar checks the extension, the declared type and the size of an upload.
func ValidateAvatar(filename string, contentType string, size int64) error {
	if size > MaxAvatarSize {
		return apperrors.Validation(messages.AvatarTooLarge, MaxAvatarSize>>20)
	}
	if size <= 0 {
		return apperrors.Validation(messages.AvatarRequired)
	}

	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !slices.Contains(allowedAvatarTypes, extension) {
		return apperrors.Validation(messages.AvatarInvalidType)
	}

	// Drop parameters such as "; charset=binary".
	mediaType, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(contentType)), ";")
	subtype, isImage := strings.CutPrefix(strings.TrimSpace(mediaType), "image/")
	if !isImage || !slices.Contains(allowedAvatarTypes, subtype) {
		return apperrors.Validation(messages.AvatarInvalidType)
	}

	return nil
}

// NewObjectKey creates the stored name of an upload.
// ULIDs hold a millisecond timestamp plus 80 random bits, so concurrent uploads never share a key.
func NewObjectKey(filename string) string {
	return ulid.Make().String() + strings.ToLower(filepath.Ext(filename))
}

// objectKeyFromPath returns the key a public path points to, or "" if it isn't under base.
func objectKeyFromPath(base string, path string) string {
	key, found := strings.CutPrefix(path, strings.TrimSuffix(base, "/")+"/")
	if !found || key == "" || strings.Contains(key, "/") || strings.Contains(key, "..") {
		return ""
	}
	return key
}
