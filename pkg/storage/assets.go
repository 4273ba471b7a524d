package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"anoa.com/marketplace/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxParallelUploads caps concurrent uploads per UploadMany call.
const MaxParallelUploads = 6

type File struct {
	Reader      io.Reader
	FileName    string
	ContentType string
}

// AssetStore owns image lifecycle against the blob store. Creation is strict,
// deletion is best-effort.
type AssetStore struct {
	storage     ImageStorage
	folder      string
	maxParallel int
	logger      *zap.Logger
}

func NewAssetStore(storage ImageStorage, folder string, maxParallel int, logger *zap.Logger) *AssetStore {
	if maxParallel < 1 || maxParallel > MaxParallelUploads {
		maxParallel = MaxParallelUploads
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetStore{
		storage:     storage,
		folder:      folder,
		maxParallel: maxParallel,
		logger:      logger,
	}
}

func (a *AssetStore) Upload(ctx context.Context, f File) (string, error) {
	if err := checkImage(f); err != nil {
		return "", err
	}

	url, err := a.storage.UploadImage(ctx, f.Reader, a.folder, objectKey(f.FileName))
	if err != nil {
		return "", apperror.Storage(err)
	}
	return url, nil
}

// UploadMany returns URLs in the order of files. If any upload fails the ones
// that succeeded are deleted before the error is returned.
func (a *AssetStore) UploadMany(ctx context.Context, files []File) ([]string, error) {
	for _, f := range files {
		if err := checkImage(f); err != nil {
			return nil, err
		}
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxParallel)

	for i, f := range files {
		g.Go(func() error {
			url, err := a.storage.UploadImage(gctx, f.Reader, a.folder, objectKey(f.FileName))
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.FileName, err)
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var uploaded []string
		for _, u := range urls {
			if u != "" {
				uploaded = append(uploaded, u)
			}
		}
		a.DeleteAll(context.WithoutCancel(ctx), uploaded)
		return nil, apperror.Storage(err)
	}

	return urls, nil
}

// Delete never fails the caller. Errors are logged.
func (a *AssetStore) Delete(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := a.storage.DeleteImage(ctx, url); err != nil {
		a.logger.Warn("asset delete failed", zap.String("url", url), zap.Error(err))
	}
}

func (a *AssetStore) DeleteAll(ctx context.Context, urls []string) {
	for _, u := range urls {
		a.Delete(ctx, u)
	}
}

func checkImage(f File) error {
	if f.Reader == nil {
		return apperror.Validation("image", "file is required")
	}
	if !strings.HasPrefix(strings.ToLower(f.ContentType), "image/") {
		return apperror.Validation("image", "unsupported content type %q", f.ContentType)
	}
	return nil
}

// objectKey is unique per call even for identical names uploaded in the same instant.
func objectKey(fileName string) string {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	base = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	if r := []rune(base); len(r) > 40 {
		base = string(r[:40])
	}
	if base == "" || base == "." {
		base = "image"
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixNano(), uuid.NewString()[:8], base)
}
