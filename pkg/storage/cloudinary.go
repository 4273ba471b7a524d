package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStorage is the blob store contract. Keys are chosen by the caller.
type ImageStorage interface {
	// UploadImage stores r under folder/key and returns its public URL.
	UploadImage(ctx context.Context, r io.Reader, folder, key string) (string, error)
	// DeleteImage deletes the object addressed by its URL.
	DeleteImage(ctx context.Context, fileURL string) error
}

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cfg CloudinaryConfig) (ImageStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	switch {
	case cfg.URL != "":
		cld, err = cloudinary.NewFromURL(cfg.URL)
	case cfg.CloudName != "":
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld}, nil
}

func (s *cloudinaryStorage) UploadImage(ctx context.Context, r io.Reader, folder, key string) (string, error) {
	params := uploader.UploadParams{
		Folder:         folder,
		PublicID:       key,
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
		Format:         "webp",
		Transformation: "q_auto",
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload image to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload rejected: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) DeleteImage(ctx context.Context, fileURL string) error {
	publicID := extractPublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

// extractPublicID maps a delivery URL back to its public ID.
// https://res.cloudinary.com/demo/image/upload/v123/products/171-ab12-shoe.webp -> products/171-ab12-shoe
func extractPublicID(fileURL string) string {
	u, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(u.Path, "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}

	if uploadIndex == -1 || uploadIndex+1 >= len(parts) {
		return ""
	}

	rest := parts[uploadIndex+1:]
	if isVersionSegment(rest[0]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return ""
	}

	withExt := strings.Join(rest, "/")
	return strings.TrimSuffix(withExt, filepath.Ext(withExt))
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
