package dto

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	"anoa.com/marketplace/pkg/storage"
)

type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type PaginationMeta struct {
	TotalItems int64 `json:"total_items"`
	Limit      int   `json:"limit"`
}

// OpenUpload opens a multipart file. The caller closes the returned Closer.
func OpenUpload(fh *multipart.FileHeader) (storage.File, io.Closer, error) {
	f, err := fh.Open()
	if err != nil {
		return storage.File{}, nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}

	return storage.File{
		Reader:      f,
		FileName:    fh.Filename,
		ContentType: contentType,
	}, f, nil
}
