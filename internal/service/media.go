package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type mediaService struct {
	client *cloudinary.Cloudinary
}

func NewMediaService(client *cloudinary.Cloudinary) Media {
	return &mediaService{client: client}
}

// Upload implements Media. Document files (bank covers, legal documents,
// statements) are stored externally; only the resulting URL is persisted.
func (m *mediaService) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	result, err := m.client.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:    folder,
		PublicID:  generatePublicID(file.Filename),
		Overwrite: func(b bool) *bool { return &b }(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}

	return result.SecureURL, nil
}

func generatePublicID(filename string) string {
	base := filename[:len(filename)-len(filepath.Ext(filename))]
	return fmt.Sprintf("%s_%d", base, time.Now().Unix())
}
