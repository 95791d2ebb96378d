package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// UploadImage uploads an image for a user under the storage path convention
// {category}_images/{userUID}/{timestamp}_{filename} and returns the
// retrievable URL.
func (s *CloudinaryService) UploadImage(ctx context.Context, file multipart.File, category, userUID, filename string) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	folder := fmt.Sprintf("%s_images/%s", category, userUID)
	publicID := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), sanitizeFilename(filename))

	uploadResult, err := s.cld.Upload.Upload(ctx, fileBytes, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// UploadImageFromHeader opens a multipart file header and uploads it.
func (s *CloudinaryService) UploadImageFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, category, userUID string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return s.UploadImage(ctx, file, category, userUID, fileHeader.Filename)
}

// sanitizeFilename strips the extension and characters Cloudinary public ids
// don't accept.
func sanitizeFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" {
		name = "upload"
	}
	return name
}
