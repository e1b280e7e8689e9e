package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// attachment size cap, matches what mobile clients send
const maxAttachmentSize = 5 * 1024 * 1024

var attachmentExtensions = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".webp": "image",
	".pdf":  "raw",
}

// ValidateAttachment checks mimetype (by extension) and size and returns the
// cloudinary resource type for the file.
func ValidateAttachment(h *multipart.FileHeader) (string, error) {
	if h == nil || h.Size <= 0 {
		return "", NewValidation("file", "no file provided")
	}
	if h.Size > maxAttachmentSize {
		return "", NewValidation("file", "file exceeds 5MB limit")
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	resourceType, ok := attachmentExtensions[ext]
	if !ok {
		return "", NewValidation("file", fmt.Sprintf("unsupported file type %q", ext))
	}
	return resourceType, nil
}

// MediaService uploads job attachments to Cloudinary.
type MediaService struct {
	cld *cloudinary.Cloudinary
}

// NewMediaService builds a MediaService from a cloudinary:// URL. Returns a
// nil service when the URL is empty so attachment uploads can be disabled.
func NewMediaService(cloudinaryURL string) (*MediaService, error) {
	if cloudinaryURL == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &MediaService{cld: cld}, nil
}

// UploadJobAttachment stores the file under jobs/attachments/<jobID> and
// returns its secure URL.
func (s *MediaService) UploadJobAttachment(ctx context.Context, jobID uint, header *multipart.FileHeader) (string, error) {
	resourceType, err := ValidateAttachment(header)
	if err != nil {
		return "", err
	}

	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	overwrite := false
	uniqueFilename := false
	up, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         fmt.Sprintf("jobs/attachments/%d", jobID),
		PublicID:       uuid.NewString(),
		Overwrite:      &overwrite,
		UniqueFilename: &uniqueFilename,
		ResourceType:   resourceType,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return up.SecureURL, nil
}
