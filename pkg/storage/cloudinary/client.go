package cloudinary

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/kaamsetu/gigwork-backend/pkg/config"
)

// ImageUploader stores a profile photo and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, publicID string, body io.Reader) (string, error)
}

// Client uploads media to Cloudinary.
type Client struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// New builds a Cloudinary client from config. Returns an error when the
// credentials are incomplete.
func New(cfg config.CloudinaryConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("cloudinary credentials are not configured")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary: %w", err)
	}
	return &Client{cld: cld, folder: cfg.Folder}, nil
}

// UploadImage pushes the image and returns the secure URL. Profile pictures
// are resized server-side to a square thumbnail.
func (c *Client) UploadImage(ctx context.Context, publicID string, body io.Reader) (string, error) {
	resp, err := c.cld.Upload.Upload(ctx, body, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         c.folder,
		Transformation: "c_thumb,w_200,h_200",
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	return resp.SecureURL, nil
}
