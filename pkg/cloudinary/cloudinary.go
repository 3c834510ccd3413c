package cloudinary

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/google/uuid"
)

// Client uploads profile photos and removes replaced ones.
type Client interface {
	UploadPhoto(ctx context.Context, file io.Reader, userID int64) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// Optimized image params for fast loading in chat clients
const (
	ImageWidth = 800
	ThumbWidth = 200
)

// BuildOptimizedImageURL returns a Cloudinary URL with transformations for optimized delivery.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

// PublicIDFor names a new upload for userID. Each upload gets a fresh id so
// a re-registration never overwrites a photo still referenced elsewhere.
func PublicIDFor(userID int64) string {
	return fmt.Sprintf("profile_%d_%s", userID, uuid.NewString())
}

// Eager transformation for upload (single string per SDK)
const imageEager = "q_auto,f_auto,w_800,c_fill"

var eagerAsyncFalse = false

type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	PublicID     string `json:"public_id"`
}

type clientImpl struct {
	cloudName string
	folder    string
	uploader  *uploader.API
}

// UploadPhoto uploads an image with eager optimizations (auto quality, format, resize).
func (c *clientImpl) UploadPhoto(ctx context.Context, file io.Reader, userID int64) (*UploadResult, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     c.folder,
		PublicID:   PublicIDFor(userID),
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return nil, err
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}
	out := &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}
	if len(result.Eager) > 0 {
		out.ThumbnailURL = result.Eager[0].SecureURL
	}
	if out.ThumbnailURL == "" {
		out.ThumbnailURL = BuildOptimizedImageURL(c.cloudName, result.PublicID, ThumbWidth)
	}
	return out, nil
}

func (c *clientImpl) Delete(ctx context.Context, publicID string) error {
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret, folder string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		folder:    folder,
		uploader:  up,
	}, nil
}
