// Package cloudinary adapts the Cloudinary SDK to the catalog's Storage
// interface. Images are uploaded twice: once size-limited, once as a square
// thumbnail.
package cloudinary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	domproduct "example.com/ecomshop/app/internal/domain/product"
	productuc "example.com/ecomshop/app/internal/usecase/product"
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type Storage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func New(cfg Config) (*Storage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	folder := cfg.Folder
	if folder == "" {
		folder = "ecomshop"
	}
	return &Storage{cld: cld, folder: folder}, nil
}

func (s *Storage) Upload(ctx context.Context, up productuc.Upload) (*productuc.UploadResult, error) {
	if up.Size <= 0 {
		return nil, errors.New("empty file")
	}

	// The stream is consumed twice for images (original + thumbnail).
	data, err := io.ReadAll(up.Reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	assetType := domproduct.DetectAssetType(up.FileName, up.ContentType)

	params := uploader.UploadParams{Folder: s.folder + "/" + subfolder(assetType)}
	if assetType == domproduct.AssetTypeImage {
		params.Transformation = "c_limit,h_1200,w_1200,q_auto:good"
	}

	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return nil, err
	}
	if res.Error.Message != "" {
		return nil, errors.New(res.Error.Message)
	}

	out := &productuc.UploadResult{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Bytes:    int64(res.Bytes),
		Width:    int64(res.Width),
		Height:   int64(res.Height),
	}

	if assetType == domproduct.AssetTypeImage {
		thumb, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
			Folder:         s.folder + "/thumbnails",
			Transformation: "c_fill,g_auto,h_300,w_300,q_auto:good",
		})
		// A missing thumbnail is not worth failing the whole attach.
		if err == nil && thumb.Error.Message == "" {
			out.ThumbnailURL = thumb.SecureURL
			out.ThumbnailPublicID = thumb.PublicID
		}
	}

	return out, nil
}

func (s *Storage) Delete(ctx context.Context, publicID string) error {
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: %s", res.Result)
	}
	return nil
}

// Disabled stands in when no Cloudinary credentials are configured; every
// operation fails so attach/detach surface a clear provider error.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, up productuc.Upload) (*productuc.UploadResult, error) {
	return nil, errors.New("asset storage is not configured")
}

func (Disabled) Delete(ctx context.Context, publicID string) error {
	return errors.New("asset storage is not configured")
}

func subfolder(t domproduct.AssetType) string {
	switch t {
	case domproduct.AssetTypeImage:
		return "images"
	case domproduct.AssetTypeDocument:
		return "documents"
	case domproduct.AssetTypeVideo:
		return "videos"
	default:
		return "files"
	}
}
