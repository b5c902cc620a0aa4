package product

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	dom "example.com/ecomshop/app/internal/domain/product"
	"example.com/ecomshop/app/internal/pagination"
)

// Upload is a file stream handed to the storage provider.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UploadResult struct {
	URL               string
	PublicID          string
	Bytes             int64
	Width             int64
	Height            int64
	ThumbnailURL      string
	ThumbnailPublicID string
}

// Storage is the cloud asset storage collaborator.
type Storage interface {
	Upload(ctx context.Context, up Upload) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

type Service struct {
	repo    dom.Repository
	storage Storage
}

func NewService(repo dom.Repository, storage Storage) *Service {
	return &Service{repo: repo, storage: storage}
}

func (s *Service) List(ctx context.Context, filter dom.ListFilter) (*pagination.Page[*dom.Product], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*dom.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) PhotosFor(ctx context.Context, productID int64) ([]*dom.Asset, error) {
	return s.repo.PhotosFor(ctx, productID)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// UpdateInput carries a sparse field set; nil means leave unchanged.
type UpdateInput struct {
	ID             int64
	Article        *string
	Name           *string
	PackagedWeight *float64
	PackagedVolume *float64
	Size           *dom.Dimensions
	DefaultColor   *string
	Category       *string
	Description    *string
}

// Update applies the sparse field set to an existing product. Nothing is
// persisted unless every present field passes validation.
func (s *Service) Update(ctx context.Context, in UpdateInput) error {
	p, err := s.repo.GetForUpdate(ctx, in.ID)
	if err != nil {
		return err
	}

	if in.Article != nil {
		p.Article = in.Article
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.PackagedWeight != nil {
		p.PackagedWeight = *in.PackagedWeight
	}
	if in.PackagedVolume != nil {
		p.PackagedVolume = *in.PackagedVolume
	}
	if in.Size != nil {
		if !in.Size.Valid() {
			return dom.ErrInvalidDimensions
		}
		size := *in.Size
		p.Size = &size
	}
	if in.DefaultColor != nil {
		p.DefaultColor = in.DefaultColor
	}
	if in.Category != nil {
		p.Category = in.Category
	}
	if in.Description != nil {
		p.Description = in.Description
	}

	return s.repo.Update(ctx, p)
}

type PriceInput struct {
	Kind      dom.PriceKind
	Currency  string
	Amount    int64
	MinQty    int64
	ValidFrom time.Time
	ValidTo   *time.Time
}

func (s *Service) UpdatePrice(ctx context.Context, productID int64, in PriceInput) error {
	if _, err := s.repo.GetForUpdate(ctx, productID); err != nil {
		return err
	}
	if in.Amount < 0 {
		return dom.ErrNegativePrice
	}

	price := &dom.Price{
		ID:        uuid.NewString(),
		Kind:      in.Kind,
		Currency:  in.Currency,
		Amount:    in.Amount,
		MinQty:    in.MinQty,
		ValidFrom: in.ValidFrom,
		ValidTo:   in.ValidTo,
		ProductID: productID,
	}
	if price.Kind == "" {
		price.Kind = dom.PriceKindRetail
	}
	if price.Currency == "" {
		price.Currency = "RUB"
	}
	if price.MinQty <= 0 {
		price.MinQty = 1
	}
	if price.ValidFrom.IsZero() {
		price.ValidFrom = time.Now().UTC()
	}

	return s.repo.UpsertPrice(ctx, price)
}

// AddAsset uploads the file and appends the resulting asset to the product.
// A provider error leaves the product untouched.
func (s *Service) AddAsset(ctx context.Context, productID int64, up Upload) (*dom.Asset, error) {
	p, err := s.repo.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}

	res, err := s.storage.Upload(ctx, up)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dom.ErrUploadFailed, err)
	}

	asset := &dom.Asset{
		URL:       res.URL,
		PublicID:  &res.PublicID,
		FileName:  up.FileName,
		FileSize:  res.Bytes,
		Type:      dom.DetectAssetType(up.FileName, up.ContentType),
		CreatedAt: time.Now().UTC(),
		ProductID: p.ID,
	}
	if asset.Type == dom.AssetTypeImage {
		if res.Width > 0 {
			w := res.Width
			asset.Width = &w
		}
		if res.Height > 0 {
			h := res.Height
			asset.Height = &h
		}
		if res.ThumbnailURL != "" {
			asset.ThumbnailURL = &res.ThumbnailURL
		}
		if res.ThumbnailPublicID != "" {
			asset.ThumbnailPublicID = &res.ThumbnailPublicID
		}
	}

	return s.repo.AddAsset(ctx, asset)
}

// SetMainAsset mirrors the asset's URL into the product's imageUrl pointer.
func (s *Service) SetMainAsset(ctx context.Context, assetID int64) error {
	p, err := s.repo.GetByAssetID(ctx, assetID)
	if err != nil {
		return err
	}

	asset := findAsset(p, assetID)
	if asset == nil {
		return dom.ErrAssetNotFound
	}

	if p.ImageURL != nil && *p.ImageURL == asset.URL {
		return dom.ErrAlreadyMainImage
	}

	url := asset.URL
	p.ImageURL = &url
	return s.repo.Update(ctx, p)
}

// DeleteAsset removes an asset that is not the current main image. Remote
// deletion must succeed before the local record goes away.
func (s *Service) DeleteAsset(ctx context.Context, assetID int64) error {
	p, err := s.repo.GetByAssetID(ctx, assetID)
	if err != nil {
		return err
	}

	asset := findAsset(p, assetID)
	if asset == nil {
		return dom.ErrAssetNotFound
	}

	if p.ImageURL != nil && *p.ImageURL == asset.URL {
		return dom.ErrMainImageProtected
	}

	if asset.PublicID != nil {
		if err := s.storage.Delete(ctx, *asset.PublicID); err != nil {
			return fmt.Errorf("%w: %v", dom.ErrStorageDeleteFailed, err)
		}
		if asset.ThumbnailPublicID != nil {
			if err := s.storage.Delete(ctx, *asset.ThumbnailPublicID); err != nil {
				return fmt.Errorf("%w: %v", dom.ErrStorageDeleteFailed, err)
			}
		}
	}

	return s.repo.RemoveAsset(ctx, assetID)
}

func findAsset(p *dom.Product, assetID int64) *dom.Asset {
	for _, a := range p.Assets {
		if a.ID == assetID {
			return a
		}
	}
	return nil
}
