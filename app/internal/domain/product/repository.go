package product

import (
	"context"

	"example.com/ecomshop/app/internal/pagination"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	// GetForUpdate loads a product with its asset collection.
	GetForUpdate(ctx context.Context, id int64) (*Product, error)
	// GetByAssetID locates the product owning the given asset, assets included.
	GetByAssetID(ctx context.Context, assetID int64) (*Product, error)
	List(ctx context.Context, filter ListFilter) (*pagination.Page[*Product], error)
	Categories(ctx context.Context) ([]string, error)
	PhotosFor(ctx context.Context, productID int64) ([]*Asset, error)

	Update(ctx context.Context, p *Product) error
	AddAsset(ctx context.Context, a *Asset) (*Asset, error)
	RemoveAsset(ctx context.Context, assetID int64) error
	UpsertPrice(ctx context.Context, price *Price) error
}
