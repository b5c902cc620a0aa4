package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	domproduct "example.com/ecomshop/app/internal/domain/product"
	"example.com/ecomshop/app/internal/pagination"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, article, name, packaged_weight, packaged_volume,
        width_mm, height_mm, depth_mm, default_color, category, description,
        image_url, source_url`

const assetColumns = `id, url, public_id, file_name, file_size, type,
        thumbnail_url, thumbnail_public_id, width, height,
        created_at, updated_at, product_id`

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetForUpdate(ctx context.Context, id int64) (*domproduct.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.loadAssets(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetByAssetID(ctx context.Context, assetID int64) (*domproduct.Product, error) {
	var productID int64
	err := r.db.QueryRowContext(ctx, `SELECT product_id FROM assets WHERE id = ?`, assetID).Scan(&productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return r.GetForUpdate(ctx, productID)
}

// List applies category/price filters and sorting in SQL, then paginates.
// A free-text query switches to the scan-then-paginate path: the full
// filtered set is loaded and matched in-process, because SQLite's case
// folding is ASCII-only and the catalog holds Cyrillic names. Paginating
// first and filtering after would page over the wrong universe.
func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) (*pagination.Page[*domproduct.Product], error) {
	var clauses []string
	var args []any

	if len(filter.Categories) > 0 {
		placeholders := strings.Repeat(",?", len(filter.Categories))[1:]
		clauses = append(clauses, "category IS NOT NULL AND category IN ("+placeholders+")")
		for _, c := range filter.Categories {
			args = append(args, c)
		}
	}

	if filter.HasPriceBounds() {
		sub := `EXISTS (SELECT 1 FROM prices pr WHERE pr.product_id = products.id AND pr.currency = ?`
		currency := filter.Currency
		if currency == "" {
			currency = "RUB"
		}
		args = append(args, currency)
		if filter.MinPrice != nil {
			sub += " AND pr.amount >= ?"
			args = append(args, *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			sub += " AND pr.amount <= ?"
			args = append(args, *filter.MaxPrice)
		}
		clauses = append(clauses, sub+")")
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}
	orderBy := " ORDER BY " + sortExpr(filter.SortBy, filter.SortOrder)

	base := `SELECT ` + productColumns + ` FROM products` + where + orderBy

	if filter.HasSearch() {
		rows, err := r.db.QueryContext(ctx, base, args...)
		if err != nil {
			return nil, err
		}
		all, err := collectProducts(rows)
		if err != nil {
			return nil, err
		}
		matched := make([]*domproduct.Product, 0, len(all))
		for _, p := range all {
			if p.MatchesSearch(filter.SearchQuery) {
				matched = append(matched, p)
			}
		}
		return pagination.Slice(matched, filter.PageIndex, filter.PageSize), nil
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count); err != nil {
		return nil, err
	}

	pageArgs := append(append([]any{}, args...), filter.PageSize, filter.Offset())
	rows, err := r.db.QueryContext(ctx, base+` LIMIT ? OFFSET ?`, pageArgs...)
	if err != nil {
		return nil, err
	}
	data, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	return pagination.New(filter.PageIndex, filter.PageSize, count, data), nil
}

// sortExpr recognizes name/category/article; anything else falls back to
// ascending name. The trailing id keeps the order total so LIMIT/OFFSET
// pages never overlap on ties.
func sortExpr(sortBy, sortOrder string) string {
	col := "name"
	switch strings.ToLower(sortBy) {
	case "name":
		col = "name"
	case "category":
		col = "category"
	case "article":
		col = "article"
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	return col + " " + dir + ", id ASC"
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT DISTINCT category FROM products
        WHERE category IS NOT NULL AND TRIM(category) != ''
        ORDER BY category ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *ProductRepository) PhotosFor(ctx context.Context, productID int64) ([]*domproduct.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+assetColumns+` FROM assets
        WHERE product_id = ? AND type = ?
        ORDER BY id ASC
    `, productID, string(domproduct.AssetTypeImage))
	if err != nil {
		return nil, err
	}
	return collectAssets(rows)
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) error {
	var widthMm, heightMm, depthMm any
	if p.Size != nil {
		widthMm, heightMm, depthMm = p.Size.WidthMm, p.Size.HeightMm, p.Size.DepthMm
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE products SET article = ?, name = ?, packaged_weight = ?,
            packaged_volume = ?, width_mm = ?, height_mm = ?, depth_mm = ?,
            default_color = ?, category = ?, description = ?, image_url = ?,
            source_url = ?
        WHERE id = ?
    `, p.Article, p.Name, p.PackagedWeight, p.PackagedVolume,
		widthMm, heightMm, depthMm,
		p.DefaultColor, p.Category, p.Description, p.ImageURL, p.SourceURL, p.ID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrUpdateFailed
	}
	return nil
}

func (r *ProductRepository) AddAsset(ctx context.Context, a *domproduct.Asset) (*domproduct.Asset, error) {
	var updatedAt any
	if a.UpdatedAt != nil {
		updatedAt = a.UpdatedAt.Format(time.RFC3339Nano)
	}
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO assets (url, public_id, file_name, file_size, type,
            thumbnail_url, thumbnail_public_id, width, height,
            created_at, updated_at, product_id)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, a.URL, a.PublicID, a.FileName, a.FileSize, string(a.Type),
		a.ThumbnailURL, a.ThumbnailPublicID, a.Width, a.Height,
		a.CreatedAt.Format(time.RFC3339Nano), updatedAt, a.ProductID)
	if err != nil {
		return nil, err
	}
	a.ID, _ = res.LastInsertId()
	return a, nil
}

func (r *ProductRepository) RemoveAsset(ctx context.Context, assetID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, assetID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domproduct.ErrAssetNotFound
	}
	return nil
}

func (r *ProductRepository) UpsertPrice(ctx context.Context, price *domproduct.Price) error {
	var validTo any
	if price.ValidTo != nil {
		validTo = price.ValidTo.Format(time.RFC3339Nano)
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO prices (id, kind, currency, amount, min_qty, valid_from, valid_to, product_id)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (product_id, kind) DO UPDATE SET
            currency = excluded.currency,
            amount = excluded.amount,
            min_qty = excluded.min_qty,
            valid_from = excluded.valid_from,
            valid_to = excluded.valid_to
    `, price.ID, string(price.Kind), price.Currency, price.Amount, price.MinQty,
		price.ValidFrom.Format(time.RFC3339Nano), validTo, price.ProductID)
	return err
}

func (r *ProductRepository) loadAssets(ctx context.Context, p *domproduct.Product) error {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+assetColumns+` FROM assets WHERE product_id = ? ORDER BY id ASC
    `, p.ID)
	if err != nil {
		return err
	}
	assets, err := collectAssets(rows)
	if err != nil {
		return err
	}
	p.Assets = assets
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domproduct.Product, error) {
	var p domproduct.Product
	var article, defaultColor, category, description, imageURL, sourceURL sql.NullString
	var widthMm, heightMm, depthMm sql.NullFloat64

	err := row.Scan(&p.ID, &article, &p.Name, &p.PackagedWeight, &p.PackagedVolume,
		&widthMm, &heightMm, &depthMm, &defaultColor, &category, &description,
		&imageURL, &sourceURL)
	if err != nil {
		return nil, err
	}

	p.Article = strPtr(article)
	p.DefaultColor = strPtr(defaultColor)
	p.Category = strPtr(category)
	p.Description = strPtr(description)
	p.ImageURL = strPtr(imageURL)
	p.SourceURL = strPtr(sourceURL)
	if widthMm.Valid && heightMm.Valid && depthMm.Valid {
		p.Size = &domproduct.Dimensions{
			WidthMm:  widthMm.Float64,
			HeightMm: heightMm.Float64,
			DepthMm:  depthMm.Float64,
		}
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]*domproduct.Product, error) {
	defer rows.Close()
	products := []*domproduct.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func collectAssets(rows *sql.Rows) ([]*domproduct.Asset, error) {
	defer rows.Close()
	assets := []*domproduct.Asset{}
	for rows.Next() {
		var a domproduct.Asset
		var publicID, thumbnailURL, thumbnailPublicID, createdAt, updatedAt sql.NullString
		var width, height sql.NullInt64
		var typ string

		err := rows.Scan(&a.ID, &a.URL, &publicID, &a.FileName, &a.FileSize, &typ,
			&thumbnailURL, &thumbnailPublicID, &width, &height,
			&createdAt, &updatedAt, &a.ProductID)
		if err != nil {
			return nil, err
		}

		a.Type = domproduct.AssetType(typ)
		a.PublicID = strPtr(publicID)
		a.ThumbnailURL = strPtr(thumbnailURL)
		a.ThumbnailPublicID = strPtr(thumbnailPublicID)
		if width.Valid {
			a.Width = &width.Int64
		}
		if height.Valid {
			a.Height = &height.Int64
		}
		if createdAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, createdAt.String); err == nil {
				a.CreatedAt = t
			}
		}
		if updatedAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, updatedAt.String); err == nil {
				a.UpdatedAt = &t
			}
		}
		assets = append(assets, &a)
	}
	return assets, rows.Err()
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
