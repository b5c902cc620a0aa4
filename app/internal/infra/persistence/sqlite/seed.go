package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domproduct "example.com/ecomshop/app/internal/domain/product"
)

type seedSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type seedAsset struct {
	URL          string  `json:"url"`
	Type         *int    `json:"type"`
	FileName     *string `json:"fileName"`
	ThumbnailURL *string `json:"thumbnailUrl"`
	FileSize     int64   `json:"fileSize"`
	Width        *int64  `json:"width"`
	Height       *int64  `json:"height"`
}

type seedProduct struct {
	Article        *string     `json:"article"`
	Name           string      `json:"name"`
	PackagedWeight float64     `json:"packagedWeight"`
	PackagedVolume float64     `json:"packagedVolume"`
	Size           seedSize    `json:"size"`
	SourceURL      *string     `json:"sourceUrl"`
	DefaultColor   *string     `json:"defaultColor"`
	Category       *string     `json:"category"`
	Description    *string     `json:"description"`
	ImageURL       *string     `json:"imageUrl"`
	Assets         []seedAsset `json:"assets"`
}

// Seed numeric asset types follow the original export: 0=image, 1=document,
// 2=video, 3=audio, 4=archive, 5=other.
var seedAssetTypes = map[int]domproduct.AssetType{
	0: domproduct.AssetTypeImage,
	1: domproduct.AssetTypeDocument,
	2: domproduct.AssetTypeVideo,
	3: domproduct.AssetTypeAudio,
	4: domproduct.AssetTypeArchive,
	5: domproduct.AssetTypeOther,
}

// SeedProducts loads the parsed product export into an empty products table.
// Seed-time assets carry raw URLs and no storage public id.
func SeedProducts(ctx context.Context, db *sql.DB, path string, logger *zap.Logger) error {
	var existing int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		logger.Info("products already present, seeding skipped", zap.Int("count", existing))
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seeds []seedProduct
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(seeds) == 0 {
		logger.Warn("seed file contains no products, seeding aborted")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, s := range seeds {
		res, err := tx.ExecContext(ctx, `
            INSERT INTO products (article, name, packaged_weight, packaged_volume,
                width_mm, height_mm, depth_mm, default_color, category,
                description, image_url, source_url)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, s.Article, s.Name, s.PackagedWeight, s.PackagedVolume,
			s.Size.Width, s.Size.Height, s.Size.Depth,
			s.DefaultColor, s.Category, s.Description, s.ImageURL, s.SourceURL)
		if err != nil {
			return err
		}
		productID, _ := res.LastInsertId()

		haveMain := false
		for _, a := range s.Assets {
			if strings.TrimSpace(a.URL) == "" {
				continue
			}
			if s.ImageURL != nil && a.URL == *s.ImageURL {
				haveMain = true
			}
			typ, ok := domproduct.AssetTypeOther, false
			if a.Type != nil {
				typ, ok = seedAssetTypes[*a.Type]
			}
			if !ok {
				typ = domproduct.DetectAssetType(a.URL, "")
			}
			fileName := fmt.Sprintf("seed_asset_%d_%s", productID, uuid.NewString())
			if a.FileName != nil && *a.FileName != "" {
				fileName = *a.FileName
			}
			if _, err := tx.ExecContext(ctx, `
                INSERT INTO assets (url, file_name, file_size, type,
                    thumbnail_url, width, height, created_at, product_id)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
            `, a.URL, fileName, a.FileSize, string(typ),
				a.ThumbnailURL, a.Width, a.Height, now, productID); err != nil {
				return err
			}
		}

		// The main-image pointer must reference a real asset row.
		if s.ImageURL != nil && strings.TrimSpace(*s.ImageURL) != "" && !haveMain {
			fileName := fmt.Sprintf("seed_asset_%d_%s", productID, uuid.NewString())
			if _, err := tx.ExecContext(ctx, `
                INSERT INTO assets (url, file_name, file_size, type, created_at, product_id)
                VALUES (?, ?, 0, ?, ?, ?)
            `, *s.ImageURL, fileName, string(domproduct.AssetTypeImage), now, productID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.Info("seeded products", zap.Int("count", len(seeds)))
	return nil
}
