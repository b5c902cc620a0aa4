package product

import "time"

type Product struct {
	ID             int64
	Article        *string
	Name           string
	PackagedWeight float64
	PackagedVolume float64
	Size           *Dimensions
	DefaultColor   *string
	Category       *string
	Description    *string
	ImageURL       *string
	SourceURL      *string
	Assets         []*Asset
}

// Dimensions is an owned value; all three sides are set together.
type Dimensions struct {
	WidthMm  float64
	HeightMm float64
	DepthMm  float64
}

func (d Dimensions) Valid() bool {
	return d.WidthMm > 0 && d.HeightMm > 0 && d.DepthMm > 0
}

type PriceKind string

const (
	PriceKindCOGS      PriceKind = "COGS"
	PriceKindWholesale PriceKind = "WHOLESALE"
	PriceKindRetail    PriceKind = "RETAIL"
)

// Price amounts are kept in minor units of Currency.
type Price struct {
	ID        string
	Kind      PriceKind
	Currency  string
	Amount    int64
	MinQty    int64
	ValidFrom time.Time
	ValidTo   *time.Time
	ProductID int64
}
