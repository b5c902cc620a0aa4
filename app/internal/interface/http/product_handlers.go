package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	domproduct "example.com/ecomshop/app/internal/domain/product"
	productuc "example.com/ecomshop/app/internal/usecase/product"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

func parseListFilter(r *http.Request) domproduct.ListFilter {
	q := r.URL.Query()
	filter := domproduct.ListFilter{
		SearchQuery: q.Get("searchQuery"),
		SortBy:      q.Get("sortBy"),
		SortOrder:   q.Get("sortOrder"),
		Currency:    q.Get("currency"),
		PageIndex:   1,
		PageSize:    defaultPageSize,
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "asc"
	}
	if filter.Currency == "" {
		filter.Currency = "RUB"
	}

	for _, raw := range q["categories"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				filter.Categories = append(filter.Categories, c)
			}
		}
	}

	if v := q.Get("minPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinPrice = &n
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxPrice = &n
		}
	}

	if v := q.Get("pageIndex"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.PageIndex = n
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.PageSize = n
		}
	}
	if filter.PageIndex < 1 {
		filter.PageIndex = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 1
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	return filter
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := a.productSvc.List(r.Context(), parseListFilter(r))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	data := make([]map[string]any, 0, len(page.Data))
	for _, p := range page.Data {
		data = append(data, mapProduct(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"pageIndex":      page.PageIndex,
		"pageSize":       page.PageSize,
		"count":          page.Count,
		"data":           data,
		"totalPages":     page.TotalPages,
		"hasPrevious":    page.HasPrevious,
		"hasNext":        page.HasNext,
		"firstItemIndex": page.FirstItemIndex,
		"lastItemIndex":  page.LastItemIndex,
	})
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	p, err := a.productSvc.GetByID(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProduct(p))
}

func (a *API) handleGetProductPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	photos, err := a.productSvc.PhotosFor(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	resp := make([]map[string]any, 0, len(photos))
	for _, asset := range photos {
		resp = append(resp, mapAsset(asset))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.productSvc.Categories(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type sizeRequest struct {
	WidthMm  float64 `json:"widthMm"`
	HeightMm float64 `json:"heightMm"`
	DepthMm  float64 `json:"depthMm"`
}

type productUpdateRequest struct {
	ID             int64        `json:"id" validate:"required,gt=0"`
	Article        *string      `json:"article"`
	Name           *string      `json:"name" validate:"omitempty,min=1"`
	PackagedWeight *float64     `json:"packagedWeight" validate:"omitempty,gt=0"`
	PackagedVolume *float64     `json:"packagedVolume" validate:"omitempty,gt=0"`
	Size           *sizeRequest `json:"size"`
	DefaultColor   *string      `json:"defaultColor" validate:"omitempty,ral"`
	Category       *string      `json:"category"`
	Description    *string      `json:"description"`
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productUpdateRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	in := productuc.UpdateInput{
		ID:             req.ID,
		Article:        req.Article,
		Name:           req.Name,
		PackagedWeight: req.PackagedWeight,
		PackagedVolume: req.PackagedVolume,
		DefaultColor:   req.DefaultColor,
		Category:       req.Category,
		Description:    req.Description,
	}
	if req.Size != nil {
		in.Size = &domproduct.Dimensions{
			WidthMm:  req.Size.WidthMm,
			HeightMm: req.Size.HeightMm,
			DepthMm:  req.Size.DepthMm,
		}
	}

	if err := a.productSvc.Update(r.Context(), in); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type priceUpdateRequest struct {
	Kind      string     `json:"kind" validate:"omitempty,oneof=COGS WHOLESALE RETAIL"`
	Currency  string     `json:"currency"`
	Amount    int64      `json:"amount"`
	MinQty    int64      `json:"minQty"`
	ValidFrom *time.Time `json:"validFrom"`
	ValidTo   *time.Time `json:"validTo"`
}

func (a *API) handleUpdateProductPrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	var req priceUpdateRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	in := productuc.PriceInput{
		Kind:     domproduct.PriceKind(req.Kind),
		Currency: req.Currency,
		Amount:   req.Amount,
		MinQty:   req.MinQty,
		ValidTo:  req.ValidTo,
	}
	if req.ValidFrom != nil {
		in.ValidFrom = *req.ValidFrom
	}

	if err := a.productSvc.UpdatePrice(r.Context(), id, in); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	asset, err := a.productSvc.AddAsset(r.Context(), id, productuc.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapAsset(asset))
}

func (a *API) handleSetMainAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := parseIDParam(r, "assetId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.productSvc.SetMainAsset(r.Context(), assetID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := parseIDParam(r, "assetId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if err := a.productSvc.DeleteAsset(r.Context(), assetID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
