package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	dommember "example.com/ecomshop/app/internal/domain/member"
	domproduct "example.com/ecomshop/app/internal/domain/product"
	domuser "example.com/ecomshop/app/internal/domain/user"
	authuc "example.com/ecomshop/app/internal/usecase/auth"
	memberuc "example.com/ecomshop/app/internal/usecase/member"
	productuc "example.com/ecomshop/app/internal/usecase/product"
)

var ralPattern = regexp.MustCompile(`^RAL\s?\d{4}$`)

// Pinger reports backing-store liveness for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type API struct {
	productSvc *productuc.Service
	memberSvc  *memberuc.Service
	authSvc    *authuc.Service
	tokenSvc   authuc.TokenService
	validator  *validator.Validate
	logger     *zap.Logger
	store      Pinger
}

type Dependencies struct {
	ProductService *productuc.Service
	MemberService  *memberuc.Service
	AuthService    *authuc.Service
	TokenService   authuc.TokenService
	Logger         *zap.Logger
	Store          Pinger
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	_ = validate.RegisterValidation("ral", func(fl validator.FieldLevel) bool {
		return ralPattern.MatchString(fl.Field().String())
	})
	return &API{
		productSvc: deps.ProductService,
		memberSvc:  deps.MemberService,
		authSvc:    deps.AuthService,
		tokenSvc:   deps.TokenService,
		validator:  validate,
		logger:     deps.Logger,
		store:      deps.Store,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain", "multipart/form-data"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := a.store.PingContext(r.Context()); err != nil {
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", a.handleRegister)
		r.Post("/auth/login", a.handleLogin)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", a.handleListProducts)
			r.Get("/categories", a.handleGetCategories)
			r.Get("/{id}", a.handleGetProduct)
			r.Get("/{id}/photos", a.handleGetProductPhotos)
			r.Put("/", a.handleUpdateProduct)
			r.Post("/{id}/update-price", a.handleUpdateProductPrice)
			r.Post("/{id}/add-asset", a.handleAddAsset)
			r.Put("/set-main-asset/{assetId}", a.handleSetMainAsset)
			r.Delete("/delete-asset/{assetId}", a.handleDeleteAsset)
		})

		r.Group(func(mr chi.Router) {
			mr.Use(a.authMiddleware)
			mr.Get("/members", a.handleListMembers)
			mr.Get("/members/{id}", a.handleGetMember)
			mr.Put("/members", a.handleUpdateMember)
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	return strconv.ParseInt(idStr, 10, 64)
}

func mapProduct(p *domproduct.Product) map[string]any {
	var size any
	if p.Size != nil {
		size = map[string]any{
			"widthMm":  p.Size.WidthMm,
			"heightMm": p.Size.HeightMm,
			"depthMm":  p.Size.DepthMm,
		}
	}
	return map[string]any{
		"id":             p.ID,
		"article":        p.Article,
		"name":           p.Name,
		"packagedWeight": p.PackagedWeight,
		"packagedVolume": p.PackagedVolume,
		"size":           size,
		"defaultColor":   p.DefaultColor,
		"category":       p.Category,
		"description":    p.Description,
		"imageUrl":       p.ImageURL,
		"sourceUrl":      p.SourceURL,
	}
}

func mapAsset(a *domproduct.Asset) map[string]any {
	return map[string]any{
		"id":                a.ID,
		"url":               a.URL,
		"publicId":          a.PublicID,
		"fileName":          a.FileName,
		"fileSize":          a.FileSize,
		"type":              a.Type,
		"thumbnailUrl":      a.ThumbnailURL,
		"thumbnailPublicId": a.ThumbnailPublicID,
		"width":             a.Width,
		"height":            a.Height,
		"createdAt":         a.CreatedAt,
		"updatedAt":         a.UpdatedAt,
		"productId":         a.ProductID,
		"isImage":           a.IsImage(),
	}
}

func mapMember(m *dommember.Member) map[string]any {
	return map[string]any{
		"id":          m.ID,
		"userId":      m.UserID,
		"displayName": m.DisplayName,
		"description": m.Description,
		"city":        m.City,
		"country":     m.Country,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domproduct.ErrAssetNotFound),
		errors.Is(err, dommember.ErrMemberNotFound),
		errors.Is(err, domuser.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domproduct.ErrInvalidDimensions),
		errors.Is(err, domproduct.ErrNegativePrice),
		errors.Is(err, domproduct.ErrAlreadyMainImage),
		errors.Is(err, domproduct.ErrMainImageProtected),
		errors.Is(err, domproduct.ErrUpdateFailed),
		errors.Is(err, domproduct.ErrUploadFailed),
		errors.Is(err, domproduct.ErrStorageDeleteFailed),
		errors.Is(err, dommember.ErrUpdateFailed),
		errors.Is(err, domuser.ErrInvalidCredential):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domuser.ErrEmailAlreadyUsed):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
