package product

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrInvalidDimensions  = errors.New("dimensions must be > 0")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrAlreadyMainImage   = errors.New("this is already the main image")
	ErrMainImageProtected = errors.New("cannot delete the main image")
	ErrUpdateFailed       = errors.New("failed to update product")
	ErrUploadFailed       = errors.New("failed to upload file")
	ErrStorageDeleteFailed = errors.New("failed to delete file from storage")
)
