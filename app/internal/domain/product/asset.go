package product

import (
	"path"
	"strings"
	"time"
)

type AssetType string

const (
	AssetTypeImage    AssetType = "image"
	AssetTypeDocument AssetType = "document"
	AssetTypeVideo    AssetType = "video"
	AssetTypeAudio    AssetType = "audio"
	AssetTypeArchive  AssetType = "archive"
	AssetTypeOther    AssetType = "other"
)

type Asset struct {
	ID                int64
	URL               string
	PublicID          *string
	FileName          string
	FileSize          int64
	Type              AssetType
	ThumbnailURL      *string
	ThumbnailPublicID *string
	Width             *int64
	Height            *int64
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	ProductID         int64
}

func (a *Asset) IsImage() bool { return a.Type == AssetTypeImage }

// DetectAssetType classifies by MIME type first, file extension second.
func DetectAssetType(fileName, contentType string) AssetType {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return AssetTypeImage
	case strings.HasPrefix(ct, "video/"):
		return AssetTypeVideo
	case strings.HasPrefix(ct, "audio/"):
		return AssetTypeAudio
	}

	switch strings.ToLower(path.Ext(fileName)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return AssetTypeImage
	case ".pdf", ".doc", ".docx", ".xls", ".xlsx", ".txt":
		return AssetTypeDocument
	case ".mp4", ".mpeg", ".mov", ".webm":
		return AssetTypeVideo
	case ".mp3", ".wav", ".ogg":
		return AssetTypeAudio
	case ".zip", ".rar", ".7z", ".tar", ".gz":
		return AssetTypeArchive
	}

	switch ct {
	case "application/pdf", "application/msword", "text/plain",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return AssetTypeDocument
	case "application/zip", "application/x-rar-compressed", "application/gzip":
		return AssetTypeArchive
	}
	return AssetTypeOther
}
