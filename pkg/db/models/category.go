package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stylehaven/stylehaven-backend/pkg/enums"
)

// Category is a named group of products inside a storefront section.
type Category struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Section   enums.CatalogSection `gorm:"column:section;type:text;not null;default:'men'"`
	Name      string               `gorm:"column:name;not null"`
	Slug      string               `gorm:"column:slug;not null;uniqueIndex"`
	ImageURL  *string              `gorm:"column:image_url"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
