package models

import "github.com/google/uuid"

// Size is a selectable garment size label (S, M, L, XL).
type Size struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
}
