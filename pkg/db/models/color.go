package models

import "github.com/google/uuid"

// Color is a selectable product color with its hex code.
type Color struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
	Code string    `gorm:"column:code;not null"`
}
