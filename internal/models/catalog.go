package models

import "github.com/google/uuid"

// Category is a node in the self-referential catalog tree. Deleting a
// parent row cascades to its children at the database level; the API
// itself only ever soft-deletes by clearing IsActive.
type Category struct {
	BaseModel
	Name        string     `gorm:"uniqueIndex;size:100" json:"name"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Parent      *Category  `gorm:"constraint:OnDelete:CASCADE" json:"parent,omitempty"`
	Children    []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
}

// Breadcrumb is one step of a root-to-node category path.
type Breadcrumb struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}
