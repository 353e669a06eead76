package models

import (
	"gorm.io/datatypes"
)

// ContactEntry is a submitted contact-form entry. Entries are never
// hard-deleted: DeletedAt acts as the Active | Deleted(timestamp) tag and
// GORM's default scope keeps soft-deleted rows out of normal listings.
type ContactEntry struct {
	BaseModelWithDeleted
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null;index" json:"email"`
	Phone   string `gorm:"not null" json:"phone"`
	Message string `gorm:"type:text" json:"message"`

	// Attachment references, relative to the storage base path.
	ImagePath string `json:"image_path"`
	PDFPath   string `gorm:"column:pdf_path" json:"pdf_path"`

	// Ordered gallery of extra image refs, stored as a jsonb array.
	MultipleImages datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"multiple_images"`
}

func (ContactEntry) TableName() string {
	return "contact_entries"
}

// HasGalleryImage reports whether ref is currently part of the gallery.
func (e *ContactEntry) HasGalleryImage(ref string) bool {
	for _, img := range e.MultipleImages {
		if img == ref {
			return true
		}
	}
	return false
}

// RemoveGalleryImage drops ref from the gallery, preserving order of the
// remaining images. Removing an absent ref is a no-op.
func (e *ContactEntry) RemoveGalleryImage(ref string) {
	images := e.MultipleImages[:0]
	for _, img := range e.MultipleImages {
		if img != ref {
			images = append(images, img)
		}
	}
	e.MultipleImages = images
}
