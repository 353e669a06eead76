package repositories

import (
	"errors"

	"contactdesk_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEntryNotFound = errors.New("contact entry not found")

type ContactEntryRepository interface {
	Create(db *gorm.DB, entry *models.ContactEntry) error
	FindByID(db *gorm.DB, id string) (*models.ContactEntry, error)
	FindActive(db *gorm.DB) ([]models.ContactEntry, error)
	FindDeleted(db *gorm.DB) ([]models.ContactEntry, error)
	Update(db *gorm.DB, entry *models.ContactEntry) error
	SoftDelete(db *gorm.DB, id string) error
	Restore(db *gorm.DB, id string) error
}

type ContactEntryRepositoryImpl struct{}

func NewContactEntryRepository() ContactEntryRepository {
	return &ContactEntryRepositoryImpl{}
}

func (r *ContactEntryRepositoryImpl) Create(db *gorm.DB, entry *models.ContactEntry) error {
	return db.Create(entry).Error
}

// FindByID looks the entry up regardless of its deleted state so that
// restore and trash views can address it.
func (r *ContactEntryRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ContactEntry, error) {
	var entry models.ContactEntry
	err := db.Unscoped().First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindActive returns entries with DeletedAt null, newest first. GORM's
// default scope excludes soft-deleted rows.
func (r *ContactEntryRepositoryImpl) FindActive(db *gorm.DB) ([]models.ContactEntry, error) {
	var entries []models.ContactEntry
	err := db.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *ContactEntryRepositoryImpl) FindDeleted(db *gorm.DB) ([]models.ContactEntry, error) {
	var entries []models.ContactEntry
	err := db.Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *ContactEntryRepositoryImpl) Update(db *gorm.DB, entry *models.ContactEntry) error {
	return db.Save(entry).Error
}

// SoftDelete sets DeletedAt. Deleting an already-deleted entry is a no-op;
// a missing id is ErrEntryNotFound.
func (r *ContactEntryRepositoryImpl) SoftDelete(db *gorm.DB, id string) error {
	entry, err := r.FindByID(db, id)
	if err != nil {
		return err
	}
	if entry.DeletedAt.Valid {
		return nil
	}
	return db.Delete(&models.ContactEntry{}, "id = ?", id).Error
}

// Restore clears DeletedAt, making the entry indistinguishable from one that
// was never deleted.
func (r *ContactEntryRepositoryImpl) Restore(db *gorm.DB, id string) error {
	if _, err := r.FindByID(db, id); err != nil {
		return err
	}
	return db.Unscoped().
		Model(&models.ContactEntry{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}
