package services

import (
	"context"
	"mime/multipart"

	"contactdesk_backend/internal/email"
	"contactdesk_backend/internal/logger"
	"contactdesk_backend/internal/models"
	"contactdesk_backend/internal/repositories"
	"contactdesk_backend/internal/services/dto"
	"contactdesk_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ContactService owns the contact-entry lifecycle: create, update with
// attachment deltas, soft delete, restore.
//
// Write ordering is always file first, then database row. A crash between
// the two leaves at most an orphaned file, never a row referencing a
// missing file. On delete the reference is dropped with the row mutation
// and physical cleanup runs afterwards, best-effort.
type ContactService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateContactRequest, files *dto.ContactFiles) (*models.ContactEntry, error)
	Get(db *gorm.DB, id string) (*models.ContactEntry, error)
	ListActive(db *gorm.DB) ([]models.ContactEntry, error)
	ListDeleted(db *gorm.DB) ([]models.ContactEntry, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateContactRequest, files *dto.ContactFiles) (*models.ContactEntry, error)
	SoftDelete(db *gorm.DB, id string) error
	Restore(db *gorm.DB, id string) error
}

type contactService struct {
	entryRepo   repositories.ContactEntryRepository
	attachments AttachmentService
	mailer      email.Provider
	imageTypes  map[string]struct{}
}

// NewContactService builds the service. allowedImageTypes is the MIME
// allowlist for image and gallery uploads (config `upload.allowed_image_types`).
func NewContactService(
	entryRepo repositories.ContactEntryRepository,
	attachments AttachmentService,
	mailer email.Provider,
	allowedImageTypes []string,
) ContactService {
	imageTypes := make(map[string]struct{}, len(allowedImageTypes))
	for _, t := range allowedImageTypes {
		imageTypes[t] = struct{}{}
	}
	return &contactService{
		entryRepo:   entryRepo,
		attachments: attachments,
		mailer:      mailer,
		imageTypes:  imageTypes,
	}
}

func (s *contactService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateContactRequest, files *dto.ContactFiles) (*models.ContactEntry, error) {
	if files == nil || files.Image == nil || files.PDF == nil {
		return nil, apperrors.NewBadRequestError("image and pdf files are required")
	}
	if err := s.validateContentTypes(files); err != nil {
		return nil, err
	}

	// Files go to disk first; refs are collected so a failed row insert can
	// clean them up instead of leaving orphans around.
	var stored []string
	cleanup := func() {
		for _, ref := range stored {
			if err := s.attachments.Remove(ctx, ref); err != nil {
				logger.CtxWarn(ctx, "failed to clean up attachment after aborted create", "ref", ref, "error", err.Error())
			}
		}
	}

	imageRef, err := s.attachments.Store(ctx, files.Image, KindImage)
	if err != nil {
		return nil, err
	}
	stored = append(stored, imageRef)

	pdfRef, err := s.attachments.Store(ctx, files.PDF, KindDocument)
	if err != nil {
		cleanup()
		return nil, err
	}
	stored = append(stored, pdfRef)

	var gallery []string
	for _, fh := range files.MultipleImages {
		ref, err := s.attachments.Store(ctx, fh, KindGallery)
		if err != nil {
			cleanup()
			return nil, err
		}
		stored = append(stored, ref)
		gallery = append(gallery, ref)
	}

	entry := &models.ContactEntry{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Message:        req.Message,
		ImagePath:      imageRef,
		PDFPath:        pdfRef,
		MultipleImages: gallery,
	}

	if err := s.entryRepo.Create(db, entry); err != nil {
		cleanup()
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "contact", "Failed to save contact entry", 500)
	}

	// Confirmation mail is fire-and-forget: a mail failure must never reach
	// the submitting request.
	go func(to, name, body string) {
		if err := s.mailer.SendContactConfirmation(to, name, body); err != nil {
			logger.Error("failed to send contact confirmation", "to", to, "error", err.Error())
		}
	}(entry.Email, entry.Name, entry.Message)

	logger.CtxInfo(ctx, "contact entry created", "entry_id", entry.ID)
	return entry, nil
}

func (s *contactService) Get(db *gorm.DB, id string) (*models.ContactEntry, error) {
	entry, err := s.entryRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEntryNotFound) {
			return nil, apperrors.ErrEntryNotFound(err, id)
		}
		return nil, err
	}
	return entry, nil
}

func (s *contactService) ListActive(db *gorm.DB) ([]models.ContactEntry, error) {
	return s.entryRepo.FindActive(db)
}

func (s *contactService) ListDeleted(db *gorm.DB) ([]models.ContactEntry, error) {
	return s.entryRepo.FindDeleted(db)
}

// Update mutates the message and the attachment set. New files are written
// before the row is saved; replaced and removed files are physically deleted
// only after the row mutation succeeds, and those deletions are tolerated
// failures.
func (s *contactService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateContactRequest, files *dto.ContactFiles) (*models.ContactEntry, error) {
	entry, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}
	// The id lookup is unscoped so the trash view can address entries, but
	// mutating a trashed row would be silently dropped by the soft-delete
	// scope on save. Reject before any file is written or deleted.
	if entry.DeletedAt.Valid {
		return nil, apperrors.ErrEntryDeleted(id)
	}
	if files == nil {
		files = &dto.ContactFiles{}
	}
	if err := s.validateOptionalContentTypes(files); err != nil {
		return nil, err
	}

	if req.Message != "" {
		entry.Message = req.Message
	}

	// Files whose references the row no longer holds; removed from disk
	// after the save.
	var obsolete []string
	// Files written for this update; removed again if the save fails.
	var added []string

	if files.Image != nil {
		ref, err := s.attachments.Store(ctx, files.Image, KindImage)
		if err != nil {
			return nil, err
		}
		added = append(added, ref)
		obsolete = append(obsolete, entry.ImagePath)
		entry.ImagePath = ref
	}

	if files.PDF != nil {
		ref, err := s.attachments.Store(ctx, files.PDF, KindDocument)
		if err != nil {
			s.removeAll(ctx, added, "aborted update")
			return nil, err
		}
		added = append(added, ref)
		obsolete = append(obsolete, entry.PDFPath)
		entry.PDFPath = ref
	}

	for _, fh := range files.MultipleImages {
		ref, err := s.attachments.Store(ctx, fh, KindGallery)
		if err != nil {
			s.removeAll(ctx, added, "aborted update")
			return nil, err
		}
		added = append(added, ref)
		entry.MultipleImages = append(entry.MultipleImages, ref)
	}

	// Gallery deletions: reference and file go together. A ref that is not
	// part of the gallery is a no-op, no file is touched.
	for _, ref := range req.DeleteImages {
		if !entry.HasGalleryImage(ref) {
			continue
		}
		entry.RemoveGalleryImage(ref)
		obsolete = append(obsolete, ref)
	}

	if err := s.entryRepo.Update(db, entry); err != nil {
		s.removeAll(ctx, added, "aborted update")
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "contact", "Failed to update contact entry", 500)
	}

	s.removeAll(ctx, obsolete, "update cleanup")

	logger.CtxInfo(ctx, "contact entry updated", "entry_id", entry.ID)
	return entry, nil
}

func (s *contactService) SoftDelete(db *gorm.DB, id string) error {
	err := s.entryRepo.SoftDelete(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEntryNotFound) {
			return apperrors.ErrEntryNotFound(err, id)
		}
		return err
	}
	return nil
}

func (s *contactService) Restore(db *gorm.DB, id string) error {
	err := s.entryRepo.Restore(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEntryNotFound) {
			return apperrors.ErrEntryNotFound(err, id)
		}
		return err
	}
	return nil
}

// removeAll physically deletes refs, logging failures instead of aborting.
func (s *contactService) removeAll(ctx context.Context, refs []string, reason string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.attachments.Remove(ctx, ref); err != nil {
			logger.CtxWarn(ctx, "file cleanup failed", "ref", ref, "reason", reason, "error", err.Error())
		}
	}
}

func (s *contactService) validateContentTypes(files *dto.ContactFiles) error {
	if !s.allowedImage(files.Image) {
		return apperrors.NewBadRequestError("file 'image' must be an image of an allowed type")
	}
	if ct := files.PDF.Header.Get("Content-Type"); ct != "application/pdf" {
		return apperrors.NewBadRequestError("file 'pdf' must be a PDF document")
	}
	return s.validateGalleryContentTypes(files.MultipleImages)
}

func (s *contactService) validateOptionalContentTypes(files *dto.ContactFiles) error {
	if files.Image != nil && !s.allowedImage(files.Image) {
		return apperrors.NewBadRequestError("file 'image' must be an image of an allowed type")
	}
	if files.PDF != nil {
		if ct := files.PDF.Header.Get("Content-Type"); ct != "application/pdf" {
			return apperrors.NewBadRequestError("file 'pdf' must be a PDF document")
		}
	}
	return s.validateGalleryContentTypes(files.MultipleImages)
}

func (s *contactService) validateGalleryContentTypes(gallery []*multipart.FileHeader) error {
	for _, fh := range gallery {
		if !s.allowedImage(fh) {
			return apperrors.NewBadRequestError("gallery files must be images of an allowed type")
		}
	}
	return nil
}

func (s *contactService) allowedImage(fh *multipart.FileHeader) bool {
	_, ok := s.imageTypes[fh.Header.Get("Content-Type")]
	return ok
}
