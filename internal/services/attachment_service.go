package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	"contactdesk_backend/internal/storage"
	"contactdesk_backend/pkg/apperrors"
)

// AttachmentKind selects the directory an attachment is stored under.
type AttachmentKind string

const (
	KindImage    AttachmentKind = "images"
	KindDocument AttachmentKind = "pdfs"
	KindGallery  AttachmentKind = "gallery"
)

// AttachmentService maps uploaded files to stable storage references.
// References are "<kind>/<random token><original ext>" and never collide,
// so two uploads with the same original filename cannot overwrite each
// other.
type AttachmentService interface {
	// Store writes an uploaded file and returns its reference.
	Store(ctx context.Context, file *multipart.FileHeader, kind AttachmentKind) (string, error)

	// StoreStream is Store for a raw reader; originalName only contributes
	// its extension.
	StoreStream(ctx context.Context, r io.Reader, originalName, contentType string, kind AttachmentKind) (string, error)

	// Remove deletes the underlying file. Removing an already-absent file
	// is a no-op, not an error.
	Remove(ctx context.Context, ref string) error
}

type attachmentService struct {
	storage storage.Storage
}

func NewAttachmentService(store storage.Storage) AttachmentService {
	return &attachmentService{storage: store}
}

func (s *attachmentService) Store(ctx context.Context, file *multipart.FileHeader, kind AttachmentKind) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", apperrors.ErrStorageFailure(err, "failed to open uploaded file")
	}
	defer src.Close()

	return s.StoreStream(ctx, src, file.Filename, file.Header.Get("Content-Type"), kind)
}

func (s *attachmentService) StoreStream(ctx context.Context, r io.Reader, originalName, contentType string, kind AttachmentKind) (string, error) {
	ref := fmt.Sprintf("%s/%s%s", kind, randomToken(), filepath.Ext(originalName))

	if err := s.storage.Save(ctx, ref, r, contentType); err != nil {
		return "", apperrors.ErrStorageFailure(err, "failed to store file")
	}

	return ref, nil
}

func (s *attachmentService) Remove(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if err := s.storage.Delete(ctx, ref); err != nil {
		return apperrors.ErrStorageFailure(err, "failed to delete file")
	}
	return nil
}

func randomToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(fmt.Sprintf("random source unavailable: %v", err))
	}
	return hex.EncodeToString(b)
}
