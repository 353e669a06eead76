package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"contactdesk_backend/internal/middleware"
	"contactdesk_backend/internal/models"
	"contactdesk_backend/internal/services/dto"
	"contactdesk_backend/internal/validator"
	"contactdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeContactService records created entries so the handler flow can be
// exercised without a database or filesystem.
type fakeContactService struct {
	entries map[string]*models.ContactEntry
}

func newFakeContactService() *fakeContactService {
	return &fakeContactService{entries: map[string]*models.ContactEntry{}}
}

func (s *fakeContactService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateContactRequest, files *dto.ContactFiles) (*models.ContactEntry, error) {
	if files == nil || files.Image == nil || files.PDF == nil {
		return nil, apperrors.NewBadRequestError("image and pdf files are required")
	}
	entry := &models.ContactEntry{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		ImagePath: "images/" + files.Image.Filename,
		PDFPath:   "pdfs/" + files.PDF.Filename,
	}
	entry.ID = uuid.NewString()
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *fakeContactService) Get(db *gorm.DB, id string) (*models.ContactEntry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, apperrors.ErrEntryNotFound(nil, id)
	}
	return entry, nil
}

func (s *fakeContactService) ListActive(db *gorm.DB) ([]models.ContactEntry, error) {
	var out []models.ContactEntry
	for _, e := range s.entries {
		if !e.DeletedAt.Valid {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeContactService) ListDeleted(db *gorm.DB) ([]models.ContactEntry, error) {
	var out []models.ContactEntry
	for _, e := range s.entries {
		if e.DeletedAt.Valid {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeContactService) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateContactRequest, files *dto.ContactFiles) (*models.ContactEntry, error) {
	entry, err := s.Get(db, id)
	if err != nil {
		return nil, err
	}
	if req.Message != "" {
		entry.Message = req.Message
	}
	return entry, nil
}

func (s *fakeContactService) SoftDelete(db *gorm.DB, id string) error {
	if _, ok := s.entries[id]; !ok {
		return apperrors.ErrEntryNotFound(nil, id)
	}
	return nil
}

func (s *fakeContactService) Restore(db *gorm.DB, id string) error {
	if _, ok := s.entries[id]; !ok {
		return apperrors.ErrEntryNotFound(nil, id)
	}
	return nil
}

func newContactRouter(svc *fakeContactService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.DBMiddleware(nil))

	base := NewBaseHandler(validator.New())
	handler := NewContactHandler(base, svc, 10<<20)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func addFormFile(t *testing.T, w *multipart.Writer, field, filename, contentType, content string) {
	t.Helper()
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
}

func submissionBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	addFormFile(t, w, "image", "photo.jpg", "image/jpeg", "jpeg-bytes")
	addFormFile(t, w, "pdf", "doc.pdf", "application/pdf", "%PDF-1.4")
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestSubmitContactForm(t *testing.T) {
	svc := newFakeContactService()
	router := newContactRouter(svc)

	body, contentType := submissionBody(t, map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "+12025550134",
		"message": "Hello there",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	// Browser form-post semantics: redirect back to the listing.
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/v1/contacts", rec.Header().Get("Location"))
	assert.NotEmpty(t, rec.Header().Get("X-Entry-ID"))

	require.Len(t, svc.entries, 1)
	for _, entry := range svc.entries {
		assert.Equal(t, "Jane Doe", entry.Name)
		assert.Equal(t, "jane@example.com", entry.Email)
	}
}

func TestSubmitRejectsInvalidFields(t *testing.T) {
	svc := newFakeContactService()
	router := newContactRouter(svc)

	body, contentType := submissionBody(t, map[string]string{
		"name":    "J",
		"email":   "not-an-email",
		"phone":   "123",
		"message": "Hello",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.entries)

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, apperrors.CodeValidationFailed, resp.Error.Code)

	// Details is the field -> message map keyed by json names.
	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "phone")
}

func TestSubmitRequiresFiles(t *testing.T) {
	svc := newFakeContactService()
	router := newContactRouter(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "+12025550134",
		"message": "Hello",
	} {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.entries)
}

func TestListActiveEnvelope(t *testing.T) {
	svc := newFakeContactService()
	entry := &models.ContactEntry{Name: "Jane Doe", Email: "jane@example.com"}
	entry.ID = uuid.NewString()
	svc.entries[entry.ID] = entry
	router := newContactRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []models.ContactEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Jane Doe", envelope.Data[0].Name)
}

func TestGetMissingEntryIs404(t *testing.T) {
	svc := newFakeContactService()
	router := newContactRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
