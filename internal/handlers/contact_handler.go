package handlers

import (
	"net/http"

	"contactdesk_backend/internal/services"
	"contactdesk_backend/internal/services/dto"
	"contactdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
	maxUploadBytes int64
}

// NewContactHandler builds the handler. maxUploadBytes caps a multipart
// submission (config `upload.max_size`).
func NewContactHandler(base *BaseHandler, contactService services.ContactService, maxUploadBytes int64) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup) {
	contacts := r.Group("/contacts")
	{
		contacts.POST("", h.Submit)
		contacts.GET("", h.ListActive)
		contacts.GET("/trash", h.ListDeleted)
		contacts.GET("/:id", h.Get)
		contacts.PUT("/:id", h.Update)
		contacts.POST("/:id/delete", h.SoftDelete)
		contacts.POST("/:id/restore", h.Restore)
	}
}

// Submit handles a contact-form submission: validated fields, one image, one
// PDF and optional gallery images. Success answers with 303 See Other back
// to the listing, matching browser form-post semantics.
func (h *ContactHandler) Submit(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid form data: "+err.Error()))
		return
	}
	if !h.Validate(c, &req) {
		return
	}

	files, err := h.collectFiles(c, true)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	entry, err := h.contactService.Create(c.Request.Context(), h.GetDB(c), &req, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("X-Entry-ID", entry.ID)
	c.Redirect(http.StatusSeeOther, "/api/v1/contacts")
}

func (h *ContactHandler) ListActive(c *gin.Context) {
	entries, err := h.contactService.ListActive(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, entries)
}

func (h *ContactHandler) ListDeleted(c *gin.Context) {
	entries, err := h.contactService.ListDeleted(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, entries)
}

func (h *ContactHandler) Get(c *gin.Context) {
	entry, err := h.contactService.Get(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, entry)
}

// Update mutates the message and attachment set of an entry. Replacement
// image/pdf and added gallery files arrive as multipart files;
// delete_images lists gallery refs to drop.
func (h *ContactHandler) Update(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxUploadBytes); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid form data: "+err.Error()))
		return
	}
	if !h.Validate(c, &req) {
		return
	}

	files, err := h.collectFiles(c, false)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	entry, err := h.contactService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Respond(c, http.StatusOK, entry, "Entry updated")
}

func (h *ContactHandler) SoftDelete(c *gin.Context) {
	if err := h.contactService.SoftDelete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, nil, "Entry moved to trash")
}

func (h *ContactHandler) Restore(c *gin.Context) {
	if err := h.contactService.Restore(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, nil, "Entry restored")
}

// collectFiles gathers the uploaded parts. When required is set the image
// and pdf parts must be present.
func (h *ContactHandler) collectFiles(c *gin.Context, required bool) (*dto.ContactFiles, error) {
	files := &dto.ContactFiles{}

	if fh, err := c.FormFile("image"); err == nil {
		files.Image = fh
	} else if required {
		return nil, apperrors.NewBadRequestError("no image file provided")
	}

	if fh, err := c.FormFile("pdf"); err == nil {
		files.PDF = fh
	} else if required {
		return nil, apperrors.NewBadRequestError("no pdf file provided")
	}

	if form := c.Request.MultipartForm; form != nil {
		files.MultipleImages = form.File["multiple_images"]
	}

	return files, nil
}
