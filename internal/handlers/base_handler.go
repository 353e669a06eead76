package handlers

import (
	"fmt"

	"contactdesk_backend/internal/logger"
	"contactdesk_backend/internal/validator"
	"contactdesk_backend/pkg/apperrors"
	"contactdesk_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB extracts the *gorm.DB (pool or injected transaction) from the gin
// context. DBMiddleware must have run.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "db key not found in context", "key", dbKey)
		panic("DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "db in context has wrong type", "type", fmt.Sprintf("%T", val))
		panic("db in context has incorrect type")
	}

	return db
}

// Validate runs struct validation and renders the field map on failure.
// Returns false when the request was already answered.
func (h *BaseHandler) Validate(c *gin.Context, req interface{}) bool {
	if err := h.validator.Validate(req); err != nil {
		var vErr *validator.ValidationError
		if apperrors.As(err, &vErr) {
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			apperrors.HandleError(c, err)
		}
		return false
	}
	return true
}

// HandleServiceError renders a service-layer error.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// Envelope is the standard success response. Messages is the explicit
// per-response message list shown to the user; there is no session-backed
// flash state.
type Envelope struct {
	Messages []string    `json:"messages,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func (h *BaseHandler) Respond(c *gin.Context, status int, data interface{}, messages ...string) {
	c.JSON(status, Envelope{
		Messages: messages,
		Data:     data,
	})
}

// PublicOrigin computes the externally reachable origin of the current
// request, honoring reverse-proxy forwarding headers. Payment callbacks
// derived from it must be reachable by the shopper's browser, not by this
// process.
func PublicOrigin(c *gin.Context) string {
	scheme := c.GetHeader("X-Forwarded-Proto")
	if scheme == "" {
		if c.Request.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}

	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}
