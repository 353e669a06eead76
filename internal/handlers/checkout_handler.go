package handlers

import (
	"net/http"

	"contactdesk_backend/internal/services"
	"contactdesk_backend/internal/services/dto"
	"contactdesk_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	*BaseHandler
	checkoutService services.CheckoutService
}

func NewCheckoutHandler(base *BaseHandler, checkoutService services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler:     base,
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) RegisterRoutes(r *gin.RouterGroup) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("", h.DirectCharge)
		checkout.POST("/3ds", h.Initiate3DS)
		// The bank redirects the shopper's browser here after the challenge.
		checkout.GET("/callback", h.Callback)
	}

	logs := r.Group("/payment-logs")
	{
		logs.GET("", h.ListLogs)
		logs.GET("/:id", h.GetLog)
	}
}

func (h *CheckoutHandler) DirectCharge(c *gin.Context) {
	req, ok := h.bindCheckoutRequest(c)
	if !ok {
		return
	}

	result, err := h.checkoutService.DirectCharge(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Respond(c, http.StatusOK, result, result.Message)
}

func (h *CheckoutHandler) Initiate3DS(c *gin.Context) {
	req, ok := h.bindCheckoutRequest(c)
	if !ok {
		return
	}

	callbackURL := PublicOrigin(c) + "/api/v1/checkout/callback"

	result, err := h.checkoutService.Initiate3DS(c.Request.Context(), h.GetDB(c), req, callbackURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// A redirect URL means the shopper must visit the bank's challenge page.
	if result.RedirectURL != "" {
		c.Redirect(http.StatusSeeOther, result.RedirectURL)
		return
	}

	h.Respond(c, http.StatusOK, result, result.Message)
}

// Callback resumes a pending 3DS payment when the bank sends the browser
// back with the gateway's payment id.
func (h *CheckoutHandler) Callback(c *gin.Context) {
	payID := c.Query("id")

	result, err := h.checkoutService.HandleCallback(c.Request.Context(), h.GetDB(c), payID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Respond(c, http.StatusOK, result, result.Message)
}

func (h *CheckoutHandler) ListLogs(c *gin.Context) {
	logs, err := h.checkoutService.Logs(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, logs)
}

func (h *CheckoutHandler) GetLog(c *gin.Context) {
	log, err := h.checkoutService.Log(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Respond(c, http.StatusOK, log)
}

func (h *CheckoutHandler) bindCheckoutRequest(c *gin.Context) (*dto.CheckoutRequest, bool) {
	var req dto.CheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid checkout data: "+err.Error()))
		return nil, false
	}
	if !h.Validate(c, &req) {
		return nil, false
	}
	return &req, true
}
