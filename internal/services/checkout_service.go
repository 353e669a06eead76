package services

import (
	"context"
	"time"

	"contactdesk_backend/internal/gateway"
	"contactdesk_backend/internal/logger"
	"contactdesk_backend/internal/models"
	"contactdesk_backend/internal/repositories"
	"contactdesk_backend/internal/services/dto"
	"contactdesk_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentGateway is the outbound gateway surface the orchestrator needs.
// *gateway.Client satisfies it.
type PaymentGateway interface {
	Charge(ctx context.Context, card gateway.CardFields) (*gateway.Response, error)
	Initiate3DS(ctx context.Context, card gateway.CardFields, callbackURL string) (*gateway.Response, error)
	Verify(ctx context.Context, payID string) (*gateway.Response, error)
	Successful(code string) bool
}

// CheckoutService drives the payment state machine:
//
//	INITIATED -> CONFIRMED | DECLINED            (direct charge)
//	INITIATED -> PENDING_3DS -> CONFIRMED | DECLINED | VERIFICATION_FAILED
//
// The state is persisted on the PaymentLog row keyed by the gateway's
// payment id, which is what correlates the 3DS initiation with the bank
// callback arriving in a later request.
type CheckoutService interface {
	DirectCharge(ctx context.Context, db *gorm.DB, req *dto.CheckoutRequest) (*dto.CheckoutResult, error)
	Initiate3DS(ctx context.Context, db *gorm.DB, req *dto.CheckoutRequest, callbackURL string) (*dto.CheckoutResult, error)
	HandleCallback(ctx context.Context, db *gorm.DB, payID string) (*dto.CheckoutResult, error)

	// Audit access to the permanent payment log.
	Logs(db *gorm.DB) ([]models.PaymentLog, error)
	Log(db *gorm.DB, id string) (*models.PaymentLog, error)
}

type checkoutService struct {
	logRepo  repositories.PaymentLogRepository
	gateway  PaymentGateway
	currency string
}

func NewCheckoutService(logRepo repositories.PaymentLogRepository, gw PaymentGateway, currency string) CheckoutService {
	return &checkoutService{
		logRepo:  logRepo,
		gateway:  gw,
		currency: currency,
	}
}

// DirectCharge runs the synchronous flow: one gateway call, one log row with
// the final status, all within the request.
func (s *checkoutService) DirectCharge(ctx context.Context, db *gorm.DB, req *dto.CheckoutRequest) (*dto.CheckoutResult, error) {
	start := time.Now()
	resp, err := s.gateway.Charge(ctx, cardFields(req))
	logger.GatewayLog("charge", payIDOf(resp), time.Since(start), err)
	if err != nil {
		// Nothing came back to attach a log row to.
		return nil, apperrors.ErrGateway(err, "Payment gateway unreachable")
	}

	status := models.PaymentStatusDeclined
	if s.gateway.Successful(resp.Result.Code) {
		status = models.PaymentStatusConfirmed
	}

	row := &models.PaymentLog{
		PayID:        resp.ID,
		Status:       status,
		StatusCode:   resp.Result.Code,
		StatusDesc:   resp.Result.Description,
		Amount:       req.Amount,
		Currency:     s.currency,
		Brand:        req.Brand,
		FullResponse: datatypes.JSON(resp.Raw),
	}
	if err := s.logRepo.Create(db, row); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to record payment log", 500)
	}

	return &dto.CheckoutResult{
		Status:      status,
		PayID:       resp.ID,
		Code:        resp.Result.Code,
		Description: resp.Result.Description,
		Message:     statusMessage(status),
	}, nil
}

// Initiate3DS starts the asynchronous flow. The log row is parked in
// PENDING_3DS; the caller redirects the browser when the gateway supplied a
// redirect URL and otherwise receives the raw gateway response.
func (s *checkoutService) Initiate3DS(ctx context.Context, db *gorm.DB, req *dto.CheckoutRequest, callbackURL string) (*dto.CheckoutResult, error) {
	start := time.Now()
	resp, err := s.gateway.Initiate3DS(ctx, cardFields(req), callbackURL)
	logger.GatewayLog("initiate_3ds", payIDOf(resp), time.Since(start), err)
	if err != nil {
		return nil, apperrors.ErrGateway(err, "Payment gateway unreachable")
	}

	row := &models.PaymentLog{
		PayID:        resp.ID,
		Status:       models.PaymentStatusPending3DS,
		StatusCode:   resp.Result.Code,
		StatusDesc:   resp.Result.Description,
		Amount:       req.Amount,
		Currency:     s.currency,
		Brand:        req.Brand,
		FullResponse: datatypes.JSON(resp.Raw),
	}
	if err := s.logRepo.Create(db, row); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to record payment log", 500)
	}

	result := &dto.CheckoutResult{
		Status:      models.PaymentStatusPending3DS,
		PayID:       resp.ID,
		Code:        resp.Result.Code,
		Description: resp.Result.Description,
		Message:     "3-D Secure authentication required",
	}
	if resp.Redirect != nil && resp.Redirect.URL != "" {
		result.RedirectURL = resp.Redirect.URL
	} else {
		result.RawResponse = resp.Raw
	}
	return result, nil
}

// HandleCallback resumes the 3DS flow when the shopper's browser returns
// from the bank. The existing PENDING_3DS row is resolved in place; a pay id
// with no matching row is a reported inconsistency.
func (s *checkoutService) HandleCallback(ctx context.Context, db *gorm.DB, payID string) (*dto.CheckoutResult, error) {
	if payID == "" {
		return nil, apperrors.NewBadRequestError("missing payment id in callback")
	}

	if _, err := s.logRepo.FindByPayID(db, payID); err != nil {
		if apperrors.Is(err, repositories.ErrPayIDNotFound) {
			logger.CtxError(ctx, "callback for unknown payment id", "pay_id", payID)
			return nil, apperrors.ErrCallbackMismatch(payID)
		}
		return nil, err
	}

	start := time.Now()
	resp, err := s.gateway.Verify(ctx, payID)
	logger.GatewayLog("verify", payID, time.Since(start), err)
	if err != nil {
		// The attempt stays resolvable: mark the row VERIFICATION_FAILED and
		// hand the web layer a descriptive failure instead of an opaque 500.
		failure := repositories.PaymentLogUpdate{
			Status:     models.PaymentStatusVerificationFailed,
			StatusDesc: err.Error(),
		}
		if updErr := s.logRepo.UpdateByPayID(db, payID, failure); updErr != nil {
			logger.CtxWithError(ctx, "failed to record verification failure", updErr, "pay_id", payID)
		}
		return &dto.CheckoutResult{
			Status:  models.PaymentStatusVerificationFailed,
			PayID:   payID,
			Message: statusMessage(models.PaymentStatusVerificationFailed),
		}, nil
	}

	status := models.PaymentStatusDeclined
	if s.gateway.Successful(resp.Result.Code) {
		status = models.PaymentStatusConfirmed
	}

	update := repositories.PaymentLogUpdate{
		Status:       status,
		StatusCode:   resp.Result.Code,
		StatusDesc:   resp.Result.Description,
		FullResponse: datatypes.JSON(resp.Raw),
	}
	if err := s.logRepo.UpdateByPayID(db, payID, update); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "payment", "Failed to update payment log", 500)
	}

	return &dto.CheckoutResult{
		Status:      status,
		PayID:       payID,
		Code:        resp.Result.Code,
		Description: resp.Result.Description,
		Message:     statusMessage(status),
	}, nil
}

func (s *checkoutService) Logs(db *gorm.DB) ([]models.PaymentLog, error) {
	return s.logRepo.FindAll(db)
}

func (s *checkoutService) Log(db *gorm.DB, id string) (*models.PaymentLog, error) {
	log, err := s.logRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentLogNotFound) {
			return nil, apperrors.ErrPaymentLogNotFound(err, id)
		}
		return nil, err
	}
	return log, nil
}

func cardFields(req *dto.CheckoutRequest) gateway.CardFields {
	return gateway.CardFields{
		Amount:      req.Amount,
		Brand:       req.Brand,
		Number:      req.Number,
		Holder:      req.Holder,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		CVV:         req.CVV,
	}
}

func payIDOf(resp *gateway.Response) string {
	if resp == nil {
		return ""
	}
	return resp.ID
}

func statusMessage(status models.PaymentStatus) string {
	switch status {
	case models.PaymentStatusConfirmed:
		return "Payment confirmed. Thank you for your purchase."
	case models.PaymentStatusDeclined:
		return "Payment was declined by the gateway."
	case models.PaymentStatusVerificationFailed:
		return "Payment verification failed. Please contact support."
	default:
		return "Payment is being processed."
	}
}
