package repositories

import (
	"errors"

	"contactdesk_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPaymentLogNotFound = errors.New("payment log not found")
	// ErrPayIDNotFound signals a callback referencing a pay id with no
	// matching log row. The caller must report it, not swallow it.
	ErrPayIDNotFound = errors.New("no payment log for pay id")
)

// PaymentLogRepository manages the permanent payment audit log. There is no
// delete operation on purpose.
type PaymentLogRepository interface {
	Create(db *gorm.DB, log *models.PaymentLog) error
	FindByID(db *gorm.DB, id string) (*models.PaymentLog, error)
	FindByPayID(db *gorm.DB, payID string) (*models.PaymentLog, error)
	FindAll(db *gorm.DB) ([]models.PaymentLog, error)
	UpdateByPayID(db *gorm.DB, payID string, fields PaymentLogUpdate) error
}

// PaymentLogUpdate is the set of fields the callback path may overwrite.
// Zero-valued fields leave the row's existing content untouched, so a
// partial update (e.g. verification failure with no gateway payload) never
// wipes the audit record.
type PaymentLogUpdate struct {
	Status       models.PaymentStatus
	StatusCode   string
	StatusDesc   string
	FullResponse datatypes.JSON
}

type PaymentLogRepositoryImpl struct{}

func NewPaymentLogRepository() PaymentLogRepository {
	return &PaymentLogRepositoryImpl{}
}

func (r *PaymentLogRepositoryImpl) Create(db *gorm.DB, log *models.PaymentLog) error {
	return db.Create(log).Error
}

func (r *PaymentLogRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.PaymentLog, error) {
	var log models.PaymentLog
	err := db.First(&log, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByPayID returns the most recent row for the gateway id. Pay ids are
// not guaranteed unique across retries, so newest wins.
func (r *PaymentLogRepositoryImpl) FindByPayID(db *gorm.DB, payID string) (*models.PaymentLog, error) {
	var log models.PaymentLog
	err := db.Where("pay_id = ?", payID).
		Order("created_at DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayIDNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *PaymentLogRepositoryImpl) FindAll(db *gorm.DB) ([]models.PaymentLog, error) {
	var logs []models.PaymentLog
	err := db.Order("created_at DESC").Find(&logs).Error
	return logs, err
}

// UpdateByPayID mutates the matching row's status fields and raw response in
// place. No new row is ever created here, and absent fields keep their
// stored values.
func (r *PaymentLogRepositoryImpl) UpdateByPayID(db *gorm.DB, payID string, fields PaymentLogUpdate) error {
	log, err := r.FindByPayID(db, payID)
	if err != nil {
		return err
	}

	log.Status = fields.Status
	if fields.StatusCode != "" {
		log.StatusCode = fields.StatusCode
	}
	if fields.StatusDesc != "" {
		log.StatusDesc = fields.StatusDesc
	}
	if len(fields.FullResponse) > 0 {
		log.FullResponse = fields.FullResponse
	}
	return db.Save(log).Error
}
