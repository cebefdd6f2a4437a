package repository

import (
	"context"
	"time"

	"cricketleague/internal/domain"

	"gorm.io/gorm"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

type registrationModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	FullName         string     `gorm:"column:full_name"`
	Email            string     `gorm:"column:email;uniqueIndex"`
	Phone            string     `gorm:"column:phone"`
	DateOfBirth      *string    `gorm:"column:date_of_birth"`
	State            string     `gorm:"column:state"`
	City             string     `gorm:"column:city"`
	Pincode          string     `gorm:"column:pincode"`
	Position         string     `gorm:"column:position"`
	PreferredTrials  *string    `gorm:"column:preferred_trials"`
	Status           string     `gorm:"column:status"`
	PaymentStatus    string     `gorm:"column:payment_status"`
	PaymentAmount    int64      `gorm:"column:payment_amount"`
	GatewayPaymentID *string    `gorm:"column:gateway_payment_id"`
	GatewayOrderID   *string    `gorm:"column:gateway_order_id"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (registrationModel) TableName() string { return "registrations" }

func toDomainRegistration(m registrationModel) *domain.Registration {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	return &domain.Registration{
		ID:               m.ID,
		FullName:         m.FullName,
		Email:            m.Email,
		Phone:            m.Phone,
		DateOfBirth:      deref(m.DateOfBirth),
		State:            m.State,
		City:             m.City,
		Pincode:          m.Pincode,
		Position:         domain.PlayerPosition(m.Position),
		PreferredTrials:  deref(m.PreferredTrials),
		Status:           domain.RegistrationStatus(m.Status),
		PaymentStatus:    domain.PaymentState(m.PaymentStatus),
		PaymentAmount:    m.PaymentAmount,
		GatewayPaymentID: deref(m.GatewayPaymentID),
		GatewayOrderID:   deref(m.GatewayOrderID),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toRegistrationModel(r *domain.Registration) registrationModel {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		v := s
		return &v
	}

	return registrationModel{
		ID:               r.ID,
		FullName:         r.FullName,
		Email:            r.Email,
		Phone:            r.Phone,
		DateOfBirth:      opt(r.DateOfBirth),
		State:            r.State,
		City:             r.City,
		Pincode:          r.Pincode,
		Position:         string(r.Position),
		PreferredTrials:  opt(r.PreferredTrials),
		Status:           string(r.Status),
		PaymentStatus:    string(r.PaymentStatus),
		PaymentAmount:    r.PaymentAmount,
		GatewayPaymentID: opt(r.GatewayPaymentID),
		GatewayOrderID:   opt(r.GatewayOrderID),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	m := toRegistrationModel(reg)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*reg = *toDomainRegistration(m)
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	var m registrationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRegistration(m), nil
}

// Update applies a partial patch. Re-applying the same terminal patch is a
// no-op in effect, so failure-path callers may safely retry.
func (r *RegistrationRepository) Update(ctx context.Context, id int64, patch map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&registrationModel{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&registrationModel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *RegistrationRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.Registration, int64, error) {
	q := r.db.WithContext(ctx).Model(&registrationModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []registrationModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Registration, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRegistration(m))
	}
	return out, total, nil
}
