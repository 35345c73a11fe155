package payroll

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrRecordNotFound = errors.New("payroll record not found")
)

type PayrollStatus string

const (
	PayrollStatusPending  PayrollStatus = "pending"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusRejected PayrollStatus = "rejected"
)

// IsValid validates the payroll status
func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusPending, PayrollStatusApproved, PayrollStatusRejected:
		return true
	}
	return false
}

// Record is one settled pay period for a worker. NetPay arrives
// precomputed from the payroll system; no rates or taxes here.
type Record struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	WorkerID    uuid.UUID     `json:"worker_id" gorm:"type:uuid;not null;index:idx_payroll_worker"`
	PeriodStart time.Time     `json:"period_start" gorm:"not null"`
	PeriodEnd   time.Time     `json:"period_end" gorm:"not null;index:idx_payroll_period_end"`
	NetPay      float64       `json:"net_pay" gorm:"not null"`
	Status      PayrollStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index:idx_payroll_status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for payroll records
func (Record) TableName() string {
	return "payroll_records"
}

// BeforeCreate is called before inserting a new payroll record
func (p *Record) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = PayrollStatusPending
	}
	if !p.Status.IsValid() {
		return errors.New("invalid payroll status")
	}
	return nil
}
