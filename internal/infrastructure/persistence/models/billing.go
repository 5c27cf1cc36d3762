package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/paytrack/backend/internal/domain/billing"
	"github.com/paytrack/backend/internal/domain/shared/valueobject"
)

// PurchaseModel is the persistence model for the Purchase domain entity.
// Purchases carry no tenant column: ownership flows through the
// customer row.
type PurchaseModel struct {
	AggregateModel
	CustomerID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Product         string            `gorm:"type:varchar(200);not null"`
	PurchaseDate    time.Time         `gorm:"not null"`
	InitialPayment  valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	RentalAmount    valueobject.Money `gorm:"type:decimal(18,2);not null;default:0"`
	RentalFrequency billing.Frequency `gorm:"type:varchar(20);not null"`
	CreatedBy       *uuid.UUID        `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "purchases"
}

// ToDomain converts the persistence model to a domain Purchase entity.
func (m *PurchaseModel) ToDomain() *billing.Purchase {
	return &billing.Purchase{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		Product:           m.Product,
		PurchaseDate:      m.PurchaseDate,
		InitialPayment:    m.InitialPayment,
		RentalAmount:      m.RentalAmount,
		RentalFrequency:   m.RentalFrequency,
		CreatedBy:         m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Purchase entity.
func (m *PurchaseModel) FromDomain(p *billing.Purchase) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.CustomerID = p.CustomerID
	m.Product = p.Product
	m.PurchaseDate = p.PurchaseDate
	m.InitialPayment = p.InitialPayment
	m.RentalAmount = p.RentalAmount
	m.RentalFrequency = p.RentalFrequency
	m.CreatedBy = p.CreatedBy
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase entity.
func PurchaseModelFromDomain(p *billing.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	AggregateModel
	PurchaseID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Amount       valueobject.Money     `gorm:"type:decimal(18,2);not null"`
	DueDate      time.Time             `gorm:"not null;index"`
	Status       billing.PaymentStatus `gorm:"type:varchar(20);not null"`
	PaidDate     *time.Time
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
	MarkedPaidBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PurchaseID:        m.PurchaseID,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Status:            m.Status,
		PaidDate:          m.PaidDate,
		CreatedBy:         m.CreatedBy,
		MarkedPaidBy:      m.MarkedPaidBy,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PurchaseID = p.PurchaseID
	m.Amount = p.Amount
	m.DueDate = p.DueDate
	m.Status = p.Status
	m.PaidDate = p.PaidDate
	m.CreatedBy = p.CreatedBy
	m.MarkedPaidBy = p.MarkedPaidBy
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
