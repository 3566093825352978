// Package models holds the GORM persistence models of the ledger tables.
// Soft delete is an ordinary nullable deleted_at column filtered by an
// explicit predicate in the repositories; gorm.DeletedAt and its implicit
// query rewriting are deliberately not used.
package models

import (
	"time"

	"github.com/costledger/backend/internal/domain/ledger"
	"github.com/costledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TenantModel provides the common persistence fields of tenant-scoped
// ledger rows
type TenantModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	DeletedAt *time.Time `gorm:"index"`
}

// ToDomain converts TenantModel to the domain base entity
func (m *TenantModel) ToDomain() shared.TenantEntity {
	return shared.TenantEntity{
		ID:        m.ID,
		TenantID:  m.TenantID,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	}
}

// FromDomain populates TenantModel from the domain base entity
func (m *TenantModel) FromDomain(e shared.TenantEntity) {
	m.ID = e.ID
	m.TenantID = e.TenantID
	m.CreatedBy = e.CreatedBy
	m.UpdatedBy = e.UpdatedBy
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	m.DeletedAt = e.DeletedAt
}

// ContractModel is the persistence model of the contract rows the ledger
// reads. The rows are owned and written by an external system; the ledger
// only resolves them per tenant and locks them during payment mutations.
type ContractModel struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Currency   string           `gorm:"type:varchar(3);not null"`
	TotalValue *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract
func (m *ContractModel) ToDomain() *ledger.Contract {
	return &ledger.Contract{
		ID:         m.ID,
		TenantID:   m.TenantID,
		Currency:   m.Currency,
		TotalValue: m.TotalValue,
	}
}

// BudgetLineModel is the persistence model for budget lines
type BudgetLineModel struct {
	TenantModel
	ContractID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	Name        string                  `gorm:"type:varchar(200);not null"`
	Quantity    *decimal.Decimal        `gorm:"type:decimal(18,4)"`
	Unit        string                  `gorm:"type:varchar(50)"`
	UnitPrice   *decimal.Decimal        `gorm:"type:decimal(18,4)"`
	TotalAmount decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	Currency    string                  `gorm:"type:varchar(3);not null"`
	Status      ledger.BudgetLineStatus `gorm:"type:varchar(20);not null;default:'planned';index"`
}

// TableName returns the table name for GORM
func (BudgetLineModel) TableName() string {
	return "budget_lines"
}

// ToDomain converts the persistence model to a domain BudgetLine
func (m *BudgetLineModel) ToDomain() *ledger.BudgetLine {
	return &ledger.BudgetLine{
		TenantEntity: m.TenantModel.ToDomain(),
		ContractID:   m.ContractID,
		Name:         m.Name,
		Quantity:     m.Quantity,
		Unit:         m.Unit,
		UnitPrice:    m.UnitPrice,
		TotalAmount:  m.TotalAmount,
		Currency:     m.Currency,
		Status:       m.Status,
	}
}

// BudgetLineModelFromDomain creates a persistence model from domain
func BudgetLineModelFromDomain(line *ledger.BudgetLine) *BudgetLineModel {
	m := &BudgetLineModel{
		ContractID:  line.ContractID,
		Name:        line.Name,
		Quantity:    line.Quantity,
		Unit:        line.Unit,
		UnitPrice:   line.UnitPrice,
		TotalAmount: line.TotalAmount,
		Currency:    line.Currency,
		Status:      line.Status,
	}
	m.FromDomain(line.TenantEntity)
	return m
}

// ExpenseModel is the persistence model for expenses
type ExpenseModel struct {
	TenantModel
	ContractID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Name       string               `gorm:"type:varchar(200);not null"`
	Quantity   *decimal.Decimal     `gorm:"type:decimal(18,4)"`
	UnitCost   *decimal.Decimal     `gorm:"type:decimal(18,4)"`
	Amount     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency   string               `gorm:"type:varchar(3);not null"`
	Status     ledger.ExpenseStatus `gorm:"type:varchar(20);not null;default:'recorded';index"`
}

// TableName returns the table name for GORM
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts the persistence model to a domain Expense
func (m *ExpenseModel) ToDomain() *ledger.Expense {
	return &ledger.Expense{
		TenantEntity: m.TenantModel.ToDomain(),
		ContractID:   m.ContractID,
		Name:         m.Name,
		Quantity:     m.Quantity,
		UnitCost:     m.UnitCost,
		Amount:       m.Amount,
		Currency:     m.Currency,
		Status:       m.Status,
	}
}

// ExpenseModelFromDomain creates a persistence model from domain
func ExpenseModelFromDomain(expense *ledger.Expense) *ExpenseModel {
	m := &ExpenseModel{
		ContractID: expense.ContractID,
		Name:       expense.Name,
		Quantity:   expense.Quantity,
		UnitCost:   expense.UnitCost,
		Amount:     expense.Amount,
		Currency:   expense.Currency,
		Status:     expense.Status,
	}
	m.FromDomain(expense.TenantEntity)
	return m
}

// PaymentModel is the persistence model for scheduled payments
type PaymentModel struct {
	TenantModel
	ContractID uuid.UUID            `gorm:"type:uuid;not null;index"`
	Name       string               `gorm:"type:varchar(200);not null"`
	Amount     decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency   string               `gorm:"type:varchar(3);not null"`
	DueDate    time.Time            `gorm:"not null"`
	PaidAt     *time.Time
	Status     ledger.PaymentStatus `gorm:"type:varchar(20);not null;default:'planned';index"`
	SortOrder  int                  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		TenantEntity: m.TenantModel.ToDomain(),
		ContractID:   m.ContractID,
		Name:         m.Name,
		Amount:       m.Amount,
		Currency:     m.Currency,
		DueDate:      m.DueDate,
		PaidAt:       m.PaidAt,
		Status:       m.Status,
		SortOrder:    m.SortOrder,
	}
}

// PaymentModelFromDomain creates a persistence model from domain
func PaymentModelFromDomain(payment *ledger.Payment) *PaymentModel {
	m := &PaymentModel{
		ContractID: payment.ContractID,
		Name:       payment.Name,
		Amount:     payment.Amount,
		Currency:   payment.Currency,
		DueDate:    payment.DueDate,
		PaidAt:     payment.PaidAt,
		Status:     payment.Status,
		SortOrder:  payment.SortOrder,
	}
	m.FromDomain(payment.TenantEntity)
	return m
}
