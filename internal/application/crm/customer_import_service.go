package crm

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paytrack/backend/internal/domain/crm"
	csvimport "github.com/paytrack/backend/internal/infrastructure/import"
)

// CustomerImportResult represents the outcome of a bulk import. Rows
// are never aborted as a batch: each row succeeds or fails on its own.
type CustomerImportResult struct {
	Total        int                  `json:"total"`
	SuccessCount int                  `json:"success_count"`
	FailedCount  int                  `json:"failed_count"`
	Failed       []csvimport.RowError `json:"failed"`
}

// CustomerImportService handles customer bulk import from CSV
type CustomerImportService struct {
	customerRepo crm.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerImportService creates a new CustomerImportService
func NewCustomerImportService(customerRepo crm.CustomerRepository, logger *zap.Logger) *CustomerImportService {
	return &CustomerImportService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Import reads CSV content and inserts one customer per data row for
// the tenant. The customer name may come from either a "name" or a
// "customer_name" column. Failed rows are collected with their
// 1-indexed row number (header is row 1).
func (s *CustomerImportService) Import(ctx context.Context, tenantID uuid.UUID, r io.Reader) (*CustomerImportResult, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	result := &CustomerImportResult{Failed: []csvimport.RowError{}}

	for {
		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: count it and keep going
			result.Total++
			result.FailedCount++
			result.Failed = append(result.Failed, csvimport.NewRowError(parser.CurrentLine(), err.Error()))
			continue
		}
		if row.IsEmpty() {
			continue
		}

		result.Total++

		if err := s.importRow(ctx, tenantID, row); err != nil {
			result.FailedCount++
			result.Failed = append(result.Failed, csvimport.NewRowError(row.LineNumber, err.Error()))
			continue
		}
		result.SuccessCount++
	}

	s.logger.Info("Customer import finished",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("total", result.Total),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", result.FailedCount),
	)

	return result, nil
}

func (s *CustomerImportService) importRow(ctx context.Context, tenantID uuid.UUID, row *csvimport.Row) error {
	name := strings.TrimSpace(row.First("name", "customer_name"))

	customer, err := crm.NewCustomer(tenantID, name)
	if err != nil {
		return err
	}
	customer.SetCreatedBy(tenantID)

	email := row.Get("email")
	phone := row.Get("phone")
	company := row.Get("company")
	if email != "" || phone != "" || company != "" {
		if err := customer.SetContact(email, phone, company); err != nil {
			return err
		}
	}

	return s.customerRepo.Save(ctx, customer)
}
