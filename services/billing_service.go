package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Payment statuses returned by the billing oracle.
const (
	PaymentPaid      = "paid"
	PaymentUnpaid    = "unpaid"
	PaymentNoRecords = "no_records"
)

// BillingService answers whether a customer has any unpaid bills. It reads
// the bills workbook maintained by the billing department; the file is not
// part of the record store and may be absent, which reads as no_records.
type BillingService struct {
	path string
	mu   sync.Mutex
}

var billingInstance *BillingService

// InitBilling initializes the billing service over the given bills workbook.
func InitBilling(path string) *BillingService {
	billingInstance = &BillingService{path: path}
	return billingInstance
}

// GetBilling returns the billing service instance.
func GetBilling() *BillingService {
	return billingInstance
}

// SetBilling sets the billing service instance (primarily for testing).
func SetBilling(b *BillingService) {
	billingInstance = b
}

// CheckPaymentStatus reports the payment standing of the given customer key:
// paid when every bill row for the key is paid, unpaid when any row is not,
// and no_records when the key has no rows (or no bills file exists).
func (b *BillingService) CheckPaymentStatus(customerKey string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	f, err := excelize.OpenFile(b.path)
	if err != nil {
		// Billing data not provisioned: nothing owed on record.
		return PaymentNoRecords, nil
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil || len(rows) == 0 {
		return "", errors.New("billing: cannot read bills worksheet")
	}

	idCol, statusCol := -1, -1
	for i, col := range rows[0] {
		switch strings.TrimSpace(col) {
		case "Customer ID":
			idCol = i
		case "Payment Status":
			statusCol = i
		}
	}
	if idCol < 0 || statusCol < 0 {
		return "", errors.New("billing: bills worksheet is missing Customer ID or Payment Status")
	}

	found := false
	for _, row := range rows[1:] {
		if idCol >= len(row) || strings.TrimSpace(row[idCol]) != customerKey {
			continue
		}
		found = true
		status := ""
		if statusCol < len(row) {
			status = strings.ToLower(strings.TrimSpace(row[statusCol]))
		}
		if status != PaymentPaid {
			return PaymentUnpaid, nil
		}
	}
	if !found {
		return PaymentNoRecords, nil
	}
	return PaymentPaid, nil
}
