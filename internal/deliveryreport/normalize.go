package deliveryreport

import (
	"strings"

	"resumenapi/pkg/contracts/domain"
)

const (
	statusDelivered = "delivered"
	customerTEMU    = "TEMU"
)

// NormalizeStatus canonicalizes a FinalStatus value for comparison.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeCustomerCode canonicalizes a customerAccountCode value. When trim
// is false surrounding whitespace is kept, so " TEMU " does not match.
func NormalizeCustomerCode(s string, trim bool) string {
	s = strings.ToUpper(s)
	if trim {
		s = strings.TrimSpace(s)
	}
	return s
}

// IsDelivered reports whether the record's status is "delivered".
func IsDelivered(r domain.DeliveryRecord) bool {
	return r.FinalStatus.Valid && NormalizeStatus(r.FinalStatus.Value) == statusDelivered
}

// IsTEMU reports whether the record is billed to the TEMU account.
func IsTEMU(r domain.DeliveryRecord, trim bool) bool {
	return r.CustomerAccountCode.Valid && NormalizeCustomerCode(r.CustomerAccountCode.Value, trim) == customerTEMU
}
