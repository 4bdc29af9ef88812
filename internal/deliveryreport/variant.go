package deliveryreport

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned by ParseVariant for unsupported names.
var ErrUnknownVariant = errors.New("unknown report variant")

// Variant names one of the supported aggregation rule sets.
type Variant string

const (
	// VariantA counts distinct routes over delivered rows; stops and TEMU
	// deliveries are counted over every row.
	VariantA Variant = "A"
	// VariantB counts tracking numbers, stops and TEMU deliveries over
	// delivered rows only.
	VariantB Variant = "B"
	// VariantC is VariantA without any status filter, and it matches the
	// customer code without trimming it.
	VariantC Variant = "C"
)

// DefaultVariant is used when no variant is configured.
const DefaultVariant = VariantA

// Variants lists every supported variant.
var Variants = []Variant{VariantA, VariantB, VariantC}

// packageCount selects what PQ_Totales counts.
type packageCount int

const (
	countDistinctRoutes packageCount = iota
	countTrackingNumbers
)

// rules is the resolved form of a Variant.
type rules struct {
	packages            packageCount
	packagesDelivered   bool
	stopsDelivered      bool
	temuDelivered       bool
	trimCustomerAccount bool
}

// ParseVariant accepts a variant name, case-insensitively. An empty name
// selects DefaultVariant.
func ParseVariant(name string) (Variant, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return DefaultVariant, nil
	}
	for _, v := range Variants {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// String implements fmt.Stringer.
func (v Variant) String() string {
	return string(v)
}

func (v Variant) rules() rules {
	switch v {
	case VariantB:
		return rules{
			packages:            countTrackingNumbers,
			packagesDelivered:   true,
			stopsDelivered:      true,
			temuDelivered:       true,
			trimCustomerAccount: true,
		}
	case VariantC:
		return rules{
			packages:            countDistinctRoutes,
			trimCustomerAccount: false,
		}
	default:
		return rules{
			packages:            countDistinctRoutes,
			packagesDelivered:   true,
			trimCustomerAccount: true,
		}
	}
}
