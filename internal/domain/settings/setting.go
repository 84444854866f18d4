// Package settings holds the restaurant's key/value configuration
// (tax rate, business identity, invoice emission codes).
package settings

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/restopos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Well-known keys
const (
	KeyTaxRate           = "tax_rate"
	KeyBusinessName      = "business_name"
	KeyBusinessRUC       = "business_ruc"
	KeyBusinessAddress   = "business_address"
	KeyEstablishmentCode = "establishment_code"
	KeyEmissionPoint     = "emission_point"
	KeyCurrency          = "currency"
	KeySRIEnvironment    = "sri_environment"
)

var (
	keyRegex    = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)
	codeRegex   = regexp.MustCompile(`^[0-9]{3}$`)
	rucRegex    = regexp.MustCompile(`^[0-9]{13}$`)
	validSRIEnv = map[string]bool{"1": true, "2": true}
)

// Setting is a single configuration entry
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// NewSetting validates and builds a setting
func NewSetting(key, value string) (*Setting, error) {
	key = strings.TrimSpace(key)
	if !keyRegex.MatchString(key) {
		return nil, shared.NewValidationError("Config key must be lower_snake_case and at most 64 characters")
	}
	value = strings.TrimSpace(value)
	if err := validateValue(key, value); err != nil {
		return nil, err
	}
	return &Setting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

func validateValue(key, value string) error {
	switch key {
	case KeyTaxRate:
		rate, err := decimal.NewFromString(value)
		if err != nil || !shared.ValidTaxRate(rate) {
			return shared.NewValidationError("tax_rate must be a number between 0 and 100")
		}
	case KeyEstablishmentCode, KeyEmissionPoint:
		if !codeRegex.MatchString(value) {
			return shared.NewValidationError(key + " must be exactly 3 digits")
		}
	case KeyBusinessRUC:
		if value != "" && !rucRegex.MatchString(value) {
			return shared.NewValidationError("business_ruc must be 13 digits")
		}
	case KeySRIEnvironment:
		if !validSRIEnv[value] {
			return shared.NewValidationError("sri_environment must be 1 (test) or 2 (production)")
		}
	}
	return nil
}

// Repository persists settings
type Repository interface {
	FindAll(ctx context.Context) ([]Setting, error)
	FindByKey(ctx context.Context, key string) (*Setting, error)
	// Upsert stores all entries in one transaction
	Upsert(ctx context.Context, settings ...*Setting) error
}

// Snapshot is a typed view over the stored settings with defaults applied
type Snapshot struct {
	TaxRate           decimal.Decimal
	BusinessName      string
	BusinessRUC       string
	BusinessAddress   string
	EstablishmentCode string
	EmissionPoint     string
	Currency          string
	SRIEnvironment    string
}

// Defaults seed a Snapshot before stored values are applied
type Defaults struct {
	TaxRate           decimal.Decimal
	BusinessName      string
	Currency          string
	EstablishmentCode string
	EmissionPoint     string
}

// BuildSnapshot applies stored values over defaults. Unparseable values keep the default.
func BuildSnapshot(defaults Defaults, stored []Setting) Snapshot {
	s := Snapshot{
		TaxRate:           defaults.TaxRate,
		BusinessName:      defaults.BusinessName,
		Currency:          defaults.Currency,
		EstablishmentCode: defaults.EstablishmentCode,
		EmissionPoint:     defaults.EmissionPoint,
		SRIEnvironment:    "1",
	}
	for _, st := range stored {
		switch st.Key {
		case KeyTaxRate:
			if rate, err := decimal.NewFromString(st.Value); err == nil && shared.ValidTaxRate(rate) {
				s.TaxRate = rate
			}
		case KeyBusinessName:
			s.BusinessName = st.Value
		case KeyBusinessRUC:
			s.BusinessRUC = st.Value
		case KeyBusinessAddress:
			s.BusinessAddress = st.Value
		case KeyEstablishmentCode:
			s.EstablishmentCode = st.Value
		case KeyEmissionPoint:
			s.EmissionPoint = st.Value
		case KeyCurrency:
			s.Currency = st.Value
		case KeySRIEnvironment:
			s.SRIEnvironment = st.Value
		}
	}
	return s
}
