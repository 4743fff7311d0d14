package models

import (
	"strings"
	"time"

	dErrors "pspcatalog/pkg/domain-errors"
)

// Status is the lifecycle state of a PSP offer.
type Status string

const (
	StatusEnabled  Status = "ENABLED"
	StatusDisabled Status = "DISABLED"
	StatusIncoming Status = "INCOMING"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusEnabled, StatusDisabled, StatusIncoming:
		return true
	}
	return false
}

// Language is an upstream language code.
type Language string

const (
	LanguageIT Language = "IT"
	LanguageEN Language = "EN"
	LanguageFR Language = "FR"
	LanguageDE Language = "DE"
	LanguageSL Language = "SL"
)

// ParseLanguage normalizes and validates a language code.
func ParseLanguage(raw string) (Language, error) {
	lang := Language(strings.ToUpper(strings.TrimSpace(raw)))
	switch lang {
	case LanguageIT, LanguageEN, LanguageFR, LanguageDE, LanguageSL:
		return lang, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "unsupported language: "+raw)
}

// Key identifies one PSP offer. At most one record exists per key.
type Key struct {
	PspCode     string
	PaymentType string
	Channel     string
	Language    Language
}

// PspRecord is one PSP's offer for a (payment type, channel, language) combination.
// Amounts are expressed in minor currency units.
type PspRecord struct {
	Key         Key
	Status      Status
	Name        string
	BrokerName  string
	Description string
	MinAmount   int64
	MaxAmount   int64
	FeeAmount   int64
	UpdatedAt   time.Time
}

// Covers reports whether amount falls within the record's inclusive range.
func (r PspRecord) Covers(amount int64) bool {
	return r.MinAmount <= amount && amount <= r.MaxAmount
}

// NewRecord builds a record and enforces its invariants.
func NewRecord(key Key, status Status, name, brokerName, description string, minAmount, maxAmount, feeAmount int64, updatedAt time.Time) (*PspRecord, error) {
	if strings.TrimSpace(key.PspCode) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "psp code is required")
	}
	if strings.TrimSpace(key.PaymentType) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "payment type is required")
	}
	if strings.TrimSpace(key.Channel) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "channel is required")
	}
	if key.Language == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "language is required")
	}
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid status: "+string(status))
	}
	if minAmount > maxAmount {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid amount range")
	}
	return &PspRecord{
		Key:         key,
		Status:      status,
		Name:        name,
		BrokerName:  brokerName,
		Description: description,
		MinAmount:   minAmount,
		MaxAmount:   maxAmount,
		FeeAmount:   feeAmount,
		UpdatedAt:   updatedAt,
	}, nil
}

// Criteria is the optional filter triple of a lookup request.
// A nil Amount means "no amount constraint"; zero is a real amount.
type Criteria struct {
	Amount      *int64
	Language    string
	PaymentType string
}

// HasAmount reports whether an amount constraint is present.
func (c Criteria) HasAmount() bool {
	return c.Amount != nil
}

// HasLanguage reports whether a non-blank language constraint is present.
func (c Criteria) HasLanguage() bool {
	return strings.TrimSpace(c.Language) != ""
}

// HasPaymentType reports whether a non-blank payment type constraint is present.
func (c Criteria) HasPaymentType() bool {
	return strings.TrimSpace(c.PaymentType) != ""
}
