package rules

import (
	"context"
	"errors"
	"strings"

	"pspcatalog/internal/psp/models"
	"pspcatalog/internal/psp/ports"
)

// ErrNoRuleMatched means the rule table has no cell for a presence vector.
// Select can only return it if the table below loses a case.
var ErrNoRuleMatched = errors.New("no filter rule matched")

// Presence is the 3-bit encoding of which criteria a request supplies.
type Presence uint8

const (
	AmountBit Presence = 1 << iota
	LanguageBit
	PaymentTypeBit
)

// PresenceOf computes the presence vector of c. Blank strings count as absent;
// a zero amount counts as present.
func PresenceOf(c models.Criteria) Presence {
	var p Presence
	if c.HasAmount() {
		p |= AmountBit
	}
	if c.HasLanguage() {
		p |= LanguageBit
	}
	if c.HasPaymentType() {
		p |= PaymentTypeBit
	}
	return p
}

// String renders the vector as "amount+language" style labels.
func (p Presence) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	if p&AmountBit != 0 {
		parts = append(parts, "amount")
	}
	if p&LanguageBit != 0 {
		parts = append(parts, "language")
	}
	if p&PaymentTypeBit != 0 {
		parts = append(parts, "payment_type")
	}
	return strings.Join(parts, "+")
}

type runFunc func(ctx context.Context, store ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error)

// AccessPath is one pre-built store query shape, bound to exactly one presence vector.
type AccessPath struct {
	name     string
	presence Presence
	run      runFunc
}

// Name identifies the path in logs and metrics.
func (a *AccessPath) Name() string { return a.name }

// Presence returns the vector this path answers.
func (a *AccessPath) Presence() Presence { return a.presence }

// Matches reports whether the path answers c.
func (a *AccessPath) Matches(c models.Criteria) bool {
	return PresenceOf(c) == a.presence
}

// Run executes the path's single store query.
func (a *AccessPath) Run(ctx context.Context, store ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
	return a.run(ctx, store, c)
}

func language(c models.Criteria) string    { return strings.TrimSpace(c.Language) }
func paymentType(c models.Criteria) string { return strings.TrimSpace(c.PaymentType) }

var (
	PathAll = &AccessPath{
		name: "all",
		run: func(ctx context.Context, s ports.CatalogReader, _ models.Criteria) ([]models.PspRecord, error) {
			return s.FindAll(ctx)
		},
	}
	PathAmount = &AccessPath{
		name:     "amount",
		presence: AmountBit,
		run: func(ctx context.Context, s ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
			return s.FindByAmount(ctx, *c.Amount)
		},
	}
	PathLanguage = &AccessPath{
		name:     "language",
		presence: LanguageBit,
		run: func(ctx context.Context, s ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
			return s.FindByLanguage(ctx, language(c))
		},
	}
	PathPaymentType = &AccessPath{
		name:     "payment_type",
		presence: PaymentTypeBit,
		run: func(ctx context.Context, s ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
			return s.FindByPaymentType(ctx, paymentType(c))
		},
	}
	PathAmountLanguage = &AccessPath{
		name:     "amount_language",
		presence: AmountBit | LanguageBit,
		run: func(ctx context.Context, s ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
			return s.FindByAmountAndLanguage(ctx, *c.Amount, language(c))
		},
	}
	PathAmountPaymentType = &AccessPath{
		name:     "amount_payment_type",
		presence: AmountBit | PaymentTypeBit,
		run: func(ctx context.Context, s ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
			return s.FindByAmountAndPaymentType(ctx, *c.Amount, paymentType(c))
		},
	}
	PathPaymentTypeLanguage = &AccessPath{
		name:     "payment_type_language",
		presence: LanguageBit | PaymentTypeBit,
		run: func(ctx context.Context, s ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
			return s.FindByPaymentTypeAndLanguage(ctx, paymentType(c), language(c))
		},
	}
	PathAmountPaymentTypeLanguage = &AccessPath{
		name:     "amount_payment_type_language",
		presence: AmountBit | LanguageBit | PaymentTypeBit,
		run: func(ctx context.Context, s ports.CatalogReader, c models.Criteria) ([]models.PspRecord, error) {
			return s.FindByAmountPaymentTypeAndLanguage(ctx, *c.Amount, paymentType(c), language(c))
		},
	}
)

// Paths lists every access path, one per presence vector.
func Paths() []*AccessPath {
	return []*AccessPath{
		PathAll,
		PathAmount,
		PathLanguage,
		PathPaymentType,
		PathAmountLanguage,
		PathAmountPaymentType,
		PathPaymentTypeLanguage,
		PathAmountPaymentTypeLanguage,
	}
}

// Select picks the access path for c. The switch partitions the presence
// space exhaustively, so exactly one case applies to any input.
func Select(c models.Criteria) (*AccessPath, error) {
	switch PresenceOf(c) {
	case 0:
		return PathAll, nil
	case AmountBit:
		return PathAmount, nil
	case LanguageBit:
		return PathLanguage, nil
	case PaymentTypeBit:
		return PathPaymentType, nil
	case AmountBit | LanguageBit:
		return PathAmountLanguage, nil
	case AmountBit | PaymentTypeBit:
		return PathAmountPaymentType, nil
	case LanguageBit | PaymentTypeBit:
		return PathPaymentTypeLanguage, nil
	case AmountBit | LanguageBit | PaymentTypeBit:
		return PathAmountPaymentTypeLanguage, nil
	default:
		return nil, ErrNoRuleMatched
	}
}
