package catalogsync

import (
	"math"
	"strings"
	"time"

	"pspcatalog/internal/psp/models"
	dErrors "pspcatalog/pkg/domain-errors"
)

// ToRecord converts one upstream service row into a catalog record.
// Upstream amounts are decimal currency units; records carry minor units.
// Rows from the feed are always stored as ENABLED.
func ToRecord(svc models.UpstreamService, updatedAt time.Time) (*models.PspRecord, error) {
	lang, err := models.ParseLanguage(svc.LanguageCode)
	if err != nil {
		return nil, err
	}
	minAmount, err := toMinorUnits("minimum_amount", svc.MinimumAmount)
	if err != nil {
		return nil, err
	}
	maxAmount, err := toMinorUnits("maximum_amount", svc.MaximumAmount)
	if err != nil {
		return nil, err
	}
	fee, err := toMinorUnits("fixed_cost", svc.FixedCost)
	if err != nil {
		return nil, err
	}

	key := models.Key{
		PspCode:     strings.TrimSpace(svc.PspCode),
		PaymentType: strings.ToUpper(strings.TrimSpace(svc.PaymentTypeCode)),
		Channel:     strings.TrimSpace(svc.ChannelCode),
		Language:    lang,
	}
	return models.NewRecord(key, models.StatusEnabled,
		strings.TrimSpace(svc.PspBusinessName),
		strings.TrimSpace(svc.BrokerPspCode),
		strings.TrimSpace(svc.ServiceDescription),
		minAmount, maxAmount, fee, updatedAt,
	)
}

func toMinorUnits(field string, v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, dErrors.New(dErrors.CodeValidation, field+" is not a number")
	}
	if v < 0 {
		return 0, dErrors.New(dErrors.CodeValidation, field+" must not be negative")
	}
	cents := math.Round(v * 100)
	if cents >= math.MaxInt64 {
		return 0, dErrors.New(dErrors.CodeValidation, field+" is out of range")
	}
	return int64(cents), nil
}
