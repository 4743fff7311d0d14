package service

import "pspcatalog/internal/psp/models"

// Psp is the public JSON shape of a catalog record.
type Psp struct {
	Code            string `json:"code"`
	PaymentTypeCode string `json:"paymentTypeCode"`
	ChannelCode     string `json:"channelCode"`
	Description     string `json:"description"`
	BusinessName    string `json:"businessName"`
	Status          string `json:"status"`
	BrokerName      string `json:"brokerName"`
	Language        string `json:"language"`
	MinAmount       int64  `json:"minAmount"`
	MaxAmount       int64  `json:"maxAmount"`
	FixedCost       int64  `json:"fixedCost"`
}

// PspsResponse wraps a lookup result.
type PspsResponse struct {
	Psp []Psp `json:"psp"`
}

// ToResponse maps records to the response body. An empty result encodes as
// an empty list, not null.
func ToResponse(records []models.PspRecord) PspsResponse {
	out := PspsResponse{Psp: make([]Psp, 0, len(records))}
	for _, r := range records {
		out.Psp = append(out.Psp, Psp{
			Code:            r.Key.PspCode,
			PaymentTypeCode: r.Key.PaymentType,
			ChannelCode:     r.Key.Channel,
			Description:     r.Description,
			BusinessName:    r.Name,
			Status:          string(r.Status),
			BrokerName:      r.BrokerName,
			Language:        string(r.Key.Language),
			MinAmount:       r.MinAmount,
			MaxAmount:       r.MaxAmount,
			FixedCost:       r.FeeAmount,
		})
	}
	return out
}
