package models

// UpstreamService is one row of the upstream services feed.
type UpstreamService struct {
	PspCode            string  `json:"psp_code"`
	BrokerPspCode      string  `json:"broker_psp_code"`
	PspBusinessName    string  `json:"psp_business_name"`
	ServiceDescription string  `json:"service_description"`
	PaymentTypeCode    string  `json:"payment_type_code"`
	ChannelCode        string  `json:"channel_code"`
	LanguageCode       string  `json:"language_code"`
	MinimumAmount      float64 `json:"minimum_amount"`
	MaximumAmount      float64 `json:"maximum_amount"`
	FixedCost          float64 `json:"fixed_cost"`
}

// Page is one page of the upstream feed. TotalPages is nil when the upstream
// omitted it, which callers treat as a malformed page.
type Page struct {
	Services   []UpstreamService
	PageIndex  int
	TotalPages *int
}
