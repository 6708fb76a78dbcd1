package get_quote

import (
	getQuote "github.com/m04kA/RMT-BookingService/internal/usecase/get_quote"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ItemID             int64  `json:"itemId"`
	StartDate          string `json:"startDate"` // включительно
	EndDate            string `json:"endDate"`   // не включительно
	TotalDays          int    `json:"totalDays"`
	PricePerDay        string `json:"pricePerDay"`
	PricePerDayCents   int64  `json:"pricePerDayCents"`
	TotalPrice         string `json:"totalPrice"`
	TotalPriceCents    int64  `json:"totalPriceCents"`
	DepositAmount      string `json:"depositAmount"`
	DepositAmountCents int64  `json:"depositAmountCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuote.Response) *QuoteResponse {
	return &QuoteResponse{
		ItemID:             resp.ItemID,
		StartDate:          resp.Range.Start.String(),
		EndDate:            resp.Range.End.String(),
		TotalDays:          resp.TotalDays,
		PricePerDay:        resp.PricePerDay.String(),
		PricePerDayCents:   resp.PricePerDay.Cents(),
		TotalPrice:         resp.TotalPrice.String(),
		TotalPriceCents:    resp.TotalPrice.Cents(),
		DepositAmount:      resp.DepositAmount.String(),
		DepositAmountCents: resp.DepositAmount.Cents(),
	}
}
