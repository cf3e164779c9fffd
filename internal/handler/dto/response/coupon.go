package response

import "resort-booking/internal/usecase/commands"

type CouponQuoteResponse struct {
	Code          string `json:"code"`
	Description   string `json:"description"`
	DiscountPaise int64  `json:"discount_paise"`
	TotalPaise    int64  `json:"total_paise"`
}

func FromCouponQuote(q *commands.CouponQuote) *CouponQuoteResponse {
	return &CouponQuoteResponse{
		Code:          q.Code,
		Description:   q.Description,
		DiscountPaise: q.DiscountPaise,
		TotalPaise:    q.TotalPaise,
	}
}
