package request

import (
	"resort-booking/internal/domain/catalog"
	"resort-booking/internal/usecase/commands"
)

type ValidateCouponRequest struct {
	Code        string `json:"code" binding:"required"`
	ServiceType string `json:"service_type" binding:"required"`
	OrderPaise  int64  `json:"order_paise" binding:"min=0"`
}

func (r ValidateCouponRequest) ToParams() commands.ValidateCouponParams {
	return commands.ValidateCouponParams{
		Code:        r.Code,
		ServiceType: catalog.ServiceType(r.ServiceType),
		OrderPaise:  r.OrderPaise,
	}
}
