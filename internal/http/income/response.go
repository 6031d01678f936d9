package income

import (
	"time"

	"github.com/yufj-331/ordershare/internal/income"
)

type incomeResponse struct {
	ID           int64     `json:"id"`
	SalesOrderID string    `json:"sales_order_id"`
	BankOrBill   string    `json:"bankorbill"`
	Amount       float64   `json:"amount"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(in *income.Income) incomeResponse {
	return incomeResponse{
		ID:           in.ID,
		SalesOrderID: in.SalesOrderID,
		BankOrBill:   in.BankOrBill,
		Amount:       in.Amount.InexactFloat64(),
		Description:  in.Description,
		CreatedAt:    in.CreatedAt,
	}
}

func toResponseList(list []*income.Income) []incomeResponse {
	resp := make([]incomeResponse, len(list))
	for i, in := range list {
		resp[i] = toResponse(in)
	}

	return resp
}
