package sales

import (
	"time"

	"github.com/yufj-331/ordershare/internal/sales"
)

type saleResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(s *sales.Sale) saleResponse {
	return saleResponse{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		ProductName:  s.ProductName,
		Quantity:     s.Quantity,
		PricePerUnit: s.PricePerUnit.InexactFloat64(),
		TotalAmount:  s.TotalAmount.InexactFloat64(),
		CreatedAt:    s.CreatedAt,
	}
}

func toResponseList(list []*sales.Sale) []saleResponse {
	resp := make([]saleResponse, len(list))
	for i, s := range list {
		resp[i] = toResponse(s)
	}

	return resp
}
