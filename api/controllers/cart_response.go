package controllers

import (
	cartsvc "github.com/angelmondragon/kitcart/internal/cart"
)

type cartResponse struct {
	Outcome string              `json:"outcome"`
	Notice  *noticeResponse     `json:"notice,omitempty"`
	Removed []string            `json:"removed,omitempty"`
	Cart    cartSummaryResponse `json:"cart"`
}

type noticeResponse struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type cartSummaryResponse struct {
	Items      []lineItemResponse `json:"items"`
	ItemCount  int                `json:"item_count"`
	TotalPrice string             `json:"total_price"`
}

type lineItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

func newCartResponse(result cartsvc.Result) cartResponse {
	resp := cartResponse{
		Outcome: result.Outcome.String(),
		Removed: result.Removed,
		Cart: cartSummaryResponse{
			Items:      make([]lineItemResponse, 0, len(result.Summary.Items)),
			ItemCount:  result.Summary.ItemCount,
			TotalPrice: result.Summary.TotalPrice.StringFixed(2),
		},
	}
	if result.Notice != nil {
		resp.Notice = &noticeResponse{
			Message:  result.Notice.Message,
			Severity: result.Notice.Severity.String(),
		}
	}
	for _, item := range result.Summary.Items {
		resp.Cart.Items = append(resp.Cart.Items, lineItemResponse{
			ID:       string(item.ID),
			Name:     item.Name,
			Price:    item.Price.StringFixed(2),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}
	return resp
}
