package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"storefront-ui/models"
)

// OrderRequest is the checkout payload. ProductID stays the string it
// arrived as in the query parameters; the backend accepts it either way.
type OrderRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Address   string `json:"address"`
}

// PlaceOrder submits a checkout.
func (s *ShopClient) PlaceOrder(ctx context.Context, token string, req OrderRequest) error {
	resp, err := s.doJSON(ctx, http.MethodPost, "/api/order/", token, req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// BuyerOrders fetches the buyer's order history, served as a bare array.
// Normalization still runs in case the backend moves to a wrapper.
func (s *ShopClient) BuyerOrders(ctx context.Context, token string) ([]models.Order, error) {
	body, err := s.getBytes(ctx, "/api/orders/", token)
	if err != nil {
		return nil, err
	}
	return normalizeOrders(body)
}

// SellerOrders fetches orders placed against the seller's products.
// This endpoint has served both a bare array and {"orders": [...]}.
func (s *ShopClient) SellerOrders(ctx context.Context, token string) ([]models.Order, error) {
	body, err := s.getBytes(ctx, "/api/seller/orders/", token)
	if err != nil {
		return nil, err
	}
	return normalizeOrders(body)
}

func normalizeOrders(data []byte) ([]models.Order, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var orders []models.Order
		if err := json.Unmarshal(trimmed, &orders); err != nil {
			return nil, err
		}
		return orders, nil
	}

	var wrapped struct {
		Orders []models.Order `json:"orders"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Orders, nil
}
