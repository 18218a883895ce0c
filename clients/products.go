package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"storefront-ui/models"
)

// Storefront fetches the public product catalog. This endpoint always
// wraps the list: {"products": [...]}.
func (s *ShopClient) Storefront(ctx context.Context) ([]models.Product, error) {
	resp, err := s.do(ctx, http.MethodGet, "/api/products/", "", "", nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Products []models.Product `json:"products"`
	}
	if err := decodeJSON(resp, &payload); err != nil {
		return nil, err
	}
	return payload.Products, nil
}

// SellerProducts fetches the authenticated seller's own products. The
// backend has answered both {"products": [...]} and a bare array over
// time, so the shape is normalized here and nowhere else.
func (s *ShopClient) SellerProducts(ctx context.Context, token string) ([]models.Product, error) {
	body, err := s.getBytes(ctx, "/api/seller/products/", token)
	if err != nil {
		return nil, err
	}
	return normalizeProducts(body)
}

// SaveProduct submits the seller product form as multipart form data.
// An edit ID flips the call from POST /api/seller/add/ to
// PUT /api/seller/edit/ with the product_id field appended. The image,
// when present, is streamed through untouched.
func (s *ShopClient) SaveProduct(ctx context.Context, token string, form models.ProductForm) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        form.Name,
		"description": form.Description,
		"price":       form.Price,
		"stock":       form.Stock,
	}
	if form.Editing() {
		fields["product_id"] = form.EditID
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}

	if form.Image != nil {
		file, err := form.Image.Open()
		if err != nil {
			return err
		}
		defer file.Close()

		part, err := w.CreateFormFile("image", form.Image.Filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	method, path := http.MethodPost, "/api/seller/add/"
	if form.Editing() {
		method, path = http.MethodPut, "/api/seller/edit/"
	}

	resp, err := s.do(ctx, method, path, token, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// DeleteProduct removes one product. The backend takes the ID in the
// DELETE body rather than the path.
func (s *ShopClient) DeleteProduct(ctx context.Context, token string, productID int64) error {
	payload := map[string]int64{"product_id": productID}
	resp, err := s.doJSON(ctx, http.MethodDelete, "/api/seller/delete/", token, payload)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// getBytes reads a full 2xx body so list shapes can be sniffed before
// decoding.
func (s *ShopClient) getBytes(ctx context.Context, path, token string) ([]byte, error) {
	resp, err := s.do(ctx, http.MethodGet, path, token, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, parseError(resp)
	}
	return io.ReadAll(resp.Body)
}

func normalizeProducts(data []byte) ([]models.Product, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var products []models.Product
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, err
		}
		return products, nil
	}

	var wrapped struct {
		Products []models.Product `json:"products"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Products, nil
}
