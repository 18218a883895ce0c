package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ShopClient owns every call to the shop backend REST API. All requests
// go to a single configured base URL; callers pass the bearer token
// explicitly where an endpoint requires auth.
type ShopClient struct {
	baseURL string
	client  *http.Client
}

func NewShopClient(baseURL string, timeout time.Duration) *ShopClient {
	return &ShopClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx backend response with its parsed message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop api: status=%d message=%s", e.StatusCode, e.Message)
}

// do issues one request. No retries, no caching: every failure is
// terminal for the action that triggered it.
func (s *ShopClient) do(ctx context.Context, method, path, token, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.client.Do(req)
}

func (s *ShopClient) doJSON(ctx context.Context, method, path, token string, payload interface{}) (*http.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return s.do(ctx, method, path, token, "application/json", bytes.NewReader(b))
}

// decodeJSON decodes a 2xx body into out; non-2xx responses become an
// *APIError carrying whatever message the backend managed to send.
func decodeJSON(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return parseError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// parseError reads an error body defensively: the backend answers with
// {"message": ...} on some endpoints and {"error": ...} on others, and
// sometimes with neither.
func parseError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: "request failed"}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if payload.Message != "" {
		apiErr.Message = payload.Message
	} else if payload.Error != "" {
		apiErr.Message = payload.Error
	}
	return apiErr
}
