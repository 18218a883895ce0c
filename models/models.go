package models

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"
	"time"
)

// Money tolerates the backend emitting prices either as JSON numbers or
// as quoted decimal strings (both occur across endpoints).
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid money value %q: %w", s, err)
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Money(f)
	return nil
}

func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// Session is the client-held record of authentication state and role
// flags. Its presence alone decides whether authenticated endpoints may
// be called; no token validation happens on this side.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	IsSeller     bool   `json:"is_seller"`
	IsBuyer      bool   `json:"is_buyer"`
}

// User mirrors GET /api/user/.
type User struct {
	Username string `json:"username"`
	IsSeller bool   `json:"is_seller"`
	IsBuyer  bool   `json:"is_buyer"`
}

// Product is an ephemeral copy of a server-owned record, refreshed by
// re-fetching after every mutation.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
	SellerID    int64  `json:"seller_id,omitempty"`
}

// OrderProduct is the nested product reference inside an order.
type OrderProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderBuyer is the nested buyer reference on seller-side orders.
type OrderBuyer struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Order is read-only from this side of the API.
type Order struct {
	ID         int64        `json:"id"`
	Product    OrderProduct `json:"product"`
	Buyer      *OrderBuyer  `json:"buyer,omitempty"`
	Quantity   int          `json:"quantity"`
	Address    string       `json:"address"`
	TotalPrice Money        `json:"total_price"`
	CreatedAt  time.Time    `json:"created_at"`
}

// RegisterForm carries the registration fields forwarded to the backend.
type RegisterForm struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsSeller bool   `json:"is_seller"`
	IsBuyer  bool   `json:"is_buyer"`
}

// ProductForm carries the seller product form. EditID is the hidden
// edit-mode field: empty means add, non-empty selects the edit flow.
// Field values stay as submitted strings; the backend owns validation.
type ProductForm struct {
	EditID      string
	Name        string
	Description string
	Price       string
	Stock       string
	Image       *multipart.FileHeader
}

// Editing reports whether the form is in edit mode. Value receiver so
// templates can call it on the form value directly.
func (f ProductForm) Editing() bool { return f.EditID != "" }
