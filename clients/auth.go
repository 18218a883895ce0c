package clients

import (
	"context"
	"net/http"

	"storefront-ui/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. The returned tokens are
// opaque; nothing here inspects or validates them.
func (s *ShopClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	resp, err := s.doJSON(ctx, http.MethodPost, "/api/login/", "", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := decodeJSON(resp, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register creates a new account. The backend answers 2xx with no body
// the caller needs, or an error payload.
func (s *ShopClient) Register(ctx context.Context, form models.RegisterForm) error {
	resp, err := s.doJSON(ctx, http.MethodPost, "/api/register/", "", form)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// CurrentUser fetches the logged-in user's name and role flags.
func (s *ShopClient) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	resp, err := s.do(ctx, http.MethodGet, "/api/user/", token, "", nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
