package controllers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"storefront-ui/clients"
	"storefront-ui/controllers"
	"storefront-ui/logger"
	"storefront-ui/middleware"
	"storefront-ui/models"
	"storefront-ui/routes"
	"storefront-ui/session"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")
}

const jwtSecret = "storefront-test-secret"

// fakeShop is an in-process stand-in for the shop backend. It issues
// and verifies real HS256 bearer tokens and records every call so
// tests can assert which upstream requests a page triggered.
type fakeShop struct {
	t *testing.T

	mu    sync.Mutex
	calls map[string]int

	loginUser    models.User // user returned on successful login
	products     []models.Product
	buyerOrders  []models.Order
	sellerOrders []models.Order

	failProducts bool
	failOrder    string // non-empty: reject POST /api/order/ with this message
	failRegister string
	failSave     string

	lastRegister  map[string]interface{}
	lastOrderBody map[string]interface{}
	lastSave      struct {
		Method string
		Values url.Values
	}
	lastDeleteBody map[string]interface{}
}

func newFakeShop(t *testing.T) *fakeShop {
	return &fakeShop{
		t:     t,
		calls: map[string]int{},
		loginUser: models.User{
			Username: "alice",
			IsBuyer:  true,
		},
	}
}

func (f *fakeShop) Calls(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

// MintToken issues a bearer token the fake backend will accept.
func (f *fakeShop) MintToken(user models.User) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username":  user.Username,
		"is_seller": user.IsSeller,
		"is_buyer":  user.IsBuyer,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(f.t, err)
	return signed
}

func (f *fakeShop) authenticate(r *http.Request) (*models.User, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	username, _ := claims["username"].(string)
	isSeller, _ := claims["is_seller"].(bool)
	isBuyer, _ := claims["is_buyer"].(bool)
	return &models.User{Username: username, IsSeller: isSeller, IsBuyer: isBuyer}, true
}

func (f *fakeShop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.Method+" "+r.URL.Path]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch r.Method + " " + r.URL.Path {
	case "POST /api/login/":
		f.handleLogin(w, r)
	case "POST /api/register/":
		if f.failRegister != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": f.failRegister})
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		_ = json.Unmarshal(body, &f.lastRegister)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
	case "GET /api/user/":
		user, ok := f.authenticate(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, user)
	case "GET /api/products/":
		if f.failProducts {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"products": f.products})
	case "GET /api/seller/products/":
		if _, ok := f.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"products": f.products})
	case "GET /api/orders/":
		if _, ok := f.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, f.buyerOrders)
	case "GET /api/seller/orders/":
		if _, ok := f.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"orders": f.sellerOrders})
	case "POST /api/order/":
		if _, ok := f.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		if f.failOrder != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": f.failOrder})
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		_ = json.Unmarshal(body, &f.lastOrderBody)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]interface{}{"order": map[string]int{"id": 1}})
	case "POST /api/seller/add/", "PUT /api/seller/edit/":
		if _, ok := f.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		f.recordSave(w, r)
	case "DELETE /api/seller/delete/":
		if _, ok := f.authenticate(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			return
		}
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		_ = json.Unmarshal(body, &f.lastDeleteBody)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such endpoint"})
	}
}

func (f *fakeShop) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&creds)

	if creds.Password != "good" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
		return
	}

	user := f.loginUser
	user.Username = creds.Username
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Login successful",
		"username":      user.Username,
		"is_seller":     user.IsSeller,
		"is_buyer":      user.IsBuyer,
		"access_token":  f.MintToken(user),
		"refresh_token": "refresh-" + user.Username,
	})
}

func (f *fakeShop) recordSave(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(32 << 20)
	require.NoError(f.t, err)

	f.mu.Lock()
	f.lastSave.Method = r.Method
	f.lastSave.Values = url.Values(r.MultipartForm.Value)
	f.mu.Unlock()

	if f.failSave != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": f.failSave})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product saved"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// env wires a real router, session store and fake backend together.
type env struct {
	t      *testing.T
	shop   *fakeShop
	store  *session.Store
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })
	store := session.NewStore(redisClient, time.Hour)

	fake := newFakeShop(t)
	backend := httptest.NewServer(fake)
	t.Cleanup(backend.Close)

	shopClient := clients.NewShopClient(backend.URL, 5*time.Second)
	ctrl := controllers.NewStorefrontController(shopClient, store, time.Hour)

	r := gin.New()
	r.Use(middleware.LoadSession(store))
	r.LoadHTMLGlob("../templates/*")
	routes.RegisterRoutes(r, ctrl)

	return &env{t: t, shop: fake, store: store, router: r}
}

// signIn stores a session directly and returns its cookie.
func (e *env) signIn(sess *models.Session) *http.Cookie {
	e.t.Helper()

	id := session.NewID()
	require.NoError(e.t, e.store.Save(context.Background(), id, sess))
	return &http.Cookie{Name: session.CookieName, Value: id}
}

func (e *env) signInAs(user models.User) *http.Cookie {
	return e.signIn(&models.Session{
		AccessToken:  e.shop.MintToken(user),
		RefreshToken: "refresh",
		Username:     user.Username,
		IsSeller:     user.IsSeller,
		IsBuyer:      user.IsBuyer,
	})
}

func (e *env) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) postForm(path string, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// postMultipart mirrors how the browser submits the product form.
func (e *env) postMultipart(path string, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	for name, vals := range values {
		for _, v := range vals {
			require.NoError(e.t, w.WriteField(name, v))
		}
	}
	require.NoError(e.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
