package payement

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"

	"lumina_back_end/internal/models"
)

// --- Fakes ---

type fakeCouponStore struct {
	coupons map[string]*models.Coupon // un coupon par utilisateur
	deletes int
	err     error
}

func newFakeCouponStore(coupons ...*models.Coupon) *fakeCouponStore {
	s := &fakeCouponStore{coupons: make(map[string]*models.Coupon)}
	for _, c := range coupons {
		s.coupons[c.UserID] = c
	}
	return s
}

func (s *fakeCouponStore) ActiveByUserAndCode(_ context.Context, userID, code string) (*models.Coupon, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := s.coupons[userID]
	if c == nil || !c.IsActive || c.Code != code {
		return nil, nil
	}
	return c, nil
}

func (s *fakeCouponStore) ByUser(_ context.Context, userID string) (*models.Coupon, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := s.coupons[userID]
	if c == nil || !c.IsActive {
		return nil, nil
	}
	return c, nil
}

func (s *fakeCouponStore) Deactivate(_ context.Context, userID, code string) error {
	if s.err != nil {
		return s.err
	}
	if c := s.coupons[userID]; c != nil && c.Code == code {
		c.IsActive = false
	}
	return nil
}

func (s *fakeCouponStore) DeleteByUser(_ context.Context, userID string) error {
	if s.err != nil {
		return s.err
	}
	s.deletes++
	delete(s.coupons, userID)
	return nil
}

func (s *fakeCouponStore) Insert(_ context.Context, coupon *models.Coupon) error {
	if s.err != nil {
		return s.err
	}
	s.coupons[coupon.UserID] = coupon
	return nil
}

type fakeOrderStore struct {
	orders    []*models.Order
	insertErr error
}

func (s *fakeOrderStore) Insert(_ context.Context, order *models.Order) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeOrderStore) BySession(_ context.Context, sessionID string) (*models.Order, error) {
	for _, o := range s.orders {
		if o.StripeSessionID == sessionID {
			return o, nil
		}
	}
	return nil, nil
}

type fakeStripe struct {
	sessionParams *stripe.CheckoutSessionParams
	couponParams  *stripe.CouponParams
	session       *stripe.CheckoutSession // réponse de GetCheckoutSession
	createErr     error
	getErr        error
}

func (f *fakeStripe) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.sessionParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &stripe.CheckoutSession{ID: "cs_test_123"}, nil
}

func (f *fakeStripe) GetCheckoutSession(string) (*stripe.CheckoutSession, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.session, nil
}

func (f *fakeStripe) NewCoupon(params *stripe.CouponParams) (*stripe.Coupon, error) {
	f.couponParams = params
	return &stripe.Coupon{ID: "co_test_456"}, nil
}

type fakeCache struct {
	data   map[string]string
	dels   []string
	delErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	if v, ok := f.data[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	for _, k := range keys {
		f.dels = append(f.dels, k)
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

// --- Helpers ---

const testUserID = "user-42"

func newTestHandler(coupons *fakeCouponStore, orders *fakeOrderStore, api *fakeStripe) *Handler {
	return &Handler{Coupons: coupons, Orders: orders, Stripe: api}
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set("user_id", testUserID)
		c.Set("email", "client@test.fr")
	}
	r.POST("/api/checkout/create-session", auth, h.CreateCheckoutSession)
	r.POST("/api/checkout/success", auth, h.CheckoutSuccess)
	r.GET("/api/coupons", auth, h.GetMyCoupon)
	r.POST("/api/coupons/validate", auth, h.ValidateCoupon)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func setCheckoutEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_xxx")
	t.Setenv("CLIENT_URL", "http://localhost:3000")
}
