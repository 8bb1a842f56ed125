package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babyshop/storefront/internal/cart"
	"github.com/babyshop/storefront/internal/order"
)

const validCheckoutBody = `{
	"fullName": "Jane Doe",
	"email": "jane@example.com",
	"address": "1 Main Street",
	"city": "Springfield",
	"postalCode": "12345"
}`

func checkoutFixture(t *testing.T, repo *fakeOrderRepo, pub *fakePublisher) (*CheckoutHandler, *cart.SessionManager, func(sid string)) {
	t.Helper()
	sessions := sessionsWithTTL()
	svc := order.NewService(repo)
	kh := NewCheckoutHandler(sessions, svc, pub, testLogger())
	ch := NewCartHandler(sessions, testCatalog())

	fill := func(sid string) {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/items",
			strings.NewReader(`{"productId":1,"quantity":2}`))
		req = withTestSession(req, sid)
		rr := httptest.NewRecorder()
		ch.AddItem(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		req = httptest.NewRequest(http.MethodPost, "/api/cart/items",
			strings.NewReader(`{"productId":2,"quantity":1}`))
		req = withTestSession(req, sid)
		rr = httptest.NewRecorder()
		ch.AddItem(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	return kh, sessions, fill
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{}
	kh, sessions, fill := checkoutFixture(t, repo, pub)
	fill("sess-1")

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(validCheckoutBody))
	req = withTestSession(req, "sess-1")
	rr := httptest.NewRecorder()

	kh.PlaceOrder(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp order.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Jane Doe", resp.FullName)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "ProductA", resp.Lines[0].ProductName)
	assert.Equal(t, 2, resp.Lines[0].Quantity)
	assert.Equal(t, "24.48", resp.Total.StringFixed(2))

	require.Len(t, repo.created, 1)
	require.Len(t, pub.published, 1, "OrderPlaced published after commit")
	assert.Equal(t, 0, sessions.GetOrCreate("sess-1").ItemCount(), "cart cleared after successful checkout")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{}
	kh, _, _ := checkoutFixture(t, repo, pub)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(validCheckoutBody))
	req = withTestSession(req, "sess-1")
	rr := httptest.NewRecorder()

	kh.PlaceOrder(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	assert.Empty(t, repo.created, "no persistence on empty cart")
	assert.Empty(t, pub.published)
}

func TestPlaceOrder_ValidationErrors(t *testing.T) {
	repo := &fakeOrderRepo{}
	kh, sessions, fill := checkoutFixture(t, repo, &fakePublisher{})
	fill("sess-1")

	cases := map[string]string{
		"blank name":    `{"fullName":"  ","email":"a@b.c","address":"x","city":"y","postalCode":"1"}`,
		"missing email": `{"fullName":"Jane","address":"x","city":"y","postalCode":"1"}`,
		"bad email":     `{"fullName":"Jane","email":"not-an-email","address":"x","city":"y","postalCode":"1"}`,
		"long name":     `{"fullName":"` + strings.Repeat("a", 201) + `","email":"a@b.c","address":"x","city":"y","postalCode":"1"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
			req = withTestSession(req, "sess-1")
			rr := httptest.NewRecorder()

			kh.PlaceOrder(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Empty(t, repo.created)
			assert.Equal(t, 3, sessions.GetOrCreate("sess-1").ItemCount(), "cart untouched on validation failure")
		})
	}
}

func TestPlaceOrder_PersistenceFailureLeavesCartIntact(t *testing.T) {
	repo := &fakeOrderRepo{
		createFunc: func(ctx context.Context, o *order.Order) error {
			return errors.New("connection refused")
		},
	}
	pub := &fakePublisher{}
	kh, sessions, fill := checkoutFixture(t, repo, pub)
	fill("sess-1")

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(validCheckoutBody))
	req = withTestSession(req, "sess-1")
	rr := httptest.NewRecorder()

	kh.PlaceOrder(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, 3, sessions.GetOrCreate("sess-1").ItemCount(), "failed checkout must not lose the selection")
	assert.Empty(t, pub.published)
}

func TestPlaceOrder_PublishFailureDoesNotFailCheckout(t *testing.T) {
	repo := &fakeOrderRepo{}
	pub := &fakePublisher{publishErr: errors.New("broker down")}
	kh, sessions, fill := checkoutFixture(t, repo, pub)
	fill("sess-1")

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(validCheckoutBody))
	req = withTestSession(req, "sess-1")
	rr := httptest.NewRecorder()

	kh.PlaceOrder(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, 0, sessions.GetOrCreate("sess-1").ItemCount())
}

func TestPlaceOrder_InvalidJSON(t *testing.T) {
	kh, _, _ := checkoutFixture(t, &fakeOrderRepo{}, &fakePublisher{})

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{`))
	req = withTestSession(req, "sess-1")
	rr := httptest.NewRecorder()

	kh.PlaceOrder(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}
