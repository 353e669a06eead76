package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:         baseURL,
		EntityID:        "entity-123",
		BearerToken:     "token-abc",
		Currency:        "EUR",
		TestMode:        "EXTERNAL",
		SuccessPrefixes: []string{"000."},
	}
}

func TestSuccessful(t *testing.T) {
	client := NewClient(testConfig("http://unused"))

	assert.True(t, client.Successful("000.100.110"))
	assert.True(t, client.Successful("000.000.000"))
	assert.False(t, client.Successful("800.100.153"))
	assert.False(t, client.Successful("100.396.101"))
	assert.False(t, client.Successful(""))
}

func TestSuccessfulConfigurablePrefixes(t *testing.T) {
	cfg := testConfig("http://unused")
	cfg.SuccessPrefixes = []string{"000.000.", "000.100.1"}
	client := NewClient(cfg)

	assert.True(t, client.Successful("000.100.110"))
	assert.False(t, client.Successful("000.200.000"))
}

func TestCharge(t *testing.T) {
	var gotAuth, gotContentType string
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payments", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pay-1","result":{"code":"000.100.110","description":"Request successfully processed"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	resp, err := client.Charge(context.Background(), CardFields{
		Amount:      "10.00",
		Brand:       "VISA",
		Number:      "4200000000000000",
		Holder:      "Jane Doe",
		ExpiryMonth: "05",
		ExpiryYear:  "2034",
		CVV:         "123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "entity-123", gotForm["entityId"])
	assert.Equal(t, "10.00", gotForm["amount"])
	assert.Equal(t, "EUR", gotForm["currency"])
	assert.Equal(t, "VISA", gotForm["paymentBrand"])
	assert.Equal(t, "DB", gotForm["paymentType"])
	assert.Equal(t, "4200000000000000", gotForm["card.number"])

	assert.Equal(t, "pay-1", resp.ID)
	assert.Equal(t, "000.100.110", resp.Result.Code)
	assert.NotEmpty(t, resp.Raw)
}

func TestInitiate3DS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/threeDSecure", r.URL.Path)
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "https://shop.example.com/api/v1/checkout/callback", r.PostForm.Get("shopperResultUrl"))
		assert.Equal(t, "EC", r.PostForm.Get("transactionCategory"))
		assert.Equal(t, "EXTERNAL", r.PostForm.Get("testMode"))
		assert.NotEmpty(t, r.PostForm.Get("merchantTransactionId"))
		assert.NotEmpty(t, r.PostForm.Get("customer.browser.userAgent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pay-3ds","result":{"code":"000.200.000","description":"transaction pending"},"redirect":{"url":"https://bank.example.com/challenge"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	resp, err := client.Initiate3DS(context.Background(), CardFields{
		Amount: "25.00",
		Brand:  "VISA",
	}, "https://shop.example.com/api/v1/checkout/callback")
	require.NoError(t, err)

	assert.Equal(t, "pay-3ds", resp.ID)
	require.NotNil(t, resp.Redirect)
	assert.Equal(t, "https://bank.example.com/challenge", resp.Redirect.URL)
}

func TestVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payments/pay-9", r.URL.Path)
		assert.Equal(t, "entity-123", r.URL.Query().Get("entityId"))
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pay-9","result":{"code":"000.100.110","description":"ok"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	resp, err := client.Verify(context.Background(), "pay-9")
	require.NoError(t, err)
	assert.Equal(t, "pay-9", resp.ID)
	assert.True(t, client.Successful(resp.Result.Code))
}

// The gateway answers 4xx with a result payload; the client must decode it
// instead of failing.
func TestErrorStatusStillDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"result":{"code":"800.100.153","description":"transaction declined (invalid CVV)"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	resp, err := client.Charge(context.Background(), CardFields{Amount: "10.00"})
	require.NoError(t, err)
	assert.Equal(t, "800.100.153", resp.Result.Code)
	assert.False(t, client.Successful(resp.Result.Code))
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(testConfig(server.URL))

	_, err := client.Charge(context.Background(), CardFields{Amount: "10.00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway unreachable")
}
