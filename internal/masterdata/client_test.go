package masterdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotedesk/internal/config"
	"quotedesk/internal/domain"
	"quotedesk/internal/masterdata"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*masterdata.Client, uuid.UUID) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return masterdata.NewClient(&config.RecordsAPIConfig{BaseURL: srv.URL + "/", APIKey: "secret", TimeoutSecs: 5}), uuid.New()
}

func TestClient_GetBranch(t *testing.T) {
	var gotTenant, gotAuth string
	client, tenantID := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotTenant = r.Header.Get("X-Tenant-ID")
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/branches/b-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":"b-1","name":"Pune","state":"Maharashtra","gstNumber":"27XYZAB5678K1Z3"}}`))
	})

	b, err := client.GetBranch(context.Background(), tenantID, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "27XYZAB5678K1Z3", b.GSTNumber)
	assert.Equal(t, tenantID.String(), gotTenant)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestClient_GetBranch_NotFound(t *testing.T) {
	client, tenantID := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetBranch(context.Background(), tenantID, "b-x")
	assert.ErrorIs(t, err, domain.ErrBranchNotFound)
}

func TestClient_UpstreamError(t *testing.T) {
	client, tenantID := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	_, err := client.GetCustomer(context.Background(), tenantID, "c-1")
	assert.ErrorIs(t, err, domain.ErrMasterDataUnavailable)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_TransportError(t *testing.T) {
	client := masterdata.NewClient(&config.RecordsAPIConfig{BaseURL: "http://127.0.0.1:1"})

	_, err := client.GetBranch(context.Background(), uuid.New(), "b-1")
	assert.ErrorIs(t, err, domain.ErrMasterDataUnavailable)
}

func TestClient_GetCustomer_FetchesAddresses(t *testing.T) {
	client, tenantID := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/customers/c-1":
			_, _ = w.Write([]byte(`{"id":"c-1","name":"Acme","legal":{"gstin":"27AAAAA0000A1Z5"}}`))
		case "/customers/c-1/addresses":
			_, _ = w.Write([]byte(`{"data":[{"id":"a-1","title":"Permanent","state":"Maharashtra"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	c, err := client.GetCustomer(context.Background(), tenantID, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "27AAAAA0000A1Z5", c.LegalGSTIN)
	require.Len(t, c.Addresses, 1)
	assert.Equal(t, "a-1", c.Addresses[0].ID)
}

func TestClient_GetCustomer_NoAddressBook(t *testing.T) {
	client, tenantID := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/customers/c-1" {
			_, _ = w.Write([]byte(`{"id":"c-1","name":"Acme"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	c, err := client.GetCustomer(context.Background(), tenantID, "c-1")
	require.NoError(t, err)
	assert.Empty(t, c.Addresses)
}

func TestClient_GetCatalogItems(t *testing.T) {
	var productIDs, serviceIDs string
	client, tenantID := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products":
			productIDs = r.URL.Query().Get("ids")
			_, _ = w.Write([]byte(`[{"id":"p-1","sales_price":100,"Tax":{"Percentage":18}},{"id":"p-2","sales_price":50}]`))
		case "/non-stock-items":
			serviceIDs = r.URL.Query().Get("ids")
			_, _ = w.Write([]byte(`{"data":{"id":"s-1","price":500}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	items, err := client.GetCatalogItems(context.Background(), tenantID, []domain.ItemRef{
		{ProductID: "p-2"},
		{ProductID: "p-1"},
		{ProductID: "p-1", VariantID: "v-1"},
		{ProductID: "s-1", IsService: true},
		{ProductID: ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "p-1,p-2", productIDs)
	assert.Equal(t, "s-1", serviceIDs)
	require.Len(t, items, 3)
	assert.True(t, items[2].Ref.IsService)
}

func TestClient_GetCatalogItems_NoRefs(t *testing.T) {
	client, tenantID := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s", r.URL.Path)
	})

	items, err := client.GetCatalogItems(context.Background(), tenantID, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
