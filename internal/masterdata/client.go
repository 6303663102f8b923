package masterdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"quotedesk/internal/config"
	"quotedesk/internal/domain"
	"quotedesk/internal/port"
)

// Client is a port.MasterDataSource backed by the records API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ port.MasterDataSource = (*Client)(nil)

// NewClient creates a records API client.
func NewClient(cfg *config.RecordsAPIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetBranch fetches a branch.
func (c *Client) GetBranch(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Branch, error) {
	body, err := c.get(ctx, tenantID, "/branches/"+url.PathEscape(id), nil, domain.ErrBranchNotFound)
	if err != nil {
		return nil, err
	}
	payload, err := UnwrapEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("%w: branch %s: %v", domain.ErrMasterDataUnavailable, id, err)
	}
	b, err := NormalizeBranch(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: branch %s: %v", domain.ErrMasterDataUnavailable, id, err)
	}
	return b, nil
}

// GetCustomer fetches a customer. When the record does not embed its address
// book, the addresses are fetched separately.
func (c *Client) GetCustomer(ctx context.Context, tenantID uuid.UUID, id string) (*domain.Customer, error) {
	escaped := url.PathEscape(id)
	body, err := c.get(ctx, tenantID, "/customers/"+escaped, nil, domain.ErrCustomerNotFound)
	if err != nil {
		return nil, err
	}
	payload, err := UnwrapEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("%w: customer %s: %v", domain.ErrMasterDataUnavailable, id, err)
	}
	cust, err := NormalizeCustomer(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: customer %s: %v", domain.ErrMasterDataUnavailable, id, err)
	}
	if len(cust.Addresses) > 0 {
		return cust, nil
	}

	body, err = c.get(ctx, tenantID, "/customers/"+escaped+"/addresses", nil, domain.ErrAddressNotFound)
	if err != nil {
		if errorsIsNotFound(err) {
			return cust, nil
		}
		return nil, err
	}
	items, err := UnwrapList(body)
	if err != nil {
		return nil, fmt.Errorf("%w: addresses of %s: %v", domain.ErrMasterDataUnavailable, id, err)
	}
	cust.Addresses = NormalizeAddresses(items)
	return cust, nil
}

// GetCatalogItems fetches products and non-stock items in at most two requests.
func (c *Client) GetCatalogItems(ctx context.Context, tenantID uuid.UUID, refs []domain.ItemRef) ([]domain.CatalogItem, error) {
	var products, services []string
	seen := make(map[domain.ItemRef]bool, len(refs))
	for _, ref := range refs {
		key := domain.ItemRef{ProductID: ref.ProductID, IsService: ref.IsService}
		if ref.ProductID == "" || seen[key] {
			continue
		}
		seen[key] = true
		if ref.IsService {
			services = append(services, ref.ProductID)
		} else {
			products = append(products, ref.ProductID)
		}
	}

	var out []domain.CatalogItem
	for _, batch := range []struct {
		path      string
		ids       []string
		isService bool
	}{
		{"/products", products, false},
		{"/non-stock-items", services, true},
	} {
		if len(batch.ids) == 0 {
			continue
		}
		sort.Strings(batch.ids)
		q := url.Values{"ids": {strings.Join(batch.ids, ",")}}
		body, err := c.get(ctx, tenantID, batch.path, q, domain.ErrCatalogItemNotFound)
		if err != nil {
			if errorsIsNotFound(err) {
				continue
			}
			return nil, err
		}
		items, err := UnwrapList(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrMasterDataUnavailable, batch.path, err)
		}
		out = append(out, NormalizeCatalogItems(items, batch.isService)...)
	}
	return out, nil
}

// get performs an authenticated GET. A 404 maps to notFound; any other failure
// maps to domain.ErrMasterDataUnavailable.
func (c *Client) get(ctx context.Context, tenantID uuid.UUID, path string, query url.Values, notFound error) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID.String())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling %s: %v", domain.ErrMasterDataUnavailable, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrMasterDataUnavailable, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, notFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: records API error (status %d): %s",
			domain.ErrMasterDataUnavailable, resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrBranchNotFound) ||
		errors.Is(err, domain.ErrCustomerNotFound) ||
		errors.Is(err, domain.ErrAddressNotFound) ||
		errors.Is(err, domain.ErrCatalogItemNotFound)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
