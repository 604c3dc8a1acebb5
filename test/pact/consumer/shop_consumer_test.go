//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/myjhye/shop/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID       int64    `json:"id"`
	SellerID int64    `json:"sellerId"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"`
	Stock    int      `json:"stock"`
	Category string   `json:"category"`
	Images   []string `json:"images"`
	Version  int      `json:"version"`
}

type orderLinePayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
	Subtotal  int64 `json:"subtotal"`
}

type orderPayload struct {
	ID      int64              `json:"id"`
	BuyerID int64              `json:"buyerId"`
	Lines   []orderLinePayload `json:"lines"`
	Total   int64              `json:"total"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status      int
	problemType string
	title       string
	detail      string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int { return e.status }

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	seed := pacttest.ExampleProductSeed()
	productBodyMatcher := matchers.Map{
		"id":       matchers.Like(pacttest.ExistingProductID),
		"sellerId": matchers.Like(pacttest.SellerID),
		"name":     matchers.Like(seed.Name),
		"price":    matchers.Like(seed.Price),
		"stock":    matchers.Like(seed.Stock),
		"category": matchers.Like(seed.Category),
		"images":   matchers.ArrayMinLike(seed.Images[0], 1),
		"version":  matchers.Like(0),
	}
	orderBodyMatcher := matchers.Map{
		"id":      matchers.Like(1),
		"buyerId": matchers.Like(1),
		"lines": matchers.EachLike(matchers.Map{
			"productId": matchers.Like(pacttest.ExistingProductID),
			"quantity":  matchers.Like(2),
			"unitPrice": matchers.Like(seed.Price),
			"subtotal":  matchers.Like(seed.Price * 2),
		}, 1),
		"total": matchers.Like(seed.Price * 2),
	}
	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	bearerToken := matchers.S("Bearer " + pacttest.SessionToken)

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request to fetch an existing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.ExistingProductID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.MissingProductID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateBuyerReady).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Authorization", bearerToken)
			b.JSONBody(matchers.Map{
				"items": matchers.EachLike(matchers.Map{
					"productId": matchers.Like(pacttest.ExistingProductID),
					"quantity":  matchers.Like(2),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateOutOfStock).
		UponReceiving("a request to place an order for a sold-out product").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Authorization", bearerToken)
			b.JSONBody(matchers.Map{
				"items": matchers.EachLike(matchers.Map{
					"productId": matchers.Like(pacttest.ExistingProductID),
					"quantity":  matchers.Like(2),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/insufficient-stock"),
				"title":  matchers.S("Insufficient Stock"),
				"status": matchers.Like(http.StatusBadRequest),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newShopClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		product, err := client.GetProduct(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product == nil || product.ID == 0 {
			return fmt.Errorf("expected product ID to be set")
		}

		if _, err := client.GetProduct(ctx, pacttest.MissingProductID); err == nil {
			return fmt.Errorf("expected 404 for product %d", pacttest.MissingProductID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		order, err := client.PlaceOrder(ctx, pacttest.ExistingProductID, 2)
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if order == nil || len(order.Lines) == 0 {
			return fmt.Errorf("expected order lines in response")
		}
		if order.Total != order.Lines[0].Subtotal {
			return fmt.Errorf("expected total %d to match line subtotal %d", order.Total, order.Lines[0].Subtotal)
		}

		if _, err := client.PlaceOrder(ctx, pacttest.ExistingProductID, 2); err == nil {
			return fmt.Errorf("expected insufficient stock rejection")
		} else if apiErr, ok := err.(apiError); ok && apiErr.problemType != "/problems/insufficient-stock" {
			return fmt.Errorf("expected insufficient-stock problem, got %q", apiErr.problemType)
		}

		return nil
	})
	require.NoError(t, err)
}

type shopClient struct {
	baseURL    string
	httpClient *http.Client
}

func newShopClient(config pactconsumer.MockServerConfig) *shopClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &shopClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *shopClient) GetProduct(ctx context.Context, id int64) (*productPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/products/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload productPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *shopClient) PlaceOrder(ctx context.Context, productID int64, quantity int) (*orderPayload, error) {
	body, err := json.Marshal(map[string]any{
		"items": []map[string]any{{"productId": productID, "quantity": quantity}},
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+pacttest.SessionToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload orderPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status:      status,
		problemType: problem.Type,
		title:       problem.Title,
		detail:      problem.Detail,
	}
}
