package catalogue

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdsetool/cdsego/internal/odata"
)

// testClient builds a client against the mock without the retrying transport,
// so page-level retry behavior is observable.
func testClient(t *testing.T, mock *MockServer) *Client {
	t.Helper()
	return New(mock.URL, Options{
		HTTPClient:        &http.Client{Timeout: 5 * time.Second},
		PageRetryWait:     time.Millisecond,
		PageRetryAttempts: 5,
	})
}

func TestQueryCount(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{ExpandAttributes: true})
	require.NoError(t, err)

	total, err := query.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 47, total)

	products, err := query.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 47)
}

func TestQueryZeroTop(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 0}, QueryOptions{})
	require.NoError(t, err)

	products, err := query.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products, "a zero page size yields no products")

	total, err := query.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 47, total, "the count still reflects the full result set")

	// $top=0 is sent as-is and the empty page must not paginate.
	require.Len(t, mock.Requests(), 1)
	assert.Contains(t, mock.Requests()[0], "$top=0")
}

func TestQueryReusable(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{ExpandAttributes: true})
	require.NoError(t, err)

	first, err := query.All(context.Background())
	require.NoError(t, err)
	second, err := query.All(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated iteration differs (-first +second):\n%s", diff)
	}

	// 47 products at page size 10 means exactly 5 requests; the second
	// iteration must be served from cache.
	assert.Len(t, mock.Requests(), 5)
}

func TestQueryRandomAccess(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{ExpandAttributes: true})
	require.NoError(t, err)

	ctx := context.Background()

	p, err := query.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, MockProductName(0), p.Name)
	assert.Equal(t, 10, query.Fetched())

	p, err = query.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, MockProductName(9), p.Name)
	assert.Equal(t, 10, query.Fetched(), "index 9 is on the first page")

	p, err = query.Get(ctx, 13)
	require.NoError(t, err)
	assert.Equal(t, MockProductName(13), p.Name)
	assert.Equal(t, 20, query.Fetched(), "index 13 needs the second page")

	p, err = query.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, MockProductName(2), p.Name)
	assert.Equal(t, 20, query.Fetched(), "going back must not refetch")

	p, err = query.Get(ctx, 34)
	require.NoError(t, err)
	assert.Equal(t, MockProductName(34), p.Name)
	assert.Equal(t, 40, query.Fetched())

	_, err = query.Get(ctx, 47)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = query.Get(ctx, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestQueryIter(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{})
	require.NoError(t, err)

	var names []string
	for p, err := range query.Iter(context.Background()) {
		require.NoError(t, err)
		names = append(names, p.Name)
	}
	require.Len(t, names, 47)
	assert.Equal(t, MockProductName(0), names[0])
	assert.Equal(t, MockProductName(46), names[46])
}

func TestQueryIterStopsEarly(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{})
	require.NoError(t, err)

	seen := 0
	for _, err := range query.Iter(context.Background()) {
		require.NoError(t, err)
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
	assert.Equal(t, 10, query.Fetched(), "breaking early must not fetch further pages")
}

func TestQueryTagsProductsWithCollection(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{})
	require.NoError(t, err)

	p, err := query.Get(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "SENTINEL-1", p.Collection)
}

func TestQueryCountOnlyOnFirstPage(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{})
	require.NoError(t, err)

	_, err = query.All(context.Background())
	require.NoError(t, err)

	requests := mock.Requests()
	require.Len(t, requests, 5)
	assert.Contains(t, requests[0], "count=true")
	for _, u := range requests[1:] {
		assert.NotContains(t, u, "count=true")
	}
}

func TestQuerySkipOffset(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10, "skip": 10}, QueryOptions{})
	require.NoError(t, err)

	p, err := query.Get(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, MockProductName(10), p.Name)

	products, err := query.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 37)
}

func TestQueryRetriesTransientFailures(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	mock.FailNext(2)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{})
	require.NoError(t, err)

	total, err := query.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 47, total)
}

func TestQueryGivesUpAfterRetryBudget(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()

	client := New(mock.URL, Options{
		HTTPClient:        &http.Client{Timeout: 5 * time.Second},
		PageRetryWait:     time.Millisecond,
		PageRetryAttempts: 2,
	})
	mock.FailNext(100)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{})
	require.NoError(t, err)

	_, err = query.Count(context.Background())
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestQueryCancelledContext(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = query.Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueryMissingCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer server.Close()

	client := New(server.URL, Options{HTTPClient: server.Client(), PageRetryWait: time.Millisecond})

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{}, QueryOptions{})
	require.NoError(t, err)

	_, err = query.Count(context.Background())
	assert.ErrorIs(t, err, ErrCountMissing)
}

func TestQueryRejectsInvalidTerms(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	_, err := client.Query("SENTINEL-1", odata.SearchTerms{"maxRecords": 100}, QueryOptions{})
	require.Error(t, err)

	_, err = client.Query("SENTINEL-1", odata.SearchTerms{"top": "ten"}, QueryOptions{})
	require.Error(t, err)

	_, err = client.Query("SENTINEL-1", odata.SearchTerms{"top": 3.5}, QueryOptions{})
	require.Error(t, err)
}

func TestQueryExpandAttributes(t *testing.T) {
	mock := NewMockServer()
	defer mock.Close()
	client := testClient(t, mock)

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{"top": 10}, QueryOptions{ExpandAttributes: true})
	require.NoError(t, err)

	p, err := query.Get(context.Background(), 0)
	require.NoError(t, err)

	v, ok := p.Attribute("productType")
	require.True(t, ok)
	assert.Equal(t, "AUX_PP2", v)
	assert.Equal(t, "AUX_PP2", p.StringAttribute("productType", ""))
	assert.Equal(t, "fallback", p.StringAttribute("noSuchAttr", "fallback"))

	requests := mock.Requests()
	require.NotEmpty(t, requests)
	assert.True(t, strings.Contains(requests[0], "$expand=Attributes") || strings.Contains(requests[0], "%24expand=Attributes"))
}

func TestQueryNotFoundIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL, Options{
		HTTPClient:        server.Client(),
		PageRetryWait:     time.Millisecond,
		PageRetryAttempts: 2,
	})

	query, err := client.Query("SENTINEL-1", odata.SearchTerms{}, QueryOptions{})
	require.NoError(t, err)

	_, err = query.Count(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.ErrorIs(t, err, ErrNotFound)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
}
