package catalogue

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/cdsetool/cdsego/internal/log"
	"github.com/cdsetool/cdsego/internal/odata"
)

// QueryOptions tune one Products query.
type QueryOptions struct {
	// ExpandAttributes requests product metadata (productType, cloudCover,
	// ...) alongside each product.
	ExpandAttributes bool
}

// ProductQuery pages lazily through the products matching a query. Pages are
// cached, so iterating twice yields identical results without refetching.
// Safe for concurrent use.
type ProductQuery struct {
	client *Client
	query  odata.Query

	mu       sync.Mutex
	products []Product
	total    int // -1 until the first page reports @odata.count
	nextURL  string
}

// productsPage is one page of the Products endpoint.
type productsPage struct {
	Count    *int      `json:"@odata.count"`
	NextLink string    `json:"@odata.nextLink"`
	Value    []Product `json:"value"`
}

// Query prepares a lazy query for the products of a collection matching the
// search terms. The reserved terms "top" and "skip" control page size and
// initial offset. Invalid terms surface immediately.
func (c *Client) Query(collection string, terms odata.SearchTerms, opts QueryOptions) (*ProductQuery, error) {
	top, err := termInt(terms, "top", odata.MaxBatchSize)
	if err != nil {
		return nil, err
	}
	if top > odata.MaxBatchSize {
		c.logger.Warn().
			Int("top", top).
			Int("max", odata.MaxBatchSize).
			Msg("top exceeds the API maximum, clamping")
		top = odata.MaxBatchSize
	}
	skip, err := termInt(terms, "skip", 0)
	if err != nil {
		return nil, err
	}

	q := odata.Query{
		Collection:       collection,
		Terms:            terms,
		Top:              top,
		Skip:             skip,
		ExpandAttributes: opts.ExpandAttributes,
	}

	// The first page carries $count=true; follow-up pages come from
	// @odata.nextLink with the count stripped.
	first, err := q.URL(c.baseURL, true)
	if err != nil {
		return nil, err
	}

	return &ProductQuery{
		client:  c,
		query:   q,
		total:   -1,
		nextURL: first,
	}, nil
}

// Count returns the total number of matching products, fetching the first
// page if necessary.
func (q *ProductQuery) Count(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.total < 0 {
		if err := q.fetchNextLocked(ctx); err != nil {
			return 0, err
		}
	}
	if q.total < 0 {
		return 0, &APIError{Sentinel: ErrCountMissing, Operation: "count products"}
	}
	return q.total, nil
}

// Get returns the product at index, fetching pages until it is materialized.
func (q *ProductQuery) Get(ctx context.Context, index int) (Product, error) {
	if index < 0 {
		return Product{}, ErrIndexOutOfRange
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for index >= len(q.products) && q.nextURL != "" {
		if err := q.fetchNextLocked(ctx); err != nil {
			return Product{}, err
		}
	}
	if index >= len(q.products) {
		return Product{}, ErrIndexOutOfRange
	}
	return q.products[index], nil
}

// Iter returns an iterator over all matching products, fetching pages as the
// consumer advances. A fetch failure is yielded once as the final element.
func (q *ProductQuery) Iter(ctx context.Context) iter.Seq2[Product, error] {
	return func(yield func(Product, error) bool) {
		for i := 0; ; i++ {
			p, err := q.Get(ctx, i)
			if errors.Is(err, ErrIndexOutOfRange) {
				return
			}
			if err != nil {
				yield(Product{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

// All fetches every remaining page and returns all matching products.
func (q *ProductQuery) All(ctx context.Context) ([]Product, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.nextURL != "" {
		if err := q.fetchNextLocked(ctx); err != nil {
			return nil, err
		}
	}

	out := make([]Product, len(q.products))
	copy(out, q.products)
	return out, nil
}

// Fetched returns the products materialized so far without issuing requests.
func (q *ProductQuery) Fetched() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.products)
}

// fetchNextLocked fetches the next page. Non-200 responses and transport
// failures are retried with a jittered wait, bounded by the client's page
// retry budget. Callers must hold q.mu.
func (q *ProductQuery) fetchNextLocked(ctx context.Context) error {
	if q.nextURL == "" {
		return nil
	}

	logger := q.client.logger

	var lastErr error
	for attempt := 1; attempt <= q.client.pageRetryAttempts; attempt++ {
		var page productsPage
		_, err := q.client.getJSON(ctx, "products", q.nextURL, &page)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			logger.Warn().
				Err(err).
				Int(log.FieldAttempt, attempt).
				Msg("products page fetch failed, retrying")
			if errors.Is(err, ErrCircuitOpen) || attempt == q.client.pageRetryAttempts {
				break
			}
			// Jittered wait so concurrent clients do not retry in lockstep.
			wait := time.Duration(float64(q.client.pageRetryWait) * (1 + rand.Float64()/4))
			if err := sleepContext(ctx, wait); err != nil {
				return err
			}
			continue
		}

		for i := range page.Value {
			page.Value[i].Collection = q.query.Collection
		}
		q.products = append(q.products, page.Value...)
		productsFetched.Add(float64(len(page.Value)))

		if page.Count != nil {
			q.total = *page.Count
		} else if q.total < 0 {
			logger.Error().Msg("total result count not present in response")
		}

		if page.NextLink != "" && q.query.Top > 0 {
			q.nextURL = odata.StripCount(page.NextLink)
		} else {
			q.nextURL = ""
		}
		return nil
	}

	q.nextURL = ""
	return fmt.Errorf("%w: giving up on products page: %w", ErrRetriesExhausted, lastErr)
}

// termInt reads an integer search term, accepting int and numeric string
// values only.
func termInt(terms odata.SearchTerms, key string, def int) (int, error) {
	v, ok := terms[key]
	if !ok {
		return def, nil
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("expected integer for '%s', got %q", key, t)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("expected int or string for '%s', got %T", key, v)
	}
}
