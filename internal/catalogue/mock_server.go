package catalogue

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockServer is a configurable catalogue mock for testing. It serves the
// Products endpoint with real pagination semantics (nextLink echoes the
// request parameters, including $count=true) and the Attributes endpoint.
type MockServer struct {
	*httptest.Server
	mu         sync.Mutex
	products   []Product
	attributes map[string][]ServerAttribute
	failures   int // number of 500s to serve before succeeding
	requests   []string
}

// NewMockServer creates a catalogue mock pre-loaded with default test data:
// 47 SENTINEL-1 products and the SENTINEL-1 attribute definitions.
func NewMockServer() *MockServer {
	mock := &MockServer{}
	mock.SetDefaultData()

	mux := http.NewServeMux()
	mux.HandleFunc("/Products", mock.handleProducts)
	mux.HandleFunc("/Attributes", mock.handleAttributes) // catches /Attributes(NAME) via rewrite below

	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.record(r)
		// Attributes(NAME) is a single path segment; normalize it for the mux.
		if strings.HasPrefix(r.URL.Path, "/Attributes(") {
			mock.handleAttributes(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	return mock
}

// SetDefaultData loads the default product and attribute fixtures.
func (m *MockServer) SetDefaultData() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = make([]Product, 0, 47)
	base := time.Date(2014, 4, 6, 1, 0, 0, 0, time.UTC)
	for i := 0; i < 47; i++ {
		name := MockProductName(i)
		start := base.Add(time.Duration(i) * time.Hour)
		m.products = append(m.products, Product{
			ID:            uuid.NewMD5(uuid.NameSpaceOID, []byte(name)),
			Name:          name,
			ContentType:   "application/octet-stream",
			ContentLength: int64(1024 * (i + 1)),
			Online:        true,
			ContentDate:   ContentDate{Start: start, End: start.Add(30 * time.Minute)},
			S3Path:        "/eodata/Sentinel-1/AUX/" + name,
			Attributes: []ProductAttribute{
				{Name: "productType", Value: "AUX_PP2", ValueType: "String"},
				{Name: "orbitNumber", Value: float64(100 + i), ValueType: "Integer"},
			},
		})
	}

	m.attributes = map[string][]ServerAttribute{
		"SENTINEL-1": {
			{Name: "productType", ValueType: "String"},
			{Name: "orbitNumber", ValueType: "Integer"},
			{Name: "relativeOrbitNumber", ValueType: "Integer"},
			{Name: "orbitDirection", ValueType: "String"},
			{Name: "datatakeID", ValueType: "Integer"},
			{Name: "cycleNumber", ValueType: "Integer"},
			{Name: "sliceNumber", ValueType: "Integer"},
			{Name: "processorName", ValueType: "String"},
			{Name: "processingDate", ValueType: "DateTimeOffset"},
			{Name: "sliceProductFlag", ValueType: "Boolean"},
			{Name: "startTimeFromAscendingNode", ValueType: "Double"},
		},
	}
	m.requests = nil
	m.failures = 0
}

// MockProductName returns the deterministic name of the i-th mock product.
func MockProductName(i int) string {
	return fmt.Sprintf("S1A_AUX_PP2_V20140406T010000_G%04d.SAFE", i)
}

// FailNext makes the next n Products requests respond with HTTP 500.
func (m *MockServer) FailNext(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = n
}

// Requests returns the URLs requested so far.
func (m *MockServer) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *MockServer) record(r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, r.URL.String())
}

func (m *MockServer) handleProducts(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	if m.failures > 0 {
		m.failures--
		m.mu.Unlock()
		http.Error(w, `{"detail":"internal error"}`, http.StatusInternalServerError)
		return
	}
	products := m.products
	m.mu.Unlock()

	params := r.URL.Query()
	top := 20
	if raw := params.Get("$top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			top = n
		}
	}
	skip, _ := strconv.Atoi(params.Get("$skip"))
	wantCount := params.Get("$count") == "true"
	expand := params.Get("$expand") == "Attributes"

	if skip > len(products) {
		skip = len(products)
	}
	end := skip + top
	if end > len(products) {
		end = len(products)
	}

	page := make([]Product, end-skip)
	copy(page, products[skip:end])
	if !expand {
		for i := range page {
			page[i].Attributes = nil
		}
	}

	body := map[string]any{"value": page}
	if wantCount {
		body["@odata.count"] = len(products)
	}
	if end < len(products) {
		// Echo the request parameters in the nextLink, $count included, the
		// way the production catalogue does.
		next := params
		next.Set("$skip", strconv.Itoa(end))
		body["@odata.nextLink"] = m.URL + "/Products?" + next.Encode()
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func (m *MockServer) handleAttributes(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/Attributes("), ")")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	m.mu.Lock()
	attrs, ok := m.attributes[name]
	m.mu.Unlock()

	if !ok {
		http.Error(w, `{"detail":"collection not found"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(attrs)
}
