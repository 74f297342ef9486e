// Package download retrieves catalogue products with bounded concurrency and
// atomic file writes.
package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/cdsetool/cdsego/internal/catalogue"
	"github.com/cdsetool/cdsego/internal/log"
)

// DefaultBaseURL is the production download endpoint. Product payloads are
// served from the zipper service rather than the catalogue host.
const DefaultBaseURL = "https://download.dataspace.copernicus.eu/odata/v1"

// Options control a download batch.
type Options struct {
	// Concurrency bounds parallel transfers. Values below 1 mean 1.
	Concurrency int
	// OverwriteExisting re-downloads files that already exist on disk.
	OverwriteExisting bool
	// FilterPattern downloads only the files inside the product bundle whose
	// base name matches this glob, using the OData Nodes API.
	FilterPattern string
	// Monitor observes transfer progress. Defaults to NoopMonitor.
	Monitor Monitor
	// PerProductTimeout bounds each product transfer. Zero means no limit.
	PerProductTimeout time.Duration
}

// Result is the outcome of one product download.
type Result struct {
	Product catalogue.Product
	// Path is where the payload was written. Empty when the product was
	// skipped or failed.
	Path string
	// Skipped is true when the file already existed and overwrite was off,
	// or the product carried no usable Id.
	Skipped bool
	Err     error
}

// Downloader fetches product payloads through an authenticated HTTP client.
type Downloader struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a downloader. client must attach credentials; product payloads
// are not served anonymously.
func New(baseURL string, client *http.Client) *Downloader {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Downloader{
		baseURL: baseURL,
		http:    client,
		logger:  log.WithComponent("download"),
	}
}

// Features downloads every product into dir with bounded concurrency and
// returns one result per product, in input order. Individual failures do not
// abort the batch.
func (d *Downloader) Features(ctx context.Context, products []catalogue.Product, dir string, opts Options) []Result {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if opts.Monitor == nil {
		opts.Monitor = NoopMonitor{}
	}

	sem := semaphore.NewWeighted(int64(concurrency))
	results := make([]Result, len(products))
	var wg sync.WaitGroup

	for i, product := range products {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = Result{Product: product, Err: err}
			continue
		}

		wg.Add(1)
		go func(i int, product catalogue.Product) {
			defer wg.Done()
			defer sem.Release(1)

			prodCtx := ctx
			if opts.PerProductTimeout > 0 {
				var cancel context.CancelFunc
				prodCtx, cancel = context.WithTimeout(ctx, opts.PerProductTimeout)
				defer cancel()
			}

			results[i] = d.one(prodCtx, product, dir, opts)
		}(i, product)
	}

	wg.Wait()
	return results
}

// one downloads a single product, dispatching to node filtering when a
// pattern is set.
func (d *Downloader) one(ctx context.Context, product catalogue.Product, dir string, opts Options) Result {
	if product.Collection != "" {
		ctx = log.ContextWithCollection(ctx, product.Collection)
	}
	if product.ID != uuid.Nil {
		ctx = log.ContextWithProductID(ctx, product.ID.String())
	}
	logger := log.WithContext(ctx, d.logger)

	if product.ID == uuid.Nil {
		// Products without an Id cannot be addressed; matches the behavior
		// of skipping malformed query results instead of failing the batch.
		logger.Debug().Str(log.FieldProduct, product.Name).Msg("product has no Id, skipping")
		downloadsTotal.WithLabelValues("skipped").Inc()
		return Result{Product: product, Skipped: true}
	}

	if opts.FilterPattern != "" {
		paths, err := d.nodes(ctx, product, dir, opts)
		if err != nil {
			downloadsTotal.WithLabelValues("failed").Inc()
			return Result{Product: product, Err: err}
		}
		downloadsTotal.WithLabelValues("success").Inc()
		return Result{Product: product, Path: paths}
	}

	target := filepath.Join(dir, product.Name+".zip")
	if !opts.OverwriteExisting {
		if _, err := os.Stat(target); err == nil {
			logger.Debug().Str(log.FieldPath, target).Msg("file exists, skipping")
			downloadsTotal.WithLabelValues("skipped").Inc()
			return Result{Product: product, Path: target, Skipped: true}
		}
	}

	url := fmt.Sprintf("%s/Products(%s)/$value", d.baseURL, product.ID)
	if err := d.fetchFile(ctx, url, target, product.Name, product.ContentLength, opts.Monitor); err != nil {
		downloadsTotal.WithLabelValues("failed").Inc()
		return Result{Product: product, Err: err}
	}

	downloadsTotal.WithLabelValues("success").Inc()
	return Result{Product: product, Path: target}
}

// fetchFile streams url into target atomically, reporting progress.
func (d *Downloader) fetchFile(ctx context.Context, url, target, name string, total int64, monitor Monitor) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", name, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %d", name, res.StatusCode)
	}
	if res.ContentLength > 0 {
		total = res.ContentLength
	}

	// renameio handles temp file creation, fsync and atomic rename; readers
	// never observe a partial file.
	pending, err := renameio.NewPendingFile(target)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			d.logger.Debug().Err(err).Str(log.FieldPath, target).Msg("cleanup pending file")
		}
	}()

	progress := monitor.Start(name, total)
	written, err := io.Copy(io.MultiWriter(pending, &progressWriter{progress}), res.Body)
	if err != nil {
		progress.Done(err)
		return fmt.Errorf("write %s: %w", target, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		progress.Done(err)
		return fmt.Errorf("atomically replace %s: %w", target, err)
	}

	progress.Done(nil)
	downloadBytes.Add(float64(written))
	return nil
}

// node is one entry of the OData Nodes tree. Entries with a positive
// ContentLength are files; the rest are directories.
type node struct {
	ID            string `json:"Id"`
	Name          string `json:"Name"`
	ContentLength int64  `json:"ContentLength"`
	Nodes         struct {
		URI string `json:"uri"`
	} `json:"Nodes"`
}

type nodesPage struct {
	Result []node `json:"result"`
}

// nodes downloads the files inside a product bundle whose names match the
// filter pattern, preserving the bundle directory for the outputs.
func (d *Downloader) nodes(ctx context.Context, product catalogue.Product, dir string, opts Options) (string, error) {
	bundleDir := filepath.Join(dir, product.Name)
	if err := os.MkdirAll(bundleDir, 0o755); err != nil {
		return "", fmt.Errorf("create bundle dir: %w", err)
	}

	root := fmt.Sprintf("%s/Products(%s)/Nodes", d.baseURL, product.ID)
	matched := 0
	err := d.walkNodes(ctx, root, func(n node) error {
		ok, err := path.Match(opts.FilterPattern, n.Name)
		if err != nil {
			return fmt.Errorf("invalid filter pattern %q: %w", opts.FilterPattern, err)
		}
		if !ok {
			return nil
		}

		target := filepath.Join(bundleDir, n.Name)
		if !opts.OverwriteExisting {
			if _, err := os.Stat(target); err == nil {
				return nil
			}
		}
		matched++
		return d.fetchFile(ctx, n.Nodes.URI+"/$value", target, n.Name, n.ContentLength, opts.Monitor)
	})
	if err != nil {
		return "", err
	}
	if matched == 0 {
		d.logger.Warn().
			Str(log.FieldProduct, product.Name).
			Str("pattern", opts.FilterPattern).
			Msg("filter pattern matched no files")
	}
	return bundleDir, nil
}

// walkNodes walks the node tree depth-first, invoking fn for every file node.
func (d *Downloader) walkNodes(ctx context.Context, url string, fn func(node) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build nodes request: %w", err)
	}

	res, err := d.http.Do(req)
	if err != nil {
		return fmt.Errorf("list nodes: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("list nodes: unexpected status %d", res.StatusCode)
	}

	var page nodesPage
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return fmt.Errorf("decode nodes response: %w", err)
	}

	for _, n := range page.Result {
		if n.ContentLength > 0 {
			if err := fn(n); err != nil {
				return err
			}
			continue
		}
		if n.Nodes.URI != "" {
			if err := d.walkNodes(ctx, n.Nodes.URI, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
