// Package credentials resolves Copernicus Data Space Ecosystem accounts and
// issues authenticated HTTP clients via the CDSE Keycloak identity service.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/cdsetool/cdsego/internal/log"
)

const (
	// DefaultTokenURL is the CDSE Keycloak token endpoint.
	DefaultTokenURL = "https://identity.dataspace.copernicus.eu/auth/realms/CDSE/protocol/openid-connect/token"
	// ClientID is the public OpenID client the ecosystem provides for tools.
	ClientID = "cdse-public"
	// NetrcMachine is the machine entry looked up in ~/.netrc.
	NetrcMachine = "catalogue.dataspace.copernicus.eu"
)

// ErrNoCredentials is returned when no username/password can be resolved
// from arguments, environment or netrc.
var ErrNoCredentials = errors.New("credentials: no username/password found (checked arguments, CDSE_USERNAME/CDSE_PASSWORD, ~/.netrc)")

// Options tune credential resolution and token exchange.
type Options struct {
	// TokenURL overrides the identity endpoint. Mainly for tests.
	TokenURL string
	// NetrcPath overrides the netrc location (default ~/.netrc).
	NetrcPath string
	// Timeout bounds token exchange requests.
	Timeout time.Duration
}

// Credentials holds a resolved CDSE account and caches its token source.
type Credentials struct {
	username string
	password string
	tokenURL string
	timeout  time.Duration

	mu     sync.Mutex
	source oauth2.TokenSource
}

// New resolves credentials with precedence: explicit arguments, then the
// CDSE_USERNAME/CDSE_PASSWORD environment variables, then the netrc entry
// for the catalogue host.
func New(username, password string, opts Options) (*Credentials, error) {
	logger := log.WithComponent("credentials")

	source := "arguments"
	if username == "" || password == "" {
		username = os.Getenv("CDSE_USERNAME")
		password = os.Getenv("CDSE_PASSWORD")
		source = "environment"
	}
	if username == "" || password == "" {
		path := opts.NetrcPath
		if path == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				path = filepath.Join(home, ".netrc")
			}
		}
		if path != "" {
			if entry, err := netrcLookup(path, NetrcMachine); err == nil {
				username, password = entry.login, entry.password
				source = "netrc"
			}
		}
	}
	if username == "" || password == "" {
		return nil, ErrNoCredentials
	}

	logger.Debug().Str("source", source).Str("username", username).Msg("credentials resolved")

	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Credentials{
		username: username,
		password: password,
		tokenURL: tokenURL,
		timeout:  timeout,
	}, nil
}

// Username returns the resolved account name.
func (c *Credentials) Username() string {
	return c.username
}

func (c *Credentials) config() *oauth2.Config {
	return &oauth2.Config{
		ClientID: ClientID,
		Endpoint: oauth2.Endpoint{TokenURL: c.tokenURL},
	}
}

// tokenSource exchanges the password for a token once and reuses the
// refreshing source afterwards.
func (c *Credentials) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.source != nil {
		return c.source, nil
	}

	conf := c.config()
	exchangeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := conf.PasswordCredentialsToken(exchangeCtx, c.username, c.password)
	if err != nil {
		return nil, fmt.Errorf("credentials: token exchange failed: %w", err)
	}

	// Background context: the source outlives the call that created it.
	c.source = conf.TokenSource(context.Background(), token)
	return c.source, nil
}

// Token returns a valid access token, refreshing as needed.
func (c *Credentials) Token(ctx context.Context) (*oauth2.Token, error) {
	source, err := c.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("credentials: token refresh failed: %w", err)
	}
	return token, nil
}

// HTTPClient returns a client that attaches a Bearer token to every request.
func (c *Credentials) HTTPClient(ctx context.Context) (*http.Client, error) {
	source, err := c.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, source), nil
}
