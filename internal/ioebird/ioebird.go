// Package ioebird implements taxonomy.Client for the eBird API 2.0.
// This is an impure I/O package.
package ioebird

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnpin/pkg/config"
	"github.com/gnames/gnpin/pkg/taxonomy"
)

// TokenHeader carries the eBird API key of a request.
const TokenHeader = "X-eBirdApiToken"

type client struct {
	cfg  config.EBirdConfig
	http *http.Client
}

// New creates an eBird client. The API key is checked on every request,
// so a client without a key fails before reaching the network.
func New(cfg config.EBirdConfig) taxonomy.Client {
	return &client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Taxonomy downloads the full eBird taxonomy in the configured locale.
func (c *client) Taxonomy(ctx context.Context) ([]taxonomy.Taxon, error) {
	return c.taxa(ctx, nil)
}

// TaxaByCodes downloads taxonomy records of the given codes only.
func (c *client) TaxaByCodes(
	ctx context.Context,
	codes []string,
) ([]taxonomy.Taxon, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	return c.taxa(ctx, codes)
}

func (c *client) taxa(
	ctx context.Context,
	codes []string,
) ([]taxonomy.Taxon, error) {
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("locale", c.cfg.Locale)
	if len(codes) > 0 {
		q.Set("species", strings.Join(codes, ","))
	}

	body, err := c.get(ctx, "/ref/taxonomy/ebird", q)
	if err != nil {
		return nil, err
	}

	var res []taxonomy.Taxon
	enc := gnfmt.GNjson{}
	if err = enc.Decode(body, &res); err != nil {
		return nil, DecodeError("taxonomy", err)
	}
	slog.Info("Downloaded eBird taxonomy", "records", len(res))
	return res, nil
}

// Forms returns codes of taxa reported within a species.
func (c *client) Forms(ctx context.Context, speciesCode string) ([]string, error) {
	path := "/ref/taxon/forms/" + url.PathEscape(speciesCode)
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var res []string
	enc := gnfmt.GNjson{}
	if err = enc.Decode(body, &res); err != nil {
		return nil, DecodeError("forms of "+speciesCode, err)
	}
	return res, nil
}

// get sends an authenticated GET request. Any status other than 200
// is a connection error.
func (c *client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, NoAPIKeyError()
	}

	u := strings.TrimRight(c.cfg.URL, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, ConnectionError(u, 0, err)
	}
	req.Header.Set(TokenHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ConnectionError(u, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ConnectionError(u, resp.StatusCode,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ConnectionError(u, resp.StatusCode, err)
	}
	return body, nil
}
