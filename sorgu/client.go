package sorgu

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	xml2json "github.com/basgys/goxml2json"
	"github.com/rs/zerolog"

	"adres-api/models"
)

const (
	DefaultBaseURL   = "https://api.kahin.org/kahinapi/guncel-adres"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	msgAPIHatasi    = "API hatası: "
	msgGecersizJSON = "Geçersiz JSON yanıtı"
)

var (
	// ErrTransport covers connection failures, timeouts and non-2xx statuses.
	ErrTransport = errors.New("upstream transport error")
	// ErrFormat means upstream answered but the body is not a JSON object.
	ErrFormat = errors.New("upstream format error")
)

type upstreamError struct {
	kind error
	err  error
}

func (e *upstreamError) Error() string   { return e.err.Error() }
func (e *upstreamError) Unwrap() []error { return []error{e.kind, e.err} }

func transportErr(err error) error { return &upstreamError{kind: ErrTransport, err: err} }
func formatErr(err error) error    { return &upstreamError{kind: ErrFormat, err: err} }

// ClientConfig describes the single upstream address endpoint.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	UserAgent   string
	InsecureTLS bool // self-signed upstreams
	Debug       bool // httptrace logging
}

// Client performs the outbound address lookup. It holds no mutable state and
// is safe for concurrent use.
type Client struct {
	base      string
	userAgent string
	debug     bool
	http      *http.Client
	log       zerolog.Logger
	rec       Recorder
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func WithClientLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

func WithClientRecorder(r Recorder) ClientOption {
	return func(c *Client) {
		if r != nil {
			c.rec = r
		}
	}
}

func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	c := &Client{
		base:      cfg.BaseURL,
		userAgent: cfg.UserAgent,
		debug:     cfg.Debug,
		http:      &http.Client{Timeout: cfg.Timeout, Transport: tr},
		log:       zerolog.Nop(),
		rec:       nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch queries upstream for tc. It never fails: transport and decoding
// problems come back as an object with an "error" key.
func (c *Client) Fetch(ctx context.Context, tc string) models.UpstreamResponse {
	start := time.Now()
	raw, err := c.fetch(ctx, tc)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		c.rec.UpstreamCompleted(UpstreamOK, elapsed)
		return raw
	case errors.Is(err, ErrFormat):
		c.log.Warn().Err(err).Str("tc", maskTC(tc)).Msg("upstream yanıtı çözülemedi")
		c.rec.UpstreamCompleted(UpstreamFormatError, elapsed)
		return models.UpstreamResponse{models.KeyError: msgGecersizJSON}
	default:
		c.log.Warn().Err(err).Str("tc", maskTC(tc)).Dur("elapsed", elapsed).Msg("upstream isteği başarısız")
		c.rec.UpstreamCompleted(UpstreamTransportError, elapsed)
		return models.UpstreamResponse{models.KeyError: msgAPIHatasi + err.Error()}
	}
}

func (c *Client) fetch(ctx context.Context, tc string) (models.UpstreamResponse, error) {
	endpoint, err := c.endpoint(tc)
	if err != nil {
		return nil, transportErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, transportErr(err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/xml;q=0.9, */*;q=0.8")
	if c.debug {
		req = req.WithContext(httptrace.WithClientTrace(req.Context(), c.trace()))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, transportErr(statusError(resp.StatusCode, endpoint))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportErr(err)
	}

	if isXML(resp.Header.Get("Content-Type")) {
		if body, err = xmlToJSON(body); err != nil {
			return nil, formatErr(err)
		}
	}

	raw, err := decodeObject(body)
	if err != nil {
		return nil, formatErr(err)
	}
	return raw, nil
}

func (c *Client) endpoint(tc string) (string, error) {
	u, err := url.Parse(c.base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("tc", tc)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(info httptrace.DNSStartInfo) {
			c.log.Debug().Str("host", info.Host).Msg("dns start")
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			c.log.Debug().Interface("addrs", info.Addrs).AnErr("dns_err", info.Err).Msg("dns done")
		},
		ConnectDone: func(network, addr string, err error) {
			c.log.Debug().Str("network", network).Str("addr", addr).AnErr("connect_err", err).Msg("connect done")
		},
		GotConn: func(info httptrace.GotConnInfo) {
			c.log.Debug().Bool("reused", info.Reused).Bool("was_idle", info.WasIdle).Msg("got conn")
		},
	}
}

func statusError(code int, endpoint string) error {
	kind := "Client"
	if code >= 500 {
		kind = "Server"
	}
	return fmt.Errorf("%d %s Error: %s for url: %s", code, kind, http.StatusText(code), endpoint)
}

func isXML(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/xml" || mt == "text/xml" || strings.HasSuffix(mt, "+xml")
}

// xmlToJSON converts an XML document and unwraps its single root element,
// so <sonuc><il>..</il></sonuc> decodes like {"il": ".."}.
func xmlToJSON(body []byte) ([]byte, error) {
	buf, err := xml2json.Convert(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	var root map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		return nil, err
	}
	if len(root) == 1 {
		for _, inner := range root {
			if t := bytes.TrimSpace(inner); len(t) > 0 && t[0] == '{' {
				return t, nil
			}
		}
	}
	return buf.Bytes(), nil
}

func decodeObject(body []byte) (models.UpstreamResponse, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw models.UpstreamResponse
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("upstream body is not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return raw, nil
}
