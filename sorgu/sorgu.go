// Package sorgu looks up the current address registered to a TC kimlik
// numarası: the number is checked locally, sent to the upstream address API,
// and the answer is cleaned of advertising before it is returned.
package sorgu

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"adres-api/models"
)

const msgGecersizTC = "Geçersiz TC kimlik numarası"

// Lookup outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidIdentity = "invalid_identity"
	OutcomeUpstreamError   = "upstream_error"
)

// Upstream call results.
const (
	UpstreamOK             = "ok"
	UpstreamTransportError = "transport_error"
	UpstreamFormatError    = "format_error"
)

// Recorder receives lookup and upstream call outcomes, typically for metrics.
type Recorder interface {
	LookupCompleted(outcome string)
	UpstreamCompleted(result string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) LookupCompleted(string)                  {}
func (nopRecorder) UpstreamCompleted(string, time.Duration) {}

// Fetcher is the remote half of a lookup; *Client is the production one.
type Fetcher interface {
	Fetch(ctx context.Context, tc string) models.UpstreamResponse
}

// Service is stateless apart from its collaborators.
type Service struct {
	fetcher Fetcher
	log     zerolog.Logger
	rec     Recorder
}

type Option func(*Service)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

func NewService(f Fetcher, opts ...Option) *Service {
	s := &Service{fetcher: f, log: zerolog.Nop(), rec: nopRecorder{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup validates tc, queries upstream and normalizes the answer. Errors are
// returned as payloads; the int is the HTTP status to answer with. Upstream
// and transport errors deliberately keep status 200 unless upstream sent its
// own "code".
func (s *Service) Lookup(ctx context.Context, tc string) (models.Response, int) {
	log := s.log.With().Str("tc", maskTC(tc)).Logger()

	if !ValidateTC(tc) {
		log.Debug().Msg("geçersiz tc")
		s.rec.LookupCompleted(OutcomeInvalidIdentity)
		return models.Response{models.KeyError: msgGecersizTC}, http.StatusBadRequest
	}

	raw := s.fetcher.Fetch(ctx, tc)
	if raw.HasError() {
		log.Info().Interface("error", raw[models.KeyError]).Msg("upstream hata döndü")
		s.rec.LookupCompleted(OutcomeUpstreamError)
		return models.Response(raw).SplitCode()
	}

	s.rec.LookupCompleted(OutcomeSuccess)
	return Normalize(raw), http.StatusOK
}
