package routekey

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/slimak/pkg/store"
)

// recordKey is the context key for the bound record.
type recordKey struct{}

// ErrorHandler writes the response for a failed lookup.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures Bind.
type Option func(*config)

type config struct {
	log      *slog.Logger
	onError  ErrorHandler
	redirect bool
}

// WithLogger sets the logger for lookup failures. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithErrorHandler replaces the default 404/500 plain-text responses.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *config) {
		c.onError = h
	}
}

// WithCanonicalRedirect makes Bind answer 301 with the stored spelling when
// the URL matched a record through a different case.
func WithCanonicalRedirect() Option {
	return func(c *config) {
		c.redirect = true
	}
}

// Bind returns chi middleware that resolves the URL parameter param to a
// record through finder and stores it in the request context.
// An unknown slug answers 404, any other lookup error 500.
func Bind(finder store.Finder, param string, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		log:     slog.New(slog.DiscardHandler),
		onError: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := chi.URLParam(r, param)
			if s == "" {
				cfg.onError(w, r, store.ErrNotFound)
				return
			}

			rec, err := finder.FindBySlug(r.Context(), s)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					cfg.log.ErrorContext(r.Context(), "route key lookup failed",
						slog.String("param", param),
						slog.String("slug", s),
						slog.String("error", err.Error()),
					)
				}
				cfg.onError(w, r, err)
				return
			}

			if cfg.redirect && rec.Slug != s {
				if target := canonicalPath(r, s, rec.Slug); target != "" {
					http.Redirect(w, r, target, http.StatusMovedPermanently)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithRecord(r.Context(), rec)))
		})
	}
}

// canonicalPath swaps the last occurrence of the matched slug in the path.
func canonicalPath(r *http.Request, matched, canonical string) string {
	p := r.URL.Path
	i := strings.LastIndex(p, matched)
	if i < 0 {
		return ""
	}
	u := *r.URL
	u.Path = p[:i] + canonical + p[i+len(matched):]
	u.RawPath = ""
	return u.String()
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// WithRecord returns a copy of ctx carrying rec.
func WithRecord(ctx context.Context, rec store.Record) context.Context {
	return context.WithValue(ctx, recordKey{}, rec)
}

// FromContext returns the record bound by Bind.
func FromContext(ctx context.Context) (store.Record, bool) {
	rec, ok := ctx.Value(recordKey{}).(store.Record)
	return rec, ok
}
