package enrollment

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/openapi/builder"
	"github.com/goliatone/go-regform/internal/openapi/validator"
	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// server holds what the handlers share across requests. Forms themselves are
// mounted per request.
type server struct {
	opts     Options
	schema   *registration.Schema
	renderer render.Renderer

	contractOnce sync.Once
	contract     pkgopenapi.Document
	validator    pkgopenapi.Validator
	contractErr  error
}

func newServer(opts Options) (*server, error) {
	schema, err := registration.NewSchema(opts.Catalog)
	if err != nil {
		return nil, fmt.Errorf("enrollment: %w", err)
	}

	renderer := opts.Renderer
	if renderer == nil {
		html, err := vanilla.New(vanilla.WithDocument(), vanilla.WithDefaultStyles())
		if err != nil {
			return nil, fmt.Errorf("enrollment: default renderer: %w", err)
		}
		renderer = html
	}

	return &server{
		opts:     opts,
		schema:   schema,
		renderer: renderer,
	}, nil
}

func (s *server) mount() (*registration.Form, error) {
	form, err := registration.New(
		registration.WithSchema(s.schema),
		registration.WithScheduler(registration.NopScheduler{}),
		registration.WithLogger(s.opts.Logger),
		registration.WithRecorder(s.opts.Recorder),
	)
	if err != nil {
		return nil, fmt.Errorf("enrollment: mount form: %w", err)
	}
	return form, nil
}

// admit enforces the allowed methods and the guard.
func (s *server) admit(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	if !slices.Contains(methods, r.Method) {
		w.Header().Set("Allow", strings.Join(methods, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}
	if s.opts.Guard != nil {
		if err := s.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return false
		}
	}
	return true
}

// instrument times next and reports the response status.
func (s *server) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next(ww, r)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		if s.opts.Requests != nil {
			s.opts.Requests.ObserveRequest(route, r.Method, code, start)
		}
		s.opts.Logger.Debug("registration request",
			zap.String("route", route),
			zap.String("method", r.Method),
			zap.Int("status", code),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *server) fail(w http.ResponseWriter, err error) {
	s.opts.Logger.Error("registration request failed", zap.Error(err))
	writeError(w, err)
}

// document builds the contract once and caches the outcome.
func (s *server) document(ctx context.Context) (pkgopenapi.Document, error) {
	s.contractOnce.Do(func() {
		ctx = context.WithoutCancel(ctx)
		doc, err := builder.New().Build(ctx, pkgopenapi.Describe(s.schema))
		if err != nil {
			s.contractErr = fmt.Errorf("enrollment: build contract: %w", err)
			return
		}
		s.contract = doc

		if s.opts.Validator != nil || !s.opts.ValidateRecords {
			return
		}
		v, err := validator.New(ctx, doc)
		if err != nil {
			s.contractErr = fmt.Errorf("enrollment: contract validator: %w", err)
			return
		}
		s.validator = v
	})
	return s.contract, s.contractErr
}

// checkRecord validates a successful record against the contract. It returns
// nil when record validation is disabled.
func (s *server) checkRecord(ctx context.Context, record registration.Record) (pkgopenapi.Violations, error) {
	if !s.opts.ValidateRecords {
		return nil, nil
	}
	v := s.opts.Validator
	if v == nil {
		if _, err := s.document(ctx); err != nil {
			return nil, err
		}
		v = s.validator
	}
	return v.ValidateRecord(ctx, record)
}
