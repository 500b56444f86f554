package enrollment

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/metrics"
	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
)

type GuardFunc func(r *http.Request) error

// HiddenFunc returns per-request hidden inputs, such as a CSRF token.
type HiddenFunc func(r *http.Request) []render.HiddenField

// RequestObserver times handled requests.
type RequestObserver interface {
	ObserveRequest(route, method string, code int, start time.Time)
}

type Options struct {
	RoutePath    string
	OptionsPath  string
	ContractPath string
	LevelParam   string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	// MaxBodyBytes caps submit payloads.
	MaxBodyBytes int64
	Guard        GuardFunc
	Hidden       HiddenFunc

	Catalog  *catalog.Catalog
	Renderer render.Renderer
	// Validator checks successful records against the published contract.
	// When nil and ValidateRecords is set, one is built from the contract.
	Validator       pkgopenapi.Validator
	ValidateRecords bool

	Recorder registration.Recorder
	Requests RequestObserver
	Logger   *zap.Logger
}

type OptionFn func(*Options)

const (
	defaultRoutePath    = "/register"
	defaultOptionsPath  = "/register/options"
	defaultContractPath = "/register/contract"
	defaultMaxBodyBytes = 1 << 20
)

func DefaultOptions() Options {
	return Options{
		RoutePath:       defaultRoutePath,
		OptionsPath:     defaultOptionsPath,
		ContractPath:    defaultContractPath,
		LevelParam:      "level",
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    50,
		MaxLimit:        200,
		MaxBodyBytes:    defaultMaxBodyBytes,
		ValidateRecords: true,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.OptionsPath == "" {
		opts.OptionsPath = defaultOptionsPath
	}
	if opts.ContractPath == "" {
		opts.ContractPath = defaultContractPath
	}
	if opts.LevelParam == "" {
		opts.LevelParam = "level"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithOptionsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OptionsPath = path
	}
}

func WithContractPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ContractPath = path
	}
}

func WithLevelParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LevelParam = name
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithMaxBodyBytes(n int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = n
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithHiddenFields adds hidden inputs to every rendered form.
func WithHiddenFields(fn HiddenFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hidden = fn
	}
}

// WithCSRF renders the token returned by token under name.
func WithCSRF(name string, token func(r *http.Request) string) OptionFn {
	return WithHiddenFields(func(r *http.Request) []render.HiddenField {
		if token == nil {
			return nil
		}
		return []render.HiddenField{render.CSRFToken(name, token(r))}
	})
}

func WithCatalog(c *catalog.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = c
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithValidator(v pkgopenapi.Validator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Validator = v
		o.ValidateRecords = v != nil
	}
}

// WithRecordValidation toggles the contract check of successful records.
func WithRecordValidation(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidateRecords = enabled
	}
}

func WithRecorder(r registration.Recorder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Recorder = r
	}
}

// WithMetrics records form activity and request durations on m.
func WithMetrics(m *metrics.Metrics) OptionFn {
	return func(o *Options) {
		if o == nil || m == nil {
			return
		}
		o.Recorder = m
		o.Requests = m
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
