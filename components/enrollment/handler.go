package enrollment

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Messages returned next to the form-level banners.
const (
	RejectedMessage = "Some values were not accepted. Correct the highlighted fields and submit again."
	ContractMessage = "The submission does not match the registration contract."
)

const (
	mediaJSON = "application/json"
	mediaForm = "application/x-www-form-urlencoded"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// SubmitResponse is the JSON reply to a submit or reset.
type SubmitResponse struct {
	Status       string              `json:"status"`
	Message      string              `json:"message"`
	SubmissionID string              `json:"submissionId,omitempty"`
	Progress     int                 `json:"progress"`
	Incomplete   []string            `json:"incomplete,omitempty"`
	Errors       map[string][]string `json:"errors,omitempty"`
	FormErrors   []string            `json:"formErrors,omitempty"`
	Record       registration.Record `json:"record,omitempty"`
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions serves the component routes relative to "/" from a
// pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	mux := http.NewServeMux()
	if _, err := RegisterRoutesWithOptions(mux, "", opts); err != nil {
		logger := opts.Logger
		if logger == nil {
			logger = zap.NewNop()
		}
		logger.Error("registration handler unavailable", zap.Error(err))
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, err)
		})
	}
	return mux
}

// outcome is what a request did to its form, independent of the reply
// format.
type outcome struct {
	status       registration.Status
	message      string
	submissionID string
	incomplete   []string
	errors       map[string][]string
	formErrors   []string
	record       registration.Record
}

func outcomeOf(result registration.Result) outcome {
	return outcome{
		status:       result.Status,
		message:      result.Status.Message(),
		submissionID: result.SubmissionID,
		incomplete:   result.Incomplete,
		record:       result.Record,
	}
}

func (s *server) serveForm(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r, http.MethodGet, http.MethodHead, http.MethodPost) {
		return
	}
	if r.Method == http.MethodPost {
		s.submit(w, r)
		return
	}

	form, err := s.mount()
	if err != nil {
		s.fail(w, err)
		return
	}
	defer form.Close()
	s.reply(w, r, form, outcome{}, http.StatusOK)
}

func (s *server) submit(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(w, r, s.opts.MaxBodyBytes, s.schema.FieldNames())
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := s.mount()
	if err != nil {
		s.fail(w, err)
		return
	}
	defer form.Close()

	if sub.action == render.ActionReset {
		form.Reset()
		s.reply(w, r, form, outcome{}, http.StatusOK)
		return
	}

	if rejected := s.fill(form, sub.values); len(rejected) > 0 {
		s.opts.Logger.Info("registration input rejected", zap.Strings("fields", sortedKeys(rejected)))
		s.reply(w, r, form, outcome{
			status:     registration.StatusError,
			message:    RejectedMessage,
			incomplete: s.schema.Incomplete(form.State()),
			errors:     rejected,
		}, http.StatusUnprocessableEntity)
		return
	}

	// Contract check runs before Submit; a violating record gets no submission id.
	if len(s.schema.Incomplete(form.State())) == 0 {
		violations, err := s.checkRecord(r.Context(), s.schema.Record(form.State()))
		if err != nil {
			s.fail(w, err)
			return
		}
		if len(violations) > 0 {
			s.rejectRecord(w, r, form, violations)
			return
		}
	}

	result := form.Submit()
	if !result.OK() {
		s.reply(w, r, form, outcomeOf(result), http.StatusUnprocessableEntity)
		return
	}

	s.reply(w, r, form, outcomeOf(result), http.StatusOK)
}

// rejectRecord answers a contract violation and counts it as a failed submit.
func (s *server) rejectRecord(w http.ResponseWriter, r *http.Request, form *registration.Form, violations pkgopenapi.Violations) {
	mapping := render.MapErrorPayload(s.schema.Form(), violations)
	s.opts.Logger.Warn("registration record violates contract",
		zap.Any("violations", map[string][]string(violations)),
	)
	if s.opts.Recorder != nil {
		s.opts.Recorder.ObserveSubmit(registration.StatusError, 0)
	}
	s.reply(w, r, form, outcome{
		status:     registration.StatusError,
		message:    ContractMessage,
		errors:     mapping.Fields,
		formErrors: mapping.Form,
	}, http.StatusUnprocessableEntity)
}

// fill applies values in field order so the academic level lands before the
// fields that depend on it. It returns one message per rejected field.
func (s *server) fill(form *registration.Form, values map[string]string) map[string][]string {
	var rejected map[string][]string
	for _, name := range s.schema.FieldNames() {
		value, ok := values[name]
		if !ok || form.SetField(name, value) {
			continue
		}
		field, _ := s.schema.Field(name)
		reason := validation.Message(s.schema.Accept(form.State(), name, value))
		if rejected == nil {
			rejected = make(map[string][]string)
		}
		rejected[name] = []string{field.DisplayLabel() + " " + reason}
	}
	return rejected
}

func (s *server) reply(w http.ResponseWriter, r *http.Request, form *registration.Form, o outcome, code int) {
	if wantsJSON(r) {
		writeJSON(w, r, code, s.response(form, o))
		return
	}

	var hidden []render.HiddenField
	if s.opts.Hidden != nil {
		hidden = s.opts.Hidden(r)
	}
	opts := form.RenderOptions(hidden...)
	opts.Action = r.URL.Path
	opts.Errors = mergeErrors(opts.Errors, o.errors)
	opts.FormErrors = render.MergeFormErrors(opts.FormErrors, o.formErrors...)
	if o.status != registration.StatusIdle {
		opts.Banner = render.Banner{Kind: bannerKind(o.status), Message: o.message}
	}
	if opts.Focus == "" {
		opts.Focus = s.firstFlagged(o.errors)
	}

	body, err := s.renderer.Render(r.Context(), s.schema.Form(), opts)
	if err != nil {
		s.fail(w, fmt.Errorf("enrollment: render form: %w", err))
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (s *server) response(form *registration.Form, o outcome) SubmitResponse {
	status := string(o.status)
	if o.status == registration.StatusIdle {
		status = "idle"
	}
	return SubmitResponse{
		Status:       status,
		Message:      o.message,
		SubmissionID: o.submissionID,
		Progress:     form.Progress(),
		Incomplete:   o.incomplete,
		Errors:       mergeErrors(form.RenderOptions().Errors, o.errors),
		FormErrors:   o.formErrors,
		Record:       o.record,
	}
}

func (s *server) firstFlagged(errs map[string][]string) string {
	for _, name := range s.schema.FieldNames() {
		if len(errs[name]) > 0 {
			return name
		}
	}
	return ""
}

type submission struct {
	action string
	values map[string]string
}

// decodeSubmission reads a form-encoded or JSON body. Keys that are not form
// fields are ignored.
func decodeSubmission(w http.ResponseWriter, r *http.Request, limit int64, fields []string) (submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	mediaType := mediaForm
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return submission{}, StatusError{Code: http.StatusUnsupportedMediaType, Err: err}
		}
		mediaType = parsed
	}

	sub := submission{values: make(map[string]string)}
	switch mediaType {
	case mediaJSON:
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return submission{}, bodyError(fmt.Errorf("enrollment: decode json: %w", err))
		}
		sub.action = payload[render.ActionField]
		for _, name := range fields {
			if value, ok := payload[name]; ok {
				sub.values[name] = value
			}
		}
	case mediaForm:
		if err := r.ParseForm(); err != nil {
			return submission{}, bodyError(fmt.Errorf("enrollment: parse form: %w", err))
		}
		sub.action = r.PostForm.Get(render.ActionField)
		for _, name := range fields {
			if values, ok := r.PostForm[name]; ok && len(values) > 0 {
				sub.values[name] = values[0]
			}
		}
	default:
		return submission{}, StatusError{
			Code: http.StatusUnsupportedMediaType,
			Err:  fmt.Errorf("enrollment: unsupported content type %q", mediaType),
		}
	}

	switch sub.action {
	case "":
		sub.action = render.ActionSubmit
	case render.ActionSubmit, render.ActionReset:
	default:
		return submission{}, StatusError{
			Code: http.StatusBadRequest,
			Err:  fmt.Errorf("enrollment: unknown action %q", sub.action),
		}
	}
	return sub, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
	}
	return StatusError{Code: http.StatusBadRequest, Err: err}
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, mediaJSON) {
		return true
	}
	if strings.Contains(accept, "text/html") {
		return false
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == mediaJSON
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	http.Error(w, http.StatusText(code), code)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func mergeErrors(base, extra map[string][]string) map[string][]string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string][]string, len(base)+len(extra))
	for name, messages := range base {
		out[name] = append([]string(nil), messages...)
	}
	for name, messages := range extra {
		out[name] = append(out[name], messages...)
	}
	return out
}

func bannerKind(status registration.Status) render.BannerKind {
	if status == registration.StatusSuccess {
		return render.BannerSuccess
	}
	return render.BannerError
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
