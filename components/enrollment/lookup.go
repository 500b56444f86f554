package enrollment

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
)

// OptionView is one entry of a dependent option list.
type OptionView struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
}

// OptionsResponse lists the departments and degree programs of a level.
type OptionsResponse struct {
	Level       string       `json:"level"`
	Departments []OptionView `json:"departments"`
	Programs    []OptionView `json:"programs"`
}

// serveOptions answers the dependent lists for ?level=. An empty level yields
// empty lists; an unknown one is a bad request. The search parameter narrows
// the programs.
func (s *server) serveOptions(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	query := r.URL.Query()
	level := strings.TrimSpace(query.Get(s.opts.LevelParam))
	c := s.schema.Catalog()
	if level != "" && !c.HasLevel(level) {
		writeError(w, StatusError{
			Code: http.StatusBadRequest,
			Err:  fmt.Errorf("%w: %q", catalog.ErrUnknownLevel, level),
		})
		return
	}

	programs := Search(c.ProgramOptions(level), query.Get(s.opts.SearchParam), parseInt(query.Get(s.opts.LimitParam)), s.opts)
	writeJSON(w, r, http.StatusOK, OptionsResponse{
		Level:       level,
		Departments: optionViews(c.DepartmentOptions(level)),
		Programs:    optionViews(programs),
	})
}

func (s *server) serveContract(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	doc, err := s.document(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(doc.Raw())
}

func optionViews(options []model.Option) []OptionView {
	out := make([]OptionView, 0, len(options))
	for _, option := range options {
		out = append(out, OptionView{Value: option.Value, Label: option.Label, Group: option.Group})
	}
	return out
}
