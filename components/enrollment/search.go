package enrollment

import (
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// Search filters options by a case-insensitive match on their label. Labels
// starting with the query come first; ties keep the catalog order. An empty
// query returns every option and ignores the limit.
func Search(options []model.Option, query string, limit int, opts Options) []model.Option {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]model.Option(nil), options...)
	}

	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedOption, 0, len(options))
	for _, option := range options {
		label := strings.ToLower(option.Label)
		if !strings.Contains(label, q) {
			continue
		}
		matches = append(matches, matchedOption{
			option:   option,
			isPrefix: strings.HasPrefix(label, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]model.Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return out
}

type matchedOption struct {
	option   model.Option
	isPrefix bool
}
