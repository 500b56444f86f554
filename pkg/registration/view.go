package registration

import (
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// View projects state into render options: values, inline errors, resolved
// option lists, disabled selectors, progress and the banner.
func (s *Schema) View(state State) render.RenderOptions {
	opts := render.RenderOptions{
		Values:   make(map[string]string, len(s.order)),
		Expanded: make(map[model.SectionID]bool, len(state.Expanded)),
		Choices:  make(map[string][]model.Option),
		Disabled: make(map[string]bool),
		Progress: Progress(state),
		Banner:   bannerFor(state.Status),
	}
	for _, name := range s.order {
		opts.Values[name] = state.Values[name]
		if state.Errors[name] {
			if opts.Errors == nil {
				opts.Errors = make(map[string][]string)
			}
			opts.Errors[name] = []string{RequiredMessage}
		}
		if s.fields[name].Input == model.InputKindChoice {
			opts.Choices[name] = s.OptionsFor(state, name)
		}
		if s.Disabled(state, name) {
			opts.Disabled[name] = true
		}
	}
	for id, open := range state.Expanded {
		opts.Expanded[id] = open
	}
	if state.Status == StatusError {
		if incomplete := s.Incomplete(state); len(incomplete) > 0 {
			opts.Focus = incomplete[0]
		}
	}
	return opts
}

// RenderOptions returns the render options for the current state with the
// given hidden inputs merged in.
func (f *Form) RenderOptions(hidden ...render.HiddenField) render.RenderOptions {
	state := f.State()
	opts := f.schema.View(state)
	opts.Hidden = render.MergeHiddenFields(nil, hidden...)
	return opts
}

func bannerFor(status Status) render.Banner {
	switch status {
	case StatusSuccess:
		return render.Banner{Kind: render.BannerSuccess, Message: status.Message()}
	case StatusError:
		return render.Banner{Kind: render.BannerError, Message: status.Message()}
	default:
		return render.Banner{}
	}
}
