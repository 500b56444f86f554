package vanilla

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/theming"
)

func (r *Renderer) view(form model.FormModel, opts render.RenderOptions) map[string]any {
	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = strings.ToUpper(form.Method)
	}
	if method != "GET" {
		method = "POST"
	}
	action := opts.Action
	if action == "" {
		action = form.Endpoint
	}

	sections := make([]map[string]any, 0, len(form.Sections))
	for _, section := range form.Sections {
		sections = append(sections, sectionView(section, opts))
	}

	hidden := make([]map[string]any, 0, len(opts.Hidden))
	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	progress := opts.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	data := map[string]any{
		"form": map[string]any{
			"id":       form.ID,
			"title":    form.Title,
			"subtitle": form.Subtitle,
			"action":   action,
			"method":   method,
		},
		"classes":     chromeClasses(),
		"document":    r.cfg.document,
		"progress":    progress,
		"sections":    sections,
		"hidden":      hidden,
		"form_errors": render.MergeFormErrors(opts.FormErrors),
		"banner": map[string]any{
			"visible": opts.Banner.Visible(),
			"kind":    string(opts.Banner.Kind),
			"html":    sanitizeText(opts.Banner.Message),
		},
		"submit_action": render.ActionSubmit,
		"reset_action":  render.ActionReset,
		"action_field":  render.ActionField,
	}

	var stylesheets []string
	if cfg := r.cfg.theme; cfg != nil {
		data["theme"] = map[string]any{"name": cfg.Theme, "variant": cfg.Variant}
		data["theme_style"] = theming.RootStyle(cfg)
		if cfg.AssetURL != nil {
			if href := cfg.AssetURL(theming.StylesheetAsset); href != "" {
				stylesheets = append(stylesheets, href)
			}
		}
	}
	stylesheets = append(stylesheets, r.cfg.stylesheets...)
	data["stylesheets"] = stylesheets
	if r.cfg.inlineStyles {
		data["inline_style"] = defaultStylesheet()
	}
	return data
}

func sectionView(section model.Section, opts render.RenderOptions) map[string]any {
	var groups []map[string]any
	var current map[string]any
	for i, field := range section.Fields {
		if current == nil || (i > 0 && field.Group != section.Fields[i-1].Group) {
			current = map[string]any{"title": field.Group, "fields": []map[string]any{}}
			groups = append(groups, current)
		}
		current["fields"] = append(current["fields"].([]map[string]any), fieldView(field, opts))
	}

	return map[string]any{
		"id":        string(section.ID),
		"dom_id":    sectionID(string(section.ID)),
		"title":     section.Title,
		"icon_html": sanitizeIcon(section.Icon),
		"open":      opts.SectionOpen(section),
		"groups":    groups,
	}
}

func fieldView(field model.Field, opts render.RenderOptions) map[string]any {
	value := opts.Values[field.Name]
	errors := render.MergeFormErrors(opts.Errors[field.Name])

	kind := "input"
	switch field.Type {
	case model.FieldTypeSelect:
		kind = "select"
	case model.FieldTypeRadio:
		kind = "radio"
	}

	view := map[string]any{
		"name":             field.Name,
		"id":               controlID(field.Name),
		"error_id":         errorID(field.Name),
		"label":            field.Label,
		"kind":             kind,
		"type":             htmlInputType(string(field.Type)),
		"inputmode":        inputMode(string(field.Input)),
		"required":         field.Required,
		"value":            value,
		"placeholder":      field.Placeholder,
		"description_html": sanitizeText(field.Description),
		"maxlength":        field.MaxLength,
		"errors":           errors,
		"invalid":          len(errors) > 0,
		"disabled":         opts.Disabled[field.Name],
		"autofocus":        opts.Focus != "" && opts.Focus == field.Name,
	}

	if kind != "input" {
		options, optgroups := optionViews(field, opts.OptionsFor(field), value)
		view["options"] = options
		view["optgroups"] = optgroups
	}
	return view
}

// optionViews splits options into ungrouped entries and optgroups, keeping
// the order in which groups first appear.
func optionViews(field model.Field, options []model.Option, value string) ([]map[string]any, []map[string]any) {
	var plain []map[string]any
	var groups []map[string]any
	index := make(map[string]int)

	for i, option := range options {
		label := option.Label
		if label == "" {
			label = option.Value
		}
		entry := map[string]any{
			"value":    option.Value,
			"label":    label,
			"selected": option.Value == value,
			"id":       controlID(field.Name) + "-" + strconv.Itoa(i),
		}
		if option.Group == "" {
			plain = append(plain, entry)
			continue
		}
		pos, ok := index[option.Group]
		if !ok {
			pos = len(groups)
			index[option.Group] = pos
			groups = append(groups, map[string]any{"label": option.Group, "options": []map[string]any{}})
		}
		groups[pos]["options"] = append(groups[pos]["options"].([]map[string]any), entry)
	}
	return plain, groups
}
