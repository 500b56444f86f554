package vanilla_test

import "io"

type stubTemplates struct{}

func (stubTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	return name, nil
}

func (stubTemplates) RenderString(content string, _ any, _ ...io.Writer) (string, error) {
	return content, nil
}

func (stubTemplates) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (stubTemplates) GlobalContext(any) error {
	return nil
}
