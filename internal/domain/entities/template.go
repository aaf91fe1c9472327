package entities

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateData is the value hook commands and branch names are rendered with.
type TemplateData struct {
	Version    string
	SemverType BumpKind
}

// RenderTemplate renders a configured string such as "release/{{.Version}}".
func RenderTemplate(name, text string, data TemplateData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", NewConfigError(fmt.Sprintf("%s is not a valid template", name)).WithCause(err)
	}

	var out bytes.Buffer
	if err = tmpl.Execute(&out, data); err != nil {
		return "", NewConfigError(fmt.Sprintf("failed to render %s", name)).WithCause(err)
	}
	return out.String(), nil
}
