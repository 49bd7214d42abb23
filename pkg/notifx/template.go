package notifx

import (
	"bytes"
	"html/template"
	"strings"
	"sync"
	texttemplate "text/template"
)

type emailTemplate struct {
	subject *texttemplate.Template
	html    *template.Template
}

// TemplateRegistry holds named subject and body templates.
type TemplateRegistry struct {
	templates map[string]emailTemplate
	mu        sync.RWMutex
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{templates: make(map[string]emailTemplate)}
}

func (r *TemplateRegistry) Register(name, subject, html string) error {
	s, err := texttemplate.New(name + ".subject").Parse(subject)
	if err != nil {
		return ErrRegistry.NewWithCause(CodeTemplateParse, err).WithDetail("template", name)
	}
	h, err := template.New(name).Parse(html)
	if err != nil {
		return ErrRegistry.NewWithCause(CodeTemplateParse, err).WithDetail("template", name)
	}

	r.mu.Lock()
	r.templates[name] = emailTemplate{subject: s, html: h}
	r.mu.Unlock()
	return nil
}

func (r *TemplateRegistry) Render(name string, data any) (subject, html string, err error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return "", "", ErrRegistry.New(CodeTemplateNotFound).WithDetail("template", name)
	}

	var sb, hb bytes.Buffer
	if err := t.subject.Execute(&sb, data); err != nil {
		return "", "", ErrRegistry.NewWithCause(CodeTemplateRender, err).WithDetail("template", name)
	}
	if err := t.html.Execute(&hb, data); err != nil {
		return "", "", ErrRegistry.NewWithCause(CodeTemplateRender, err).WithDetail("template", name)
	}
	return strings.TrimSpace(sb.String()), hb.String(), nil
}
