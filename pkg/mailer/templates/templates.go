package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
	"time"

	"github.com/pkg/errors"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	// Basic info
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	// Company info
	CompanyName string `json:"CompanyName"`
	AppName     string `json:"AppName"`

	// URLs
	SupportURL string `json:"SupportURL"`
	AppURL     string `json:"AppURL"`

	// Hire request
	ClientName     string `json:"ClientName"`
	ClientEmail    string `json:"ClientEmail"`
	Details        string `json:"Details"`
	ProjectDetails string `json:"ProjectDetails"`
	Budget         string `json:"Budget"`

	Time   string    `json:"Time"`
	TimeAt time.Time `json:"TimeAt"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			return fallback
		}
		zero := reflect.Zero(rv.Type()).Interface()
		if reflect.DeepEqual(value, zero) {
			return fallback
		}
		return value
	}
}

// ---- FuncMaps ----

func baseFuncs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// ---- Template names ----

const (
	Welcome     = "welcome"
	HireRequest = "hire_request"
)

// Known reports whether name has embedded templates.
func Known(name string) bool {
	switch name {
	case Welcome, HireRequest:
		return true
	default:
		return false
	}
}

// set is the parsed subject, text and html templates of one email type.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	mu     sync.Mutex
	parsed = map[string]*set{}
)

// load parses <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl once per process.
func load(name string) (*set, error) {
	mu.Lock()
	defer mu.Unlock()
	if t, ok := parsed[name]; ok {
		return t, nil
	}

	subject, err := texttpl.New(name + ".subject.tmpl").Funcs(textFuncMap).ParseFS(FS, name+".subject.tmpl")
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s subject", name)
	}
	text, err := texttpl.New(name + ".text.tmpl").Funcs(textFuncMap).ParseFS(FS, name+".text.tmpl")
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s text", name)
	}
	html, err := htmpl.New(name + ".html.tmpl").Funcs(htmlFuncMap).ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s html", name)
	}

	t := &set{subject: subject, text: text, html: html}
	parsed[name] = t
	return t, nil
}

type executor interface {
	Execute(w io.Writer, data any) error
}

func execute(tpl executor, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render renders the subject, text and html bodies of the named email.
func Render(name string, data any) (subject string, text string, html string, err error) {
	t, err := load(name)
	if err != nil {
		return "", "", "", err
	}
	if subject, err = execute(t.subject, data); err != nil {
		return "", "", "", errors.Wrapf(err, "exec %s subject", name)
	}
	if text, err = execute(t.text, data); err != nil {
		return "", "", "", errors.Wrapf(err, "exec %s text", name)
	}
	if html, err = execute(t.html, data); err != nil {
		return "", "", "", errors.Wrapf(err, "exec %s html", name)
	}
	return strings.TrimSpace(subject), text, html, nil
}
