// Package view holds the embedded HTML pages and email bodies.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed pages/*.html emails/*.html
var files embed.FS

// Page template names.
const (
	PageAdmin       = "admin.html"
	PageForm        = "form.html"
	PageInvalidLink = "invalid_link.html"
	PageSubmissions = "submissions.html"
)

// Email template names.
const (
	EmailInvite             = "invite.html"
	EmailAdminNotification  = "admin_notification.html"
	EmailClientConfirmation = "client_confirmation.html"
)

// Funcs are available to every page and email template.
var Funcs = template.FuncMap{
	"str":   deref,
	"num":   derefInt,
	"orNA":  orNA,
	"title": title,
	"when":  formatTime,
	"year":  func() int { return time.Now().Year() },
}

// Pages parses the page templates. The result is meant for gin's SetHTMLTemplate.
func Pages() (*template.Template, error) {
	return template.New("pages").Funcs(Funcs).ParseFS(files, "pages/*.html")
}

// MustPages is like Pages but panics on a parse error.
func MustPages() *template.Template {
	return template.Must(Pages())
}

// Emails renders email bodies.
type Emails struct {
	tmpl *template.Template
}

// NewEmails parses the email templates.
func NewEmails() (*Emails, error) {
	tmpl, err := template.New("emails").Funcs(Funcs).ParseFS(files, "emails/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Emails{tmpl: tmpl}, nil
}

// Render executes the named email template.
func (e *Emails) Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func deref(v interface{}) string {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return ""
		}
		return *p
	case string:
		return p
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func derefInt(p *int) string {
	if p == nil {
		return ""
	}
	return fmt.Sprint(*p)
}

func orNA(v interface{}) string {
	var s string
	switch p := v.(type) {
	case *int:
		s = derefInt(p)
	default:
		s = deref(v)
	}
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func title(v interface{}) string {
	s := deref(v)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatTime(v interface{}) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 03:04 PM")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 03:04 PM")
	}
	return ""
}
