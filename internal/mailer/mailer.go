package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

const (
	MAX_RETRY               = 3
	VERIFY_EMAIL_TEMPLATE   = "verify_email.tmpl"
	RESET_PASSWORD_TEMPLATE = "reset_password.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, toUsername, toEmail string, data any) (int, error)
}

type VerifyEmailData struct {
	AppName   string
	FullName  string
	VerifyURL string
	ExpiresIn string
}

type ResetPasswordData struct {
	AppName   string
	FullName  string
	ResetURL  string
	ExpiresIn string
}

// Every template defines a "subject" and a "body" block.
func renderTemplate(templateFile string, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", fmt.Errorf("parse mail template: %w", err)
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", fmt.Errorf("extract subject from mail template: %w", err)
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", fmt.Errorf("extract body from mail template: %w", err)
	}

	return subject.String(), body.String(), nil
}
