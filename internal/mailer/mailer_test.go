package mailer

import (
	"net/http"
	"strings"
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name        string
		template    string
		data        any
		wantSubject string
		wantInBody  []string
	}{
		{
			name:     "verify email",
			template: VERIFY_EMAIL_TEMPLATE,
			data: VerifyEmailData{
				AppName:   "Magnetic Report",
				FullName:  "Ana",
				VerifyURL: "http://localhost:3000/verify-email?token=abc",
				ExpiresIn: "24 horas",
			},
			wantSubject: "Magnetic Report: confirme seu email",
			wantInBody:  []string{"Olá Ana", "verify-email?token=abc", "24 horas"},
		},
		{
			name:     "reset password",
			template: RESET_PASSWORD_TEMPLATE,
			data: ResetPasswordData{
				AppName:   "Magnetic Report",
				FullName:  "Ana",
				ResetURL:  "http://localhost:3000/reset-password?token=xyz",
				ExpiresIn: "1 hora",
			},
			wantSubject: "Magnetic Report: redefinição de senha",
			wantInBody:  []string{"reset-password?token=xyz", "1 hora"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body, err := renderTemplate(tt.template, tt.data)
			if err != nil {
				t.Fatalf("renderTemplate() error = %v", err)
			}
			if subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
			for _, want := range tt.wantInBody {
				if !strings.Contains(body, want) {
					t.Errorf("body does not contain %q", want)
				}
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := renderTemplate("missing.tmpl", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

// Without an api key nothing leaves the process, so this never hits the network.
func TestSendWithoutAPIKey(t *testing.T) {
	m := NewSendgrid("", "noreply@example.com", false, nil)

	status, err := m.Send(VERIFY_EMAIL_TEMPLATE, "Ana", "ana@example.com", VerifyEmailData{FullName: "Ana"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if status != http.StatusAccepted {
		t.Errorf("status = %d, want %d", status, http.StatusAccepted)
	}
}
