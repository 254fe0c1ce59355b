package mailer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/LucasBeserra/magnetic-report-api/internal/util"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type SendGridMailer struct {
	fromEmail string
	fromName  string
	client    *sendgrid.Client
	isSandBox bool
	logger    *zap.SugaredLogger
	// Without an api key mails are only logged.
	enabled bool
	backoff time.Duration
}

func NewSendgrid(apiKey string, fromEmail string, isProduction bool, logger *zap.SugaredLogger) *SendGridMailer {
	// For unit test
	if logger == nil {
		logger = util.NewLogger("test")
	}

	if apiKey == "" {
		logger.Warn("MAIL_SEND_GRID_API_KEY is empty, emails will be logged instead of sent")
	}

	return &SendGridMailer{
		fromEmail: fromEmail,
		fromName:  util.GetAppName(),
		client:    sendgrid.NewSendClient(apiKey),
		// Sandbox mode is only used to validate your request. The email will never be delivered while this feature is enabled!
		isSandBox: !isProduction,
		logger:    logger,
		enabled:   apiKey != "",
		backoff:   time.Second,
	}
}

// Data is the value the template is executed with, for example VerifyEmailData
// for VERIFY_EMAIL_TEMPLATE.
//
//	status, err := Send(mailer.VERIFY_EMAIL_TEMPLATE, user.FullName, user.Email, data)
func (m SendGridMailer) Send(templateFile, toUsername, toEmail string, data any) (int, error) {
	subject, body, err := renderTemplate(templateFile, data)
	if err != nil {
		m.logger.Errorf("Error occurred during mail template rendering, error: %v", err)
		return -1, err
	}

	if !m.enabled {
		m.logger.Infow("Mail delivery disabled, logging mail instead", "to", toEmail, "subject", subject, "template", templateFile)
		return http.StatusAccepted, nil
	}

	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toUsername, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", body)

	message.SetMailSettings(&mail.MailSettings{
		SandboxMode: &mail.Setting{
			Enable: &m.isSandBox,
		},
	})

	var retryErr error
	for i := 0; i < MAX_RETRY; i++ {
		response, err := m.client.Send(message)
		if err == nil && response.StatusCode < http.StatusInternalServerError {
			return response.StatusCode, nil
		}

		if err != nil {
			retryErr = err
		} else {
			retryErr = fmt.Errorf("sendgrid responded with status %d", response.StatusCode)
		}

		// linear backoff
		time.Sleep(m.backoff * time.Duration(i+1))
	}

	m.logger.Errorf("Failed to send email after %d attempt, error: %v", MAX_RETRY, retryErr)

	return -1, fmt.Errorf("failed to send email after %d attempt: %w", MAX_RETRY, retryErr)
}
