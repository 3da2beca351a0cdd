package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Template identifies one of the transactional email layouts.
type Template string

const (
	TemplateWelcome       Template = "welcome"
	TemplateAdminCreation Template = "adminCreation"
	TemplateAdminUpdation Template = "adminUpdation"
	TemplateResetPassword Template = "resetPassword"
	TemplateNotification  Template = "notification"
)

// Data carries the variable parts of an email template.
type Data struct {
	Name     string
	Email    string
	Password string
	Code     string
	Message  string
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to string, tpl Template, data Data) error
}

// SESMailer sends email through Amazon SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

// NewSESMailer builds an SES backed mailer for the given region and
// verified sender address.
func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

// Send renders the template and dispatches it through SES.
func (m *SESMailer) Send(ctx context.Context, to string, tpl Template, data Data) error {
	subject, body, err := render(tpl, data)
	if err != nil {
		return err
	}

	_, err = m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(m.from),
	})
	return err
}

// LogMailer logs instead of sending, used when SES is not configured.
type LogMailer struct {
	log *zap.Logger
}

// NewLogMailer builds a mailer that only logs outgoing email.
func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send logs the rendered email without dispatching it.
func (m *LogMailer) Send(_ context.Context, to string, tpl Template, data Data) error {
	subject, _, err := render(tpl, data)
	if err != nil {
		return err
	}
	m.log.Info("email suppressed",
		zap.String("to", to),
		zap.String("template", string(tpl)),
		zap.String("subject", subject),
	)
	return nil
}

func render(tpl Template, data Data) (string, string, error) {
	switch tpl {
	case TemplateWelcome:
		return "Welcome to Funds Web",
			fmt.Sprintf("<h2>Welcome, %s!</h2><p>Your account has been created. You can sign in with <b>%s</b>.</p>", data.Name, data.Email),
			nil
	case TemplateAdminCreation:
		return "Your account credentials",
			fmt.Sprintf("<h2>Hello %s</h2><p>An account has been created for you.</p><p>Email: <b>%s</b><br>Password: <b>%s</b></p><p>Please change your password after first login.</p>", data.Name, data.Email, data.Password),
			nil
	case TemplateAdminUpdation:
		return "Your account has been updated",
			fmt.Sprintf("<h2>Hello %s</h2><p>Your account details were updated by an administrator.</p><p>%s</p>", data.Name, data.Message),
			nil
	case TemplateResetPassword:
		return "Password reset code",
			fmt.Sprintf("<h2>Password Reset</h2><p>Your reset code is <b>%s</b>. It expires in 15 minutes.</p><p>If you did not request this, ignore this email.</p>", data.Code),
			nil
	case TemplateNotification:
		return "New notification",
			fmt.Sprintf("<h2>%s</h2><p>%s</p>", data.Name, data.Message),
			nil
	default:
		return "", "", fmt.Errorf("unknown email template %q", tpl)
	}
}
