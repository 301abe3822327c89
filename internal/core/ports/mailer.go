package ports

import "context"

// EmailKind labels outbound mail for metrics and templating.
type EmailKind string

const (
	EmailOTP     EmailKind = "otp"
	EmailWelcome EmailKind = "welcome"
)

// Email is a single outbound message.
type Email struct {
	To      string
	Kind    EmailKind
	Subject string
	Body    string
}

// Mailer delivers a single email. Implementations must honour ctx deadlines;
// a timeout counts as the mail relay being unreachable.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// MailDispatcher accepts mail for asynchronous delivery.
type MailDispatcher interface {
	Enqueue(msg Email)
}
