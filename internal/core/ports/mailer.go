package ports

import (
	"context"
)

// Mailer sends transactional email. Sends are fire-and-forget from the
// caller's perspective: checkout never fails because an email did not go
// out, so implementations log and swallow transport errors.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
