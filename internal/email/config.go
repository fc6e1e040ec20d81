package email

import "time"

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// Enabled reports whether there is an SMTP server to talk to.
func (c *SMTPConfig) Enabled() bool {
	return c != nil && c.Host != "" && c.FromEmail != ""
}
