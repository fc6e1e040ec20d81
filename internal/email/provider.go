package email

import (
	"sync"

	"eventstaff_backend/internal/logger"
)

// Provider sends transactional mail.
type Provider interface {
	Send(email *Email) error
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error
	Close() error
}

// LogProvider logs mail instead of sending it. Used when SMTP is not set up.
type LogProvider struct {
	renderer TemplateRenderer
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(email *Email) error {
	logger.Info("email not sent, smtp disabled", "to", email.To, "subject", email.Subject)
	return nil
}

func (p *LogProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	if _, err := p.renderer.Render(templateName, data); err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject})
}

func (p *LogProvider) Close() error { return nil }

// MemoryProvider keeps sent mail in memory.
type MemoryProvider struct {
	renderer TemplateRenderer

	mu   sync.Mutex
	sent []Email
}

func NewMemoryProvider(renderer TemplateRenderer) *MemoryProvider {
	return &MemoryProvider{renderer: renderer}
}

func (p *MemoryProvider) Send(email *Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *email)
	return nil
}

func (p *MemoryProvider) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(&Email{To: to, Subject: subject, HTMLBody: body})
}

func (p *MemoryProvider) Close() error { return nil }

func (p *MemoryProvider) Sent() []Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Email(nil), p.sent...)
}
