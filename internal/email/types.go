package email

// Email is one outgoing message.
type Email struct {
	To       []string
	Cc       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds a template.
type TemplateData map[string]interface{}
