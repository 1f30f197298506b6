package codebinge

import "context"

// NewsletterRequest is the admin input for one newsletter send
type NewsletterRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// DispatchResult is the outcome of a completed send
type DispatchResult struct {
	Success   bool `json:"success"`
	SentCount int  `json:"sentCount"`
}

// Document is a rendered newsletter ready for delivery
type Document struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer turns a subject and plain-text body into a Document
type Renderer interface {
	Render(subject, content string) (*Document, error)
}

// Mailer delivers one document to one recipient
type Mailer interface {
	Send(ctx context.Context, to string, doc *Document) error
}

// Dispatcher fans a document out to every recipient and returns how many sends succeeded
type Dispatcher interface {
	DispatchAll(ctx context.Context, recipients []string, doc *Document) (int, error)
}

// NewsletterService is the interface that wraps the admin newsletter workflow
type NewsletterService interface {
	Send(ctx context.Context, identity *Identity, req NewsletterRequest) (*DispatchResult, error)
}
