package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/quantonganh/codebinge"
)

// Mailer is a testify mock of codebinge.Mailer
type Mailer struct {
	mock.Mock
}

var _ codebinge.Mailer = (*Mailer)(nil)

func (m *Mailer) Send(ctx context.Context, to string, doc *codebinge.Document) error {
	args := m.Called(to, doc)
	return args.Error(0)
}

// Renderer is a testify mock of codebinge.Renderer
type Renderer struct {
	mock.Mock
}

var _ codebinge.Renderer = (*Renderer)(nil)

func (m *Renderer) Render(subject, content string) (*codebinge.Document, error) {
	args := m.Called(subject, content)
	doc, _ := args.Get(0).(*codebinge.Document)
	return doc, args.Error(1)
}

// Dispatcher is a testify mock of codebinge.Dispatcher
type Dispatcher struct {
	mock.Mock
}

var _ codebinge.Dispatcher = (*Dispatcher)(nil)

func (m *Dispatcher) DispatchAll(ctx context.Context, recipients []string, doc *codebinge.Document) (int, error) {
	args := m.Called(recipients, doc)
	return args.Int(0), args.Error(1)
}

// NewsletterService is a testify mock of codebinge.NewsletterService
type NewsletterService struct {
	mock.Mock
}

var _ codebinge.NewsletterService = (*NewsletterService)(nil)

func (m *NewsletterService) Send(ctx context.Context, identity *codebinge.Identity, req codebinge.NewsletterRequest) (*codebinge.DispatchResult, error) {
	args := m.Called(identity, req)
	res, _ := args.Get(0).(*codebinge.DispatchResult)
	return res, args.Error(1)
}
