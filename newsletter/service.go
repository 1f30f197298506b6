// Package newsletter renders an admin newsletter and fans it out to every active subscriber.
package newsletter

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/quantonganh/codebinge"
)

// State is a step of one newsletter send
type State string

const (
	StateReceived    State = "received"
	StateAuthorizing State = "authorizing"
	StateValidating  State = "validating"
	StateLoading     State = "loading"
	StateRendering   State = "rendering"
	StateDispatching State = "dispatching"
	StateCompleted   State = "completed"
	StateRejected    State = "rejected"
	StateFailed      State = "failed"
)

var errSubjectAndContentRequired = codebinge.Errorf(codebinge.ErrInvalid, "Subject and content are required")

type service struct {
	guard         codebinge.Guard
	subscriptions codebinge.SubscriptionService
	renderer      codebinge.Renderer
	dispatcher    codebinge.Dispatcher
	logger        zerolog.Logger
}

// NewService returns the newsletter workflow: authorize, validate, load recipients, render, dispatch.
func NewService(
	guard codebinge.Guard,
	subscriptions codebinge.SubscriptionService,
	renderer codebinge.Renderer,
	dispatcher codebinge.Dispatcher,
	logger zerolog.Logger,
) codebinge.NewsletterService {
	return &service{
		guard:         guard,
		subscriptions: subscriptions,
		renderer:      renderer,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// Send runs one newsletter request to completion
func (s *service) Send(ctx context.Context, identity *codebinge.Identity, req codebinge.NewsletterRequest) (*codebinge.DispatchResult, error) {
	logger := s.logger.With().Str("subject", req.Subject).Logger()
	enter := func(state State) {
		logger.Debug().Str("state", string(state)).Msg("newsletter")
	}
	fail := func(state State, err error) error {
		logger.Warn().Err(err).Str("state", string(state)).Msg("newsletter")
		return err
	}

	enter(StateReceived)

	enter(StateAuthorizing)
	if err := s.guard.Authorize(identity); err != nil {
		return nil, fail(StateRejected, err)
	}

	enter(StateValidating)
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fail(StateFailed, errSubjectAndContentRequired)
	}

	enter(StateLoading)
	recipients, err := s.subscriptions.FindActive(ctx)
	if err != nil {
		return nil, fail(StateFailed, err)
	}
	if len(recipients) == 0 {
		return nil, fail(StateFailed, codebinge.ErrNoRecipients)
	}
	logger.Info().Int("recipients", len(recipients)).Msg("found active subscribers")

	enter(StateRendering)
	doc, err := s.renderer.Render(req.Subject, req.Content)
	if err != nil {
		return nil, fail(StateFailed, err)
	}

	enter(StateDispatching)
	sent, err := s.dispatcher.DispatchAll(ctx, recipients, doc)
	if err != nil {
		return nil, fail(StateFailed, err)
	}

	enter(StateCompleted)
	logger.Info().Int("sent", sent).Msg("newsletter sent")

	return &codebinge.DispatchResult{
		Success:   true,
		SentCount: sent,
	}, nil
}
