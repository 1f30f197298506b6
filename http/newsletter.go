package http

import (
	"net/http"

	"github.com/quantonganh/codebinge"
)

// sendNewsletterHandler authorizes before reading the body so that
// non-admin callers never see validation errors.
func (s *Server) sendNewsletterHandler(w http.ResponseWriter, r *http.Request) error {
	identity := identityFromContext(r.Context())
	if err := s.Guard.Authorize(identity); err != nil {
		return err
	}

	var req codebinge.NewsletterRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	result, err := s.NewsletterService.Send(r.Context(), identity, req)
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, result)
	return nil
}

func (s *Server) subscriberCountHandler(w http.ResponseWriter, r *http.Request) error {
	if err := s.Guard.Authorize(identityFromContext(r.Context())); err != nil {
		return err
	}

	count, err := s.SubscriptionService.CountActive(r.Context())
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, &codebinge.SubscriberCountResponse{
		Count: count,
	})
	return nil
}
