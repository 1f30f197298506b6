package http

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/quantonganh/codebinge"
)

const (
	subscribedMessage   = "Successfully subscribed to newsletter"
	unsubscribedMessage = "Successfully unsubscribed from newsletter"
)

func (s *Server) subscriptionToggleHandler(w http.ResponseWriter, r *http.Request) error {
	var req codebinge.SubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return err
	}

	logger := hlog.FromRequest(r)
	resp := &codebinge.SubscriptionResponse{Success: true}

	switch req.Action {
	case codebinge.ActionUnsubscribe:
		if err := s.SubscriptionService.Unsubscribe(r.Context(), req.Email); err != nil {
			return err
		}
		resp.Message = unsubscribedMessage
	default:
		if err := s.SubscriptionService.Subscribe(r.Context(), req.Email); err != nil {
			return err
		}
		resp.Message = subscribedMessage
	}
	logger.Info().Str("email", req.Email).Str("action", req.Action).Msg("subscription updated")

	writeJSONResponse(w, http.StatusOK, resp)
	return nil
}
