package http

import (
	"net/http"
	"strings"

	"github.com/quantonganh/codebinge"
)

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) error {
	identity, err := requireIdentity(r)
	if err != nil {
		return err
	}

	p, err := s.ProfileService.FindByEmail(r.Context(), identity.Email)
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, p)
	return nil
}

// saveProfileHandler creates the caller's profile on first save.
func (s *Server) saveProfileHandler(w http.ResponseWriter, r *http.Request) error {
	identity, err := requireIdentity(r)
	if err != nil {
		return err
	}

	var req codebinge.ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	p, err := s.ProfileService.FindByEmail(r.Context(), identity.Email)
	if err != nil {
		if codebinge.ErrorCode(err) != codebinge.ErrNotFound {
			return err
		}
		p = &codebinge.Profile{Email: identity.Email}
	}

	p.Username = strings.TrimSpace(req.Username)
	p.LeetCodeUsername = strings.TrimSpace(req.LeetCodeUsername)
	p.CodeforcesUsername = strings.TrimSpace(req.CodeforcesUsername)

	if err := s.ProfileService.Save(r.Context(), p); err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, p)
	return nil
}
