package http

import (
	"net/http"
)

func (s *Server) leetcodeHandler(w http.ResponseWriter, r *http.Request) error {
	stats, err := s.JudgeService.LeetCodeStats(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, stats)
	return nil
}

func (s *Server) codeforcesHandler(w http.ResponseWriter, r *http.Request) error {
	stats, err := s.JudgeService.CodeforcesStats(r.Context(), r.URL.Query().Get("username"))
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, stats)
	return nil
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	d, err := s.DashboardService.Dashboard(r.Context(), q.Get("leetcode"), q.Get("codeforces"))
	if err != nil {
		return err
	}

	writeJSONResponse(w, http.StatusOK, d)
	return nil
}
