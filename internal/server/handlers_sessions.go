package server

import (
	"net/http"

	"practicelog/internal/api"
)

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	date, ok := s.pathDateOrBadRequest(w, r)
	if !ok {
		return
	}
	view, err := s.journal.DailyView(r.Context(), date)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.SessionResponse{
		Date:    view.Date,
		Session: *view.Session,
		Logs:    emptyIfNil(view.Logs),
	})
}

func (s *Server) handleAddSessionGoal(w http.ResponseWriter, r *http.Request) {
	date, ok := s.pathDateOrBadRequest(w, r)
	if !ok {
		return
	}
	var req api.SessionGoalRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if !validateID(req.GoalID) {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(errInvalidGoalID, ErrCodeInvalidID))
		return
	}
	if err := s.journal.AddGoalToSession(r.Context(), date, req.GoalID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveSessionGoal(w http.ResponseWriter, r *http.Request) {
	date, ok := s.pathDateOrBadRequest(w, r)
	if !ok {
		return
	}
	goalID, ok := s.pathIDOrBadRequest(w, r, "goalID")
	if !ok {
		return
	}
	if err := s.journal.RemoveGoalFromSession(r.Context(), date, goalID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	date, ok := s.pathDateOrBadRequest(w, r)
	if !ok {
		return
	}
	if err := s.journal.ClearSession(r.Context(), date); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
