package server

import (
	"net/http"

	"practicelog/internal/api"
	"practicelog/internal/journal"
)

// handleUpdateGoal applies each requested change in turn. Repertoire changes report their stats fan-out.
func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	var req api.GoalPatchRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	ctx := r.Context()
	if req.Description != nil {
		if _, err := s.journal.UpdateGoalDescription(ctx, id, *req.Description); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}
	if req.IsComplete != nil {
		if _, err := s.journal.SetGoalComplete(ctx, id, *req.IsComplete); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}
	var result *journal.WriteResult
	if req.RepertoireID != nil {
		var err error
		result, err = s.journal.SetGoalRepertoire(ctx, id, *req.RepertoireID)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}

	goal, err := s.journal.GetGoal(ctx, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := api.GoalResponse{Goal: *goal}
	if result != nil {
		write := toWriteResponse(result)
		resp.Result = &write
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	result, err := s.journal.DeleteGoal(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toWriteResponse(result))
}

func (s *Server) handleListGoalContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	items, err := s.journal.ListGoalContent(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(items))
}

func (s *Server) handleLinkGoalContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	contentID, ok := s.pathIDOrBadRequest(w, r, "contentID")
	if !ok {
		return
	}
	if err := s.journal.LinkGoalContent(r.Context(), id, contentID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnlinkGoalContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	contentID, ok := s.pathIDOrBadRequest(w, r, "contentID")
	if !ok {
		return
	}
	if err := s.journal.UnlinkGoalContent(r.Context(), id, contentID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	goalID, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	logs, err := s.journal.ListLogs(r.Context(), goalID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(logs))
}

func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	goalID, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	var req api.LogCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	result, err := s.journal.CreateLog(r.Context(), journal.LogInput{
		GoalID:        goalID,
		Entry:         req.Entry,
		Date:          req.Date,
		ContentIDs:    req.ContentIDs,
		RepertoireIDs: req.RepertoireIDs,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, api.LogResponse{Log: *result.Log, Result: toWriteResponse(&result.WriteResult)})
}

func (s *Server) handleUpdateLog(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	var req api.LogPatchRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	log, err := s.journal.UpdateLog(r.Context(), id, req.Entry)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, log)
}

func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	result, err := s.journal.DeleteLog(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toWriteResponse(result))
}
