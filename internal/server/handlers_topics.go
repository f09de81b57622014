package server

import (
	"net/http"

	"practicelog/internal/api"
)

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.journal.ListTopics(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(topics))
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req api.TopicCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	topic, err := s.journal.CreateTopic(r.Context(), req.Title)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, topic)
}

func (s *Server) handleRenameTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	var req api.TopicPatchRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if err := s.journal.RenameTopic(r.Context(), id, req.Title); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	topic, err := s.journal.GetTopic(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, topic)
}

func (s *Server) handleDeleteTopic(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	result, err := s.journal.DeleteTopic(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toWriteResponse(result))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	topicID, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	goals, err := s.journal.ListGoals(r.Context(), topicID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(goals))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	topicID, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	var req api.GoalCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	goal, err := s.journal.CreateGoal(r.Context(), topicID, req.Description, req.RepertoireID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, goal)
}
