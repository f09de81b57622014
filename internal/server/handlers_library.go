package server

import (
	"net/http"

	"practicelog/internal/api"
	"practicelog/internal/journal"
)

func (s *Server) handleListContent(w http.ResponseWriter, r *http.Request) {
	items, err := s.journal.ListContent(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(items))
}

func (s *Server) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	var req api.ContentRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	item, err := s.journal.CreateContent(r.Context(), journal.ContentInput{
		Title: valueOrEmpty(req.Title),
		URL:   valueOrEmpty(req.URL),
		Type:  valueOrEmpty(req.Type),
		Tempo: valueOrEmpty(req.Tempo),
		Tags:  tagsOrNil(req.Tags),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	item, err := s.journal.GetContent(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	var req api.ContentRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	item, err := s.journal.UpdateContent(r.Context(), id, journal.ContentPatch{
		Title: req.Title,
		URL:   req.URL,
		Type:  req.Type,
		Tempo: req.Tempo,
		Tags:  req.Tags,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteContent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	if err := s.journal.DeleteContent(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRepertoire(w http.ResponseWriter, r *http.Request) {
	items, err := s.journal.ListRepertoire(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, emptyIfNil(items))
}

func (s *Server) handleCreateRepertoire(w http.ResponseWriter, r *http.Request) {
	var req api.RepertoireRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	in := journal.RepertoireInput{
		Title:    valueOrEmpty(req.Title),
		Composer: valueOrEmpty(req.Composer),
		Key:      valueOrEmpty(req.Key),
		Tags:     tagsOrNil(req.Tags),
	}
	if req.Progress != nil {
		in.Progress = *req.Progress
	}
	item, err := s.journal.CreateRepertoire(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetRepertoire(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	item, err := s.journal.GetRepertoire(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateRepertoire(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	var req api.RepertoireRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	item, err := s.journal.UpdateRepertoire(r.Context(), id, journal.RepertoirePatch{
		Title:    req.Title,
		Composer: req.Composer,
		Key:      req.Key,
		Progress: req.Progress,
		Tags:     req.Tags,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteRepertoire(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "id")
	if !ok {
		return
	}
	if err := s.journal.DeleteRepertoire(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func valueOrEmpty(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func tagsOrNil(tags *[]string) []string {
	if tags == nil {
		return nil
	}
	return *tags
}
