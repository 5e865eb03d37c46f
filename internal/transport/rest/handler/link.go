package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"coursecraft/internal/model"
	"coursecraft/internal/service"
)

// LinkHandler handles link endpoints
type LinkHandler struct {
	linkSvc *service.LinkService
}

func NewLinkHandler(linkSvc *service.LinkService) *LinkHandler {
	return &LinkHandler{linkSvc: linkSvc}
}

// SaveLinkRequest is the body for creating or replacing a link
type SaveLinkRequest struct {
	ID           string                 `json:"id"`
	SourceID     string                 `json:"sourceId"`
	TargetID     string                 `json:"targetId"`
	Relationship model.LinkRelationship `json:"relationship"`
}

// List handles GET /v1/projects/{projectId}/links
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	links, err := h.linkSvc.List(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"links": links})
}

// Save handles POST /v1/projects/{projectId}/links
func (h *LinkHandler) Save(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var req SaveLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link := &model.Link{
		ID:           req.ID,
		ProjectID:    projectID,
		SourceID:     req.SourceID,
		TargetID:     req.TargetID,
		Relationship: req.Relationship,
		CreatedBy:    requestAuthor(r),
	}

	if err := h.linkSvc.Save(r.Context(), link); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// Delete handles DELETE /v1/links/{linkId}
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	linkID := mux.Vars(r)["linkId"]

	if err := h.linkSvc.Delete(r.Context(), linkID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
