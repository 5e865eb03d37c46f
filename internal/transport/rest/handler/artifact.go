package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"coursecraft/internal/model"
	"coursecraft/internal/service"
)

// ArtifactHandler handles artifact endpoints
type ArtifactHandler struct {
	artifactSvc *service.ArtifactService
}

func NewArtifactHandler(artifactSvc *service.ArtifactService) *ArtifactHandler {
	return &ArtifactHandler{artifactSvc: artifactSvc}
}

// SaveArtifactRequest is the upsert body. The id is optional on first
// save; type, schemaVersion and data are required and schemaVersion must
// be current for the type.
type SaveArtifactRequest struct {
	ID            string             `json:"id"`
	Type          model.ArtifactType `json:"type"`
	SchemaVersion string             `json:"schemaVersion"`
	Data          map[string]any     `json:"data"`
}

// List handles GET /v1/projects/{projectId}/artifacts?type=
func (h *ArtifactHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]
	typeFilter := model.ArtifactType(r.URL.Query().Get("type"))

	artifacts, err := h.artifactSvc.List(r.Context(), projectID, typeFilter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"artifacts": artifacts})
}

// Save handles POST /v1/projects/{projectId}/artifacts
func (h *ArtifactHandler) Save(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]
	author := requestAuthor(r)

	var req SaveArtifactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	artifact := model.NewArtifact(projectID, req.Type, req.SchemaVersion, author, req.Data)
	if req.ID != "" {
		artifact.ID = req.ID
	}

	if err := h.artifactSvc.Save(r.Context(), artifact); err != nil {
		writeServiceError(w, err)
		return
	}

	// Re-read so the response carries the stamped metadata.
	saved, err := h.artifactSvc.Get(r.Context(), artifact.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// Get handles GET /v1/artifacts/{artifactId}
func (h *ArtifactHandler) Get(w http.ResponseWriter, r *http.Request) {
	artifactID := mux.Vars(r)["artifactId"]

	artifact, err := h.artifactSvc.Get(r.Context(), artifactID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if artifact == nil {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}

	writeJSON(w, http.StatusOK, artifact)
}

// Delete handles DELETE /v1/artifacts/{artifactId}
func (h *ArtifactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	artifactID := mux.Vars(r)["artifactId"]

	if err := h.artifactSvc.Delete(r.Context(), artifactID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
