package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"coursecraft/internal/service"
)

// ExchangeHandler handles CSV import/export against the external
// authoring tool's spreadsheet layout
type ExchangeHandler struct {
	exchangeSvc *service.ExchangeService
}

func NewExchangeHandler(exchangeSvc *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeSvc: exchangeSvc}
}

// Import handles POST /v1/projects/{projectId}/questions/import with a
// CSV request body. The response always carries the complete per-row
// report; a malformed row is reported, never fatal for the batch.
func (h *ExchangeHandler) Import(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	report, err := h.exchangeSvc.ImportCSV(r.Context(), projectID, requestAuthor(r), r.Body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// Export handles GET /v1/projects/{projectId}/questions/export, writing
// the project's quiz questions as a CSV attachment.
func (h *ExchangeHandler) Export(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectId"]

	var buf bytes.Buffer
	if err := h.exchangeSvc.ExportCSV(r.Context(), projectID, &buf); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "questions-"+projectID+".csv"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
