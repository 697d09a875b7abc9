package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"inventario/internal/api/middleware"
	"inventario/internal/app/service"
	"inventario/internal/common"

	"github.com/go-chi/chi/v5"
)

type RecordHandler struct {
	recordService  *service.RecordService
	maxUploadBytes int64
}

func NewRecordHandler(rs *service.RecordService, maxUploadBytes int64) *RecordHandler {
	return &RecordHandler{recordService: rs, maxUploadBytes: maxUploadBytes}
}

func (h *RecordHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listRecords)
	r.Post("/", h.createRecord)
	r.Put("/{recordID}", h.updateRecord)
	r.Delete("/{recordID}", h.deleteRecord)
}

func (h *RecordHandler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordService.List(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, records)
}

func (h *RecordHandler) createRecord(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	input, imageBytes, err := h.parseRecordForm(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	record, err := h.recordService.Create(r.Context(), input, imageBytes, username)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, record)
}

func (h *RecordHandler) updateRecord(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	recordID := chi.URLParam(r, "recordID")

	input, imageBytes, err := h.parseRecordForm(r)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	record, err := h.recordService.Update(r.Context(), recordID, input, imageBytes, username)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, record)
}

func (h *RecordHandler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	if err := h.recordService.Delete(r.Context(), recordID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Registro eliminado exitosamente"})
}

// parseRecordForm reads the multipart form the frontend submits: plain fields
// plus an optional "imagen" file part.
func (h *RecordHandler) parseRecordForm(r *http.Request) (service.RecordInput, []byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		return service.RecordInput{}, nil, common.Errorf("invalid multipart form: %v: %w", err, common.ErrValidation)
	}

	cantidadStr := r.FormValue("cantidad")
	if cantidadStr == "" {
		return service.RecordInput{}, nil, common.Errorf("cantidad is required: %w", common.ErrValidation)
	}
	cantidad, err := strconv.Atoi(cantidadStr)
	if err != nil {
		return service.RecordInput{}, nil, common.Errorf("cantidad must be an integer: %w", common.ErrValidation)
	}

	input := service.RecordInput{
		Nombre:        r.FormValue("nombre"),
		Cantidad:      cantidad,
		Ubicacion:     r.FormValue("ubicacion"),
		Tipo:          r.FormValue("tipo"),
		Observaciones: r.FormValue("observaciones"),
		Serial:        r.FormValue("serial"),
		Estado:        r.FormValue("estado"),
	}

	file, _, err := r.FormFile("imagen")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, nil
		}
		return service.RecordInput{}, nil, common.Errorf("reading imagen: %v: %w", err, common.ErrValidation)
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return service.RecordInput{}, nil, common.Errorf("reading imagen: %v: %w", err, common.ErrValidation)
	}
	return input, imageBytes, nil
}
