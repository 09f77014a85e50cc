package handlers

import (
	"errors"
	"net/http"

	"github.com/SHoar/Wedding-AI/internal/adapter"
	"github.com/SHoar/Wedding-AI/internal/api"
	"github.com/SHoar/Wedding-AI/internal/rag"
	"github.com/SHoar/Wedding-AI/pkg/logger_i"
)

type Handler struct {
	service rag.Service
	model   string
	logger  *logger_i.Logger
}

// NewHandler serves questions through service. model is the name reported by /health.
func NewHandler(service rag.Service, model string) *Handler {
	return &Handler{service: service, model: model, logger: logger_i.NewLogger("Request Handler")}
}

// Health godoc
// @Summary      Liveness probe
// @Description  Reports that the service is up and which chat model it is configured with. Never calls the model.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok", Model: h.model})
}

// Ask godoc
// @Summary      Ask about a wedding
// @Description  Summarizes the supplied planning data, retrieves matching documentation and answers the question from both.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest     true  "Question plus live planning data"
// @Success      200      {object}  api.AskResponse
// @Failure      422      {object}  api.ErrorResponse  "Blank question or invalid body"
// @Failure      502      {object}  api.ErrorResponse  "Model call failed or returned nothing"
// @Failure      503      {object}  api.ErrorResponse  "Model credential not configured"
// @Router       /ask [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var requestData api.AskRequest
	if !h.decodeBody(w, r, &requestData) {
		return
	}
	if err := adapter.ValidateAskRequest(requestData); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	answer, err := h.service.Ask(r.Context(), adapter.ToAskInput(requestData))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(answer))
}

// AskDocs godoc
// @Summary      Ask the documentation
// @Description  Answers from the indexed documentation only. context_summary is always a fixed placeholder.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskDocsRequest  true  "Question"
// @Success      200      {object}  api.AskResponse
// @Failure      422      {object}  api.ErrorResponse   "Blank question or invalid body"
// @Failure      502      {object}  api.ErrorResponse   "Model call failed or returned nothing"
// @Failure      503      {object}  api.ErrorResponse   "Model credential not configured"
// @Router       /ask_docs [post]
func (h *Handler) AskDocs(w http.ResponseWriter, r *http.Request) {
	var requestData api.AskDocsRequest
	if !h.decodeBody(w, r, &requestData) {
		return
	}
	if err := adapter.ValidateQuestion(requestData.Question); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	answer, err := h.service.AskDocs(r.Context(), *requestData.Question)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(answer))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.logger.WithTrace(r.Context())

	var validation *rag.ValidationError
	var configuration *rag.ConfigurationError
	var upstream *rag.UpstreamError
	switch {
	case errors.As(err, &validation):
		log.Warn("Rejected request", "path", r.URL.Path, "detail", validation.Message)
		WriteErrorResponse(w, http.StatusUnprocessableEntity, validation.Message)
	case errors.As(err, &configuration):
		log.Error("Service not configured", "path", r.URL.Path)
		WriteErrorResponse(w, http.StatusServiceUnavailable, configuration.Message)
	case errors.As(err, &upstream):
		log.Error("Upstream failure", "path", r.URL.Path, "error", err)
		WriteErrorResponse(w, http.StatusBadGateway, upstream.Message)
	default:
		log.Error("Unexpected error", "path", r.URL.Path, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
