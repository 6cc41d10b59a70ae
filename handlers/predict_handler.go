package handlers

import (
	"math/rand"
	"net/http"
	"strings"
	"unicode/utf8"

	"ipcpredict-backend/service"

	"github.com/gin-gonic/gin"
)

const disclaimer = "This is an AI-assisted legal awareness tool."

// suggestions is the fixed pool the framing layer picks from; cosmetic only,
// never produced by the pipeline.
var suggestions = []string{
	"Consider consulting a legal professional.",
	"You may approach the nearest police station.",
	"Document all relevant evidence.",
	"Ensure your safety before taking further action.",
	"Seek immediate help if the situation escalates.",
}

// SuggestionPicker selects an index into a pool of n suggestions. Injectable
// so handler tests stay deterministic.
type SuggestionPicker func(n int) int

// PredictHandler handles HTTP requests for IPC prediction
type PredictHandler struct {
	predictService *service.PredictService
	pickSuggestion SuggestionPicker
}

// PredictHandlerOption is a functional option for PredictHandler
type PredictHandlerOption func(*PredictHandler)

// WithSuggestionPicker overrides the default random suggestion selection
func WithSuggestionPicker(pick SuggestionPicker) PredictHandlerOption {
	return func(h *PredictHandler) {
		h.pickSuggestion = pick
	}
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictService *service.PredictService, opts ...PredictHandlerOption) *PredictHandler {
	h := &PredictHandler{
		predictService: predictService,
		pickSuggestion: rand.Intn,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PredictRequest represents the request body for a prediction
type PredictRequest struct {
	Text string `json:"text" binding:"required"`
}

// Predict handles POST /ipc/predict
func (h *PredictHandler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	rawText := strings.TrimSpace(req.Text)

	// Too-short input never reaches the pipeline and gets its own shape.
	if utf8.RuneCountInString(rawText) < h.predictService.Config().MinInputLength {
		c.JSON(http.StatusOK, gin.H{
			"prediction": nil,
			"message":    "Please describe the incident with sufficient details.",
			"disclaimer": "This tool requires incident details to provide a legal prediction.",
		})
		return
	}

	result := h.predictService.Predict(c.Request.Context(), service.PredictRequest{
		IncidentText: rawText,
	})

	var ipcSection interface{}
	if !result.Fallback {
		ipcSection = "IPC " + result.SectionNumber
	}

	c.JSON(http.StatusOK, gin.H{
		"prediction": gin.H{
			"ipc_section": ipcSection,
			"title":       result.Title,
			"confidence":  result.Confidence,
		},
		"explanation": result.Explanation,
		"suggestion":  suggestions[h.pickSuggestion(len(suggestions))],
		"disclaimer":  disclaimer,
	})
}
