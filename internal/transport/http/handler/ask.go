package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/app"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/transport/http/response"
)

type AskHandler struct {
	qaService *app.QAService
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

func NewAskHandler(qaService *app.QAService) *AskHandler {
	return &AskHandler{qaService: qaService}
}

func (h *AskHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.qaService.Ask(c.Request.Context(), app.AskInput{Question: req.Question})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrQuestionEmpty):
			response.Error(c, http.StatusBadRequest, response.CodeEmptyQuestion, err.Error())
		case errors.Is(err, app.ErrAuth):
			response.Error(c, http.StatusServiceUnavailable, response.CodeSessionHalted, err.Error())
		case errors.Is(err, app.ErrDocumentFetch):
			response.Error(c, http.StatusServiceUnavailable, response.CodeContextFailed, err.Error())
		case errors.Is(err, app.ErrCompletion):
			response.Error(c, http.StatusBadGateway, response.CodeCompletionFailed, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *AskHandler) Status(c *gin.Context) {
	response.OK(c, h.qaService.Status())
}
