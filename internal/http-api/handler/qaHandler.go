package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type QAHandler struct {
	svc service.QAService
}

func NewQAHandler(svc service.QAService) *QAHandler {
	return &QAHandler{svc: svc}
}

func (h *QAHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	rg.GET("/", h.List)
	rg.GET("/:question_id", h.Get)
	rg.POST("/", authRequired, h.Ask)
	rg.DELETE("/:question_id", authRequired, h.Delete)
	rg.POST("/:question_id/answers", authRequired, h.Answer)
}

func (h *QAHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	category := strings.TrimSpace(c.Query("category"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	questions, err := h.svc.ListQuestions(ctx, category, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QAHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	question, answers, err := h.svc.GetQuestion(ctx, c.Param("question_id"))
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"question": question,
		"answers":  answers,
	})
}

func (h *QAHandler) Ask(c *gin.Context) {
	var req dto.CreateQuestionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	question, err := h.svc.Ask(ctx, callerID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QAHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteQuestion(ctx, callerID(c), c.Param("question_id")); err != nil {
		switch {
		case errors.Is(err, service.ErrQuestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		case errors.Is(err, service.ErrNotQuestionOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QAHandler) Answer(c *gin.Context) {
	var req dto.CreateAnswerDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	answer, err := h.svc.Answer(ctx, callerID(c), c.Param("question_id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, answer)
}
