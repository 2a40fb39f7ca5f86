package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mindhaven/internal/http-api/dto"
	"mindhaven/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// PrescriptionHandler mounts under an auth-required group: every route needs
// the caller's identity and role.
type PrescriptionHandler struct {
	svc service.PrescriptionService
}

func NewPrescriptionHandler(svc service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{svc: svc}
}

func (h *PrescriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/", h.Issue)
	rg.GET("/mine", h.Mine)
	rg.GET("/issued", h.Issued)
	rg.GET("/:prescription_id", h.Get)
	rg.PUT("/:prescription_id", h.Amend)
}

func (h *PrescriptionHandler) Issue(c *gin.Context) {
	var req dto.CreatePrescriptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prescription, err := h.svc.Issue(ctx, callerID(c), callerRole(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotTherapist):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPatientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "patient not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, prescription)
}

// Mine lists the prescriptions issued to the caller as a patient.
func (h *PrescriptionHandler) Mine(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prescriptions, err := h.svc.ListForPatient(ctx, callerID(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}

// Issued lists the prescriptions the caller wrote as a therapist.
func (h *PrescriptionHandler) Issued(c *gin.Context) {
	page, pageSize := parsePagination(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prescriptions, err := h.svc.ListForTherapist(ctx, callerID(c), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prescription, err := h.svc.GetByID(ctx, callerID(c), callerRole(c), c.Param("prescription_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrescriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "prescription not found"})
		case errors.Is(err, service.ErrNotPrescriptionParty):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, prescription)
}

func (h *PrescriptionHandler) Amend(c *gin.Context) {
	var req dto.UpdatePrescriptionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	prescription, err := h.svc.Amend(ctx, callerID(c), c.Param("prescription_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPrescriptionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "prescription not found"})
		case errors.Is(err, service.ErrNotPrescriptionOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, prescription)
}
