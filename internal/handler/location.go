package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"standort-api/internal/models"
	"standort-api/internal/service"

	"github.com/gin-gonic/gin"
)

// recentLimit caps the /last-locations listing.
const recentLimit = 5

// LocationHandler handles the public submission and export requests
type LocationHandler struct {
	service LocationService
}

// Service interface for dependency injection
type LocationService interface {
	Submit(ctx context.Context, sub service.Submission) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Location, error)
	ExportCSV(ctx context.Context) (string, error)
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(svc LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

type saveLocationRequest struct {
	Bezirk           string  `json:"bezirk" form:"bezirk"`
	XCoord           float64 `json:"x_coord" form:"x_coord"`
	YCoord           float64 `json:"y_coord" form:"y_coord"`
	Sonstiges        string  `json:"sonstiges" form:"sonstiges"`
	Erstellungsdatum string  `json:"erstellungsdatum" form:"erstellungsdatum"`
}

// SaveLocation handles POST /saveLocation requests
func (h *LocationHandler) SaveLocation(c *gin.Context) {
	var req saveLocationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Fehlende erforderliche Felder"})
		return
	}

	id, err := h.service.Submit(c.Request.Context(), service.Submission{
		Bezirk:           req.Bezirk,
		XCoord:           req.XCoord,
		YCoord:           req.YCoord,
		Sonstiges:        req.Sonstiges,
		Erstellungsdatum: req.Erstellungsdatum,
	})
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Fehlende erforderliche Felder"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Interner Serverfehler beim Speichern des Standorts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Standort erfolgreich gespeichert!", "id": id})
}

// LastLocations handles GET /last-locations requests
func (h *LocationHandler) LastLocations(c *gin.Context) {
	locations, err := h.service.Recent(c.Request.Context(), recentLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fehler beim Abrufen der Standorte"})
		return
	}

	if locations == nil {
		locations = []models.Location{}
	}
	c.JSON(http.StatusOK, locations)
}

// DownloadCSV handles GET /download-csv requests
func (h *LocationHandler) DownloadCSV(c *gin.Context) {
	csv, err := h.service.ExportCSV(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoRecords) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Keine Daten in der Datenbank vorhanden."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Fehler beim Erstellen der CSV-Datei"})
		return
	}

	filename := fmt.Sprintf("standorte_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
