package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"standort-api/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the key-protected admin surface
type AdminHandler struct {
	service  AdminService
	adminKey string
}

// Service interface for dependency injection
type AdminService interface {
	Records(ctx context.Context) ([]models.Location, error)
	Delete(ctx context.Context, id int64) error
	Reset(ctx context.Context) error
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc AdminService, adminKey string) *AdminHandler {
	return &AdminHandler{service: svc, adminKey: adminKey}
}

// adminRecord is the admin listing view model, with the creation date field
// split into separate date/time display values.
type adminRecord struct {
	models.Location
	Date string
	Time string
}

func toAdminRecords(locations []models.Location) []adminRecord {
	records := make([]adminRecord, 0, len(locations))
	for _, loc := range locations {
		rec := adminRecord{Location: loc, Date: loc.Erstellungsdatum}
		if date, timePart, found := strings.Cut(loc.Erstellungsdatum, " "); found {
			rec.Date = date
			rec.Time = timePart
		}
		records = append(records, rec)
	}
	return records
}

// Admin handles GET /admin?key= requests
func (h *AdminHandler) Admin(c *gin.Context) {
	h.renderAdmin(c, c.Query("key"))
}

type adminLoginRequest struct {
	Key string `json:"key" form:"key"`
}

// Login handles POST /admin/login requests
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	c.ShouldBind(&req)
	h.renderAdmin(c, req.Key)
}

func (h *AdminHandler) renderAdmin(c *gin.Context, key string) {
	// The attempted key is never logged.
	if key != h.adminKey {
		c.HTML(http.StatusOK, "admin.html", gin.H{
			"error":            "Ungültiger Admin-Schlüssel",
			"showPasswordForm": true,
		})
		return
	}

	locations, err := h.service.Records(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fehler beim Abrufen der Standorte"})
		return
	}

	if len(locations) == 0 {
		c.HTML(http.StatusOK, "admin.html", gin.H{"key": key, "error": "Keine Standorte gefunden!"})
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{"key": key, "optionHistory": toAdminRecords(locations)})
}

type adminDeleteRequest struct {
	ID  int64  `json:"id" form:"id"`
	Key string `json:"key" form:"key"`
}

// Delete handles POST /admin/delete requests
func (h *AdminHandler) Delete(c *gin.Context) {
	var req adminDeleteRequest
	c.ShouldBind(&req)

	if req.Key != h.adminKey {
		c.HTML(http.StatusOK, "admin.html", gin.H{
			"error":            "Ungültiger Admin-Schlüssel",
			"showPasswordForm": true,
		})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fehler beim Löschen des Standorts"})
		return
	}

	c.Redirect(http.StatusFound, "/admin?key="+url.QueryEscape(req.Key))
}

// Reset handles POST /reset requests
func (h *AdminHandler) Reset(c *gin.Context) {
	var req adminLoginRequest
	c.ShouldBind(&req)

	if req.Key != h.adminKey {
		c.HTML(http.StatusUnauthorized, "admin.html", gin.H{"failed": "Ungültiger Admin-Schlüssel!"})
		return
	}

	if err := h.service.Reset(c.Request.Context()); err != nil {
		c.HTML(http.StatusInternalServerError, "admin.html", gin.H{"error": "Fehler beim Löschen der Standort-Logs"})
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{"success": "Standort-Logs erfolgreich gelöscht!"})
}
