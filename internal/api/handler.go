package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/safetravel/go-travel-safety/internal/alerts"
	"github.com/safetravel/go-travel-safety/internal/apperr"
	"github.com/safetravel/go-travel-safety/internal/geocode"
	"github.com/safetravel/go-travel-safety/internal/models"
	"github.com/safetravel/go-travel-safety/internal/store"
)

const (
	defaultRecentSearchLimit = 10
	maxRecentSearchLimit     = 100
	defaultMinAlerts         = 4
)

type PlaceSearcher interface {
	Search(ctx context.Context, origin models.Coordinates, radiusMeters int, category models.PlaceCategory, address string) ([]models.Place, error)
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*geocode.Result, error)
}

type SOSService interface {
	Raise(ctx context.Context, userID string, location models.Coordinates, emergencyType models.EmergencyType) (*models.SOSEvent, error)
	Resolve(ctx context.Context, id string) error
	SaveContact(ctx context.Context, c *models.EmergencyContact) error
	ContactsByUser(ctx context.Context, userID string) ([]models.EmergencyContact, error)
}

type Handler struct {
	store        *store.Store
	places       PlaceSearcher
	geocoder     Geocoder
	sos          SOSService
	broadcaster  *alerts.Broadcaster
	googleAPIKey string
}

func NewHandler(st *store.Store, places PlaceSearcher, geocoder Geocoder, sos SOSService, broadcaster *alerts.Broadcaster, googleAPIKey string) *Handler {
	return &Handler{
		store:        st,
		places:       places,
		geocoder:     geocoder,
		sos:          sos,
		broadcaster:  broadcaster,
		googleAPIKey: googleAPIKey,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/api/config", h.getConfig)

	r.POST("/api/places/search", h.searchPlaces)
	r.POST("/api/geocode", h.geocodeAddress)
	r.GET("/api/searches/recent", h.recentSearches)

	r.GET("/api/alerts", h.getAlerts)
	r.GET("/api/alerts/nearby", h.getNearbyAlerts)
	r.GET("/api/alerts/geojson", h.getAlertsGeoJSON)
	r.GET("/api/alerts/stream", h.streamAlerts)

	r.POST("/api/sos/alerts", h.raiseSOS)
	r.POST("/api/sos/alerts/:id/resolve", h.resolveSOS)
	r.GET("/api/sos/contacts", h.getContacts)
	r.POST("/api/sos/contacts", h.saveContact)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getConfig hands the maps API key to the frontend. The key is expected
// to be domain-restricted upstream.
func (h *Handler) getConfig(c *gin.Context) {
	var key any
	if h.googleAPIKey != "" {
		key = h.googleAPIKey
	}
	c.JSON(http.StatusOK, gin.H{"googleApiKey": key})
}

type searchRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    int      `json:"radius"`
	Category  string   `json:"category"`
	Address   string   `json:"address"`
}

func (h *Handler) searchPlaces(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}
	if req.Radius == 0 {
		req.Radius = models.DefaultSearchRadiusMeters
	}

	origin := models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	category := models.ParsePlaceCategory(req.Category)

	results, err := h.places.Search(c.Request.Context(), origin, req.Radius, category, req.Address)
	if err != nil {
		h.renderError(c, err, "failed to search places")
		return
	}

	c.JSON(http.StatusOK, results)
}

type geocodeRequest struct {
	Address string `json:"address"`
}

func (h *Handler) geocodeAddress(c *gin.Context) {
	var req geocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.geocoder.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		h.renderError(c, err, "failed to geocode address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"latitude":         result.Coordinates.Latitude,
		"longitude":        result.Coordinates.Longitude,
		"formattedAddress": result.FormattedAddress,
	})
}

func (h *Handler) recentSearches(c *gin.Context) {
	limit := defaultRecentSearchLimit
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= maxRecentSearchLimit {
			limit = n
		}
	}

	c.JSON(http.StatusOK, h.store.RecentSearches(limit))
}

func (h *Handler) getAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Alerts())
}

func (h *Handler) getNearbyAlerts(c *gin.Context) {
	var userLoc *models.Coordinates

	latStr, lngStr := c.Query("latitude"), c.Query("longitude")
	if latStr != "" || lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must both be valid numbers"})
			return
		}
		userLoc = &models.Coordinates{Latitude: lat, Longitude: lng}
	}

	minCount := defaultMinAlerts
	if m := c.Query("min"); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n > 0 {
			minCount = n
		}
	}

	c.JSON(http.StatusOK, alerts.Rank(h.store.Alerts(), userLoc, minCount))
}

func (h *Handler) getAlertsGeoJSON(c *gin.Context) {
	fc := toGeoJSON(h.store.Alerts())
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

// streamAlerts pushes newly ingested alerts as server-sent events until
// the client disconnects.
func (h *Handler) streamAlerts(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert streaming not enabled"})
		return
	}

	id, sub := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case alert, ok := <-sub:
			if !ok {
				return false
			}
			c.SSEvent("alert", alert)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

type sosRequest struct {
	UserID    string   `json:"userId"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Type      string   `json:"emergencyType"`
}

func (h *Handler) raiseSOS(c *gin.Context) {
	var req sosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}
	emergencyType, ok := models.ParseEmergencyType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown emergency type"})
		return
	}

	event, err := h.sos.Raise(c.Request.Context(), req.UserID,
		models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude},
		emergencyType)
	if err != nil {
		h.renderError(c, err, "failed to process SOS alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "alertId": event.ID})
}

func (h *Handler) resolveSOS(c *gin.Context) {
	if err := h.sos.Resolve(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err, "failed to resolve SOS alert")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) getContacts(c *gin.Context) {
	contacts, err := h.sos.ContactsByUser(c.Request.Context(), c.Query("userId"))
	if err != nil {
		h.renderError(c, err, "failed to fetch emergency contacts")
		return
	}
	if contacts == nil {
		contacts = []models.EmergencyContact{}
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) saveContact(c *gin.Context) {
	var contact models.EmergencyContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.sos.SaveContact(c.Request.Context(), &contact); err != nil {
		h.renderError(c, err, "failed to save emergency contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

// renderError maps the error taxonomy onto HTTP statuses. The fallback
// message keeps provider internals out of the response body.
func (h *Handler) renderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrProvider):
		var pe *apperr.ProviderError
		if errors.As(err, &pe) {
			c.JSON(http.StatusBadGateway, gin.H{"error": fallback, "providerStatus": pe.Status})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
	case errors.Is(err, apperr.ErrConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service not configured"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
