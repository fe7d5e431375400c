package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	apperrors "github.com/ethanmoreau/bikejourney/internal/errors"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/services"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all Gin API routes and injects the necessary
// service dependencies. The paths mirror what the 3D scene frontend
// calls; this layer stays thin and maps the service error taxonomy
// onto HTTP status codes.
func SetupRoutes(
	router *gin.Engine,
	landmarkService *services.LandmarkService,
	visitorService *services.VisitorService,
	visitService *services.VisitService,
	guestbookService *services.GuestbookService,
	analyticsService *services.AnalyticsService,
) {
	// Health check route, used by deployment probes
	router.GET("/health", HealthCheckHandler)

	// Landmark registry (list is the public scene view, the rest is admin-facing)
	router.GET("/landmarks", ListLandmarksHandler(landmarkService))
	router.POST("/landmarks", CreateLandmarkHandler(landmarkService))
	router.PUT("/landmarks/:id", UpdateLandmarkHandler(landmarkService))
	router.DELETE("/landmarks/:id", DeleteLandmarkHandler(landmarkService))

	// Visitor identity and visit recording
	router.POST("/visitors", UpsertVisitorHandler(visitorService))
	router.GET("/visitors", GetVisitorHandler(visitorService))
	router.POST("/visits", RecordVisitHandler(visitService))

	// Guestbook
	router.GET("/guestbook", ListGuestbookHandler(guestbookService))
	router.POST("/guestbook", AddGuestbookEntryHandler(guestbookService))

	// Analytics (read-only)
	router.GET("/analytics", QueryAnalyticsHandler(analyticsService))
}

// HealthCheckHandler handles the /health route to verify service status
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// landmarkRequest is the JSON body for landmark create and update
// calls. Updates are full-replace, so isActive is a required pointer:
// the caller must say explicitly whether the landmark stays visible.
type landmarkRequest struct {
	ID               string           `json:"id"`
	Title            string           `json:"title" binding:"required"`
	Description      string           `json:"description"`
	Details          string           `json:"details"`
	SplineObjectName string           `json:"splineObjectName" binding:"required"`
	Position         *models.Position `json:"position"`
	IsActive         *bool            `json:"isActive"`
}

func (r landmarkRequest) toInput() services.LandmarkInput {
	input := services.LandmarkInput{
		Title:            r.Title,
		Description:      r.Description,
		Details:          r.Details,
		SplineObjectName: r.SplineObjectName,
		Position:         r.Position,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	return input
}

// ListLandmarksHandler lists landmarks ordered by creation time.
// The public scene calls it without parameters and sees active
// landmarks only; the admin view passes ?all=true.
func ListLandmarksHandler(landmarkService *services.LandmarkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.Query("all") != "true"

		landmarks, err := landmarkService.List(activeOnly)
		if err != nil {
			log.Printf("Error fetching landmarks: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch landmarks"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"landmarks": landmarks})
	}
}

// CreateLandmarkHandler registers a new landmark, with an optional
// caller-supplied slug id.
func CreateLandmarkHandler(landmarkService *services.LandmarkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req landmarkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		landmark, err := landmarkService.Create(req.ID, req.toInput())
		if err != nil {
			if apperrors.IsValidation(err) || errors.Is(err, apperrors.ErrInvalidLandmarkID) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("Error creating landmark: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create landmark"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"landmark": landmark})
	}
}

// UpdateLandmarkHandler replaces all fields of an existing landmark.
func UpdateLandmarkHandler(landmarkService *services.LandmarkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var req landmarkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if req.IsActive == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isActive is required on update"})
			return
		}

		landmark, err := landmarkService.Update(id, req.toInput())
		if err != nil {
			if errors.Is(err, apperrors.ErrLandmarkNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Landmark not found"})
				return
			}
			if apperrors.IsValidation(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("Error updating landmark %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update landmark"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"landmark": landmark})
	}
}

// DeleteLandmarkHandler hard-deletes a landmark. Visits and guestbook
// entries referencing it stay behind with dangling ids.
func DeleteLandmarkHandler(landmarkService *services.LandmarkService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := landmarkService.Delete(id); err != nil {
			if errors.Is(err, apperrors.ErrLandmarkNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Landmark not found"})
				return
			}
			log.Printf("Error deleting landmark %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete landmark"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// upsertVisitorRequest carries client context for identity resolution.
// The address itself is derived from the transport, never the body.
type upsertVisitorRequest struct {
	UserAgent string `json:"userAgent"`
	Country   string `json:"country"`
	City      string `json:"city"`
}

// UpsertVisitorHandler resolves the caller's address to a stable
// visitor id, creating the visitor on first contact.
func UpsertVisitorHandler(visitorService *services.VisitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertVisitorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		visitor, err := visitorService.Resolve(c.ClientIP(), req.UserAgent, req.Country, req.City)
		if err != nil {
			log.Printf("Error resolving visitor: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track visitor"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"visitorId": visitor.ID})
	}
}

// GetVisitorHandler returns the caller's visitor record with its visit
// history. An unknown address answers with a null visitor, not an error.
func GetVisitorHandler(visitorService *services.VisitorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		visitor, err := visitorService.GetByIP(c.ClientIP())
		if err != nil {
			log.Printf("Error fetching visitor: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch visitor data"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"visitor": visitor})
	}
}

// recordVisitRequest is the JSON body for recording a visit or a
// landmark stop.
type recordVisitRequest struct {
	VisitorID  string  `json:"visitorId" binding:"required"`
	LandmarkID *string `json:"landmarkId"`
	Duration   *int    `json:"duration"`
}

// RecordVisitHandler writes a visit for the caller's visitor and bumps
// today's analytics aggregate.
func RecordVisitHandler(visitService *services.VisitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recordVisitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		visit, err := visitService.Record(c.ClientIP(), req.VisitorID, req.LandmarkID, req.Duration)
		if err != nil {
			if errors.Is(err, apperrors.ErrInvalidVisitor) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid visitor"})
				return
			}
			if errors.Is(err, apperrors.ErrLandmarkNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Landmark not found"})
				return
			}
			log.Printf("Error recording visit: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track visit"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"visit": visit})
	}
}

// ListGuestbookHandler lists approved entries, newest first, capped.
// ?landmarkId= narrows the listing to one landmark.
func ListGuestbookHandler(guestbookService *services.GuestbookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := guestbookService.List(c.Query("landmarkId"))
		if err != nil {
			log.Printf("Error fetching guestbook entries: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guestbook entries"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}

// addGuestbookEntryRequest is the JSON body for leaving a message.
type addGuestbookEntryRequest struct {
	LandmarkID string `json:"landmarkId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// AddGuestbookEntryHandler creates a new unapproved guestbook entry.
func AddGuestbookEntryHandler(guestbookService *services.GuestbookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addGuestbookEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		entry, err := guestbookService.Add(req.LandmarkID, req.Name, req.Message)
		if err != nil {
			if errors.Is(err, apperrors.ErrLandmarkNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Landmark not found"})
				return
			}
			if apperrors.IsValidation(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Printf("Error creating guestbook entry: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guestbook entry"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"entry": entry})
	}
}

// QueryAnalyticsHandler serves the trailing-window aggregate.
// ?days=N selects the window; invalid or missing values fall back to
// the configured default.
func QueryAnalyticsHandler(analyticsService *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
		if err != nil {
			days = 0
		}

		report, err := analyticsService.Query(days)
		if err != nil {
			log.Printf("Error querying analytics: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
