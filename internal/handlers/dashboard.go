// internal/handlers/dashboard.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/realtime"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	hub              *realtime.Hub
}

func NewDashboardHandler(dashboardService *services.DashboardService, hub *realtime.Hub) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		hub:              hub,
	}
}

// GET /admin/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	utils.SuccessResponse(c, h.dashboardService.Load(c.Request.Context()))
}

// GET /admin/dashboard/stream
// Sends the full dashboard once, then the reloaded feed of every collection
// that changes.
func (h *DashboardHandler) Stream(c *gin.Context) {
	sub := h.hub.Subscribe(
		models.CollectionProducts,
		models.CollectionCategories,
		models.CollectionStyles,
		models.CollectionOrders,
	)
	defer sub.Close()

	ctx := c.Request.Context()
	c.SSEvent("dashboard", h.dashboardService.Load(ctx))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			feed, err := h.dashboardService.LoadFeed(ctx, ev.Topic)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"feed":  ev.Topic,
					"error": err,
				}).Error("Failed to reload feed")
				return true
			}
			c.SSEvent(ev.Topic, feed)
			return true
		}
	})
}
