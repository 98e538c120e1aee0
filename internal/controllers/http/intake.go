package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/services"
)

// registerIntake mounts the public submit route and the admin routes of one intake kind.
func registerIntake[T any, P interface {
	*T
	domain.Intake
}](h *Handler, public, admin *gin.RouterGroup, path string, svc *services.IntakeService[T, P]) {
	public.POST(path, RateLimit(h.limiter, path), func(c *gin.Context) {
		record := new(T)
		if err := c.ShouldBindJSON(record); err != nil {
			badRequest(c, err)
			return
		}
		saved, err := svc.Submit(c.Request.Context(), record)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	})

	admin.GET(path, func(c *gin.Context) {
		records, err := svc.List(c.Request.Context(), adminKey(c, ""))
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"records": records})
	})

	admin.PATCH(path+"/:id/status", func(c *gin.Context) {
		req, bindErr := bindStatusUpdate(c)
		key := adminKey(c, req.AdminKey)
		if !h.authorize(c, svc.Authorize, key) {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}
		if bindErr != nil {
			badRequest(c, bindErr)
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), key, id, req.Status); err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
	})

	admin.DELETE(path+"/:id", func(c *gin.Context) {
		key := adminKey(c, optionalAdminBody(c))
		if !h.authorize(c, svc.Authorize, key) {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), key, id); err != nil {
			h.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
