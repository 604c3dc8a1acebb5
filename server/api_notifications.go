package shopserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	notificationhttpmapper "github.com/myjhye/shop/internal/domains/notifications/adapters/http/mapper"
	notificationsports "github.com/myjhye/shop/internal/domains/notifications/ports"
	apierrors "github.com/myjhye/shop/internal/shared/errors"
)

// NotificationsAPI implements the seller notification endpoints.
type NotificationsAPI struct {
	service notificationsports.Service
}

// NewNotificationsAPI wires dependencies.
func NewNotificationsAPI(service notificationsports.Service) NotificationsAPI {
	return NotificationsAPI{service: service}
}

// Get /api/notifications
func (api *NotificationsAPI) ListNotifications(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	page := notificationsports.Page{
		Number: parseIntQuery(c, "page", 1),
		Size:   parseIntQuery(c, "size", 0),
	}
	notifications, total, err := api.service.ListMyNotifications(c.Request.Context(), user.ID, page)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": notificationhttpmapper.FromDomainNotifications(notifications),
		"total": total,
	})
}

// Post /api/notifications/:id/read
func (api *NotificationsAPI) MarkRead(c *gin.Context) {
	user, ok := mustCurrentUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.MarkRead(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, notificationsports.ErrNotificationNotFound) {
			respondProblem(c, apierrors.NewNotFoundProblem("notification", id))
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}
