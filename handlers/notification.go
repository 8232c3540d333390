package handlers

import (
	"net/http"

	"servicehub/middleware"

	"github.com/gin-gonic/gin"
)

// ListNotificationsHandler handles GET /api/notifications?unreadOnly=.
func (hb *HandlerBundle) ListNotificationsHandler(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	unreadOnly := c.Query("unreadOnly") == "true"

	notifications, unread, err := hb.Notifications.List(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Notifications retrieved successfully",
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkNotificationReadHandler handles PUT /api/notifications/:id/read.
func (hb *HandlerBundle) MarkNotificationReadHandler(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	n, err := hb.Notifications.MarkRead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "notification": n})
}

// MarkAllNotificationsReadHandler handles PUT /api/notifications/read-all.
func (hb *HandlerBundle) MarkAllNotificationsReadHandler(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	if err := hb.Notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// DeleteNotificationHandler handles DELETE /api/notifications/:id.
func (hb *HandlerBundle) DeleteNotificationHandler(c *gin.Context) {
	userID, _ := middleware.Actor(c)
	if err := hb.Notifications.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		hb.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
