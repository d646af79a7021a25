package controller

import (
	"github.com/khan-masud/exam-station/internal/service"
	"github.com/khan-masud/exam-station/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
	Hub                 *service.EventHub
}

func NewNotificationController(notificationService *service.NotificationService, hub *service.EventHub) *NotificationController {
	return &NotificationController{
		NotificationService: notificationService,
		Hub:                 hub,
	}
}

// @Summary List the current user's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "limit"
// @Success 200 {object} util.Response
// @Router /api/notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	page, limit := pagination(ctx)
	notifications, total, err := c.NotificationService.List(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: notifications, Total: total, Page: page, Limit: limit})
}

// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "notification id"
// @Success 200 {object} util.Response
// @Router /api/notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.NotificationService.MarkRead(claims.UserID, id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"read": true})
}

// @Summary Upgrade to a websocket for live exam events
// @Tags notifications
// @Security BearerAuth
// @Router /api/ws/events [get]
func (c *NotificationController) Events(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	service.ServeEvents(c.Hub, ctx.Writer, ctx.Request, claims.UserID)
}
