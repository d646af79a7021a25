package controller

import (
	"github.com/khan-masud/exam-station/internal/service"
	"github.com/khan-masud/exam-station/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsService *service.SettingsService
}

func NewSettingsController(settingsService *service.SettingsService) *SettingsController {
	return &SettingsController{SettingsService: settingsService}
}

// @Summary List system settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/admin/settings [get]
func (c *SettingsController) List(ctx *gin.Context) {
	settings, err := c.SettingsService.All()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

type settingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// @Summary Update a system setting
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body settingRequest true "key and value"
// @Success 200 {object} util.Response
// @Router /api/admin/settings [put]
func (c *SettingsController) Update(ctx *gin.Context) {
	var req settingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.SettingsService.Update(req.Key, req.Value); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{req.Key: req.Value})
}
