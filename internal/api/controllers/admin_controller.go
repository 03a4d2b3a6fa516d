package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"poisurvey/internal/services"
	"poisurvey/pkg/utils"
)

type AdminController struct {
	recorderService services.RecorderServiceInterface
}

func NewAdminController(recorderService services.RecorderServiceInterface) *AdminController {
	return &AdminController{recorderService: recorderService}
}

// ListComparisons godoc
// @Summary List mirrored comparison rows
// @Tags Admin
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /admin/comparisons [get]
func (a *AdminController) ListComparisons(c *gin.Context) {
	page, pageSize, err := pagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	rows, err := a.recorderService.ListComparisons(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, rows, "")
}

func (a *AdminController) ListFinal(c *gin.Context) {
	page, pageSize, err := pagination(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	rows, err := a.recorderService.ListFinal(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, rows, "")
}

func pagination(c *gin.Context) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, utils.ErrInvalidPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		return 0, 0, utils.ErrInvalidPageSize
	}
	return page, pageSize, nil
}
