package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/image-qc-backend/internal/http/response"
	"github.com/yungbote/image-qc-backend/internal/services"
	"github.com/yungbote/image-qc-backend/internal/types"
)

type ImagesHandler struct {
	images  services.ImageService
	filters services.FilterService
}

func NewImagesHandler(images services.ImageService, filters services.FilterService) *ImagesHandler {
	return &ImagesHandler{images: images, filters: filters}
}

// GET /images?page&status&brand&category_name&subcategory_name&l3_category_name&product_variant_id&created_date_bucket
func (ih *ImagesHandler) ListImages(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	filter := types.ImageFilter{
		Page:          page,
		Status:        c.Query("status"),
		Brand:         c.Query("brand"),
		Categories:    c.QueryArray("category_name"),
		Subcategory:   c.Query("subcategory_name"),
		L3Category:    c.Query("l3_category_name"),
		PVIDContains:  c.Query("product_variant_id"),
		CreatedBucket: c.Query("created_date_bucket"),
	}

	result, err := ih.images.ListImages(c.Request.Context(), filter)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "database_query_failed", err)
		return
	}
	response.RespondOK(c, result)
}

// GET /filters
func (ih *ImagesHandler) ListFilters(c *gin.Context) {
	response.RespondOK(c, ih.filters.ListOptions(c.Request.Context()))
}
