package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mahfuzul873/m873/internal/model"
	"github.com/mahfuzul873/m873/internal/pkg/errcode"
	"github.com/mahfuzul873/m873/internal/pkg/response"
	"github.com/mahfuzul873/m873/internal/service"
)

type FeatureHandler struct {
	features *service.FeatureService
}

func NewFeatureHandler(features *service.FeatureService) *FeatureHandler {
	return &FeatureHandler{features: features}
}

type featureRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sort_order"`
	Link        string `json:"link"`
}

// ListPublic serves the marketing site: ordered features with markdown
// descriptions rendered to HTML.
func (h *FeatureHandler) ListPublic(c *gin.Context) {
	features, err := h.features.ListPublic(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, features)
}

func (h *FeatureHandler) List(c *gin.Context) {
	features, err := h.features.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, features)
}

func (h *FeatureHandler) Create(c *gin.Context) {
	var req featureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	feature, err := h.features.Create(c.Request.Context(), &model.Feature{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
		Link:        req.Link,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, feature)
}

func (h *FeatureHandler) Update(c *gin.Context) {
	var req featureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	feature, err := h.features.Update(c.Request.Context(), &model.Feature{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		SortOrder:   req.SortOrder,
		Link:        req.Link,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, feature)
}

func (h *FeatureHandler) Delete(c *gin.Context) {
	if err := h.features.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
