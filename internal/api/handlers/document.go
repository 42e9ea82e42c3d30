package handlers

import (
	"net/http"
	"strconv"

	"orderwatch/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DocumentHandler struct {
	db *gorm.DB
}

func NewDocumentHandler(db *gorm.DB) *DocumentHandler {
	return &DocumentHandler{db: db}
}

func (h *DocumentHandler) List(c *gin.Context) {
	var documents []models.PurchaseDocument

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	date := c.Query("date")
	company := c.Query("company")

	query := h.db.Model(&models.PurchaseDocument{})

	if date != "" {
		query = query.Where("date = ?", date)
	}

	if company != "" {
		query = query.Where("company_name LIKE ?", "%"+company+"%")
	}

	var total int64
	query.Count(&total)

	if err := query.Order("date DESC").Offset(offset).Limit(limit).Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": documents,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var document models.PurchaseDocument
	if err := h.db.First(&document, "doc_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch document"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": document})
}
