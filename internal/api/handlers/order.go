package handlers

import (
	"net/http"
	"strconv"

	"orderwatch/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	db *gorm.DB
}

func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

func (h *OrderHandler) List(c *gin.Context) {
	var orders []models.Order

	// Pagination
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	// Filters
	search := c.Query("search")
	date := c.Query("date")

	query := h.db.Model(&models.Order{})

	if search != "" {
		query = query.Where("product_name LIKE ? OR orderer_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	if date != "" {
		query = query.Where("payment_date LIKE ?", date+"%")
	}

	var total int64
	query.Count(&total)

	if err := query.Order("payment_date DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := h.db.First(&order, "product_order_id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": order})
}
