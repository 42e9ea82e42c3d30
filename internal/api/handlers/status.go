package handlers

import (
	"net/http"

	"orderwatch/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatusHandler struct {
	db *gorm.DB
}

func NewStatusHandler(db *gorm.DB) *StatusHandler {
	return &StatusHandler{db: db}
}

func (h *StatusHandler) Status(c *gin.Context) {
	var orderCount, documentCount int64
	h.db.Model(&models.Order{}).Count(&orderCount)
	h.db.Model(&models.PurchaseDocument{}).Count(&documentCount)

	c.JSON(http.StatusOK, gin.H{
		"orders":    orderCount,
		"documents": documentCount,
	})
}
