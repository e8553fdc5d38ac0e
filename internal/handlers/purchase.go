// internal/handlers/purchase.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vendordesk/backend/internal/apperrors"
	"github.com/vendordesk/backend/internal/services"
	"github.com/vendordesk/backend/internal/utils"
)

type PurchaseHandler struct {
	purchaseService *services.PurchaseService
}

func NewPurchaseHandler(purchaseService *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// respondServiceError maps the service error taxonomy onto HTTP statuses:
// validation 400, not found 404, everything else 500.
func respondServiceError(c *gin.Context, err error, notFoundMessage string) {
	if verr, ok := apperrors.AsValidation(err); ok {
		utils.ValidationErrorResponse(c, verr.Fields)
		return
	}
	if apperrors.IsNotFound(err) {
		utils.NotFoundResponse(c, notFoundMessage)
		return
	}

	logrus.WithError(err).Error("Request failed")
	utils.InternalErrorResponse(c, "")
}

// GET /purchases
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	purchases, err := h.purchaseService.List()
	if err != nil {
		respondServiceError(c, err, "Purchase not found")
		return
	}

	c.JSON(http.StatusOK, purchases)
}

// GET /purchases/count
func (h *PurchaseHandler) GetNextID(c *gin.Context) {
	nextID, err := h.purchaseService.NextID()
	if err != nil {
		respondServiceError(c, err, "Purchase not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"nextId": nextID})
}

// POST /purchases
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req services.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	purchase, err := h.purchaseService.Create(&req)
	if err != nil {
		respondServiceError(c, err, "Purchase not found")
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// GET /purchases/:id
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	id, ok := parsePurchaseID(c)
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(id)
	if err != nil {
		respondServiceError(c, err, "Purchase not found")
		return
	}

	c.JSON(http.StatusOK, purchase)
}

// PUT /purchases/:id
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	id, ok := parsePurchaseID(c)
	if !ok {
		return
	}

	var req services.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	purchase, err := h.purchaseService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err, "Purchase not found")
		return
	}

	c.JSON(http.StatusOK, purchase)
}

// DELETE /purchases/:id
func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	id, ok := parsePurchaseID(c)
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(id); err != nil {
		respondServiceError(c, err, "Purchase not found")
		return
	}

	utils.MessageResponse(c, "Purchase deleted successfully")
}

// GET /purchases/vendor/:vendorName
func (h *PurchaseHandler) GetVendorPurchases(c *gin.Context) {
	vendorName := c.Param("vendorName")

	purchases, err := h.purchaseService.FindByVendorName(vendorName)
	if err != nil {
		respondServiceError(c, err, "Vendor not found")
		return
	}

	c.JSON(http.StatusOK, purchases)
}

func parsePurchaseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid ID format")
		return 0, false
	}
	return id, true
}
