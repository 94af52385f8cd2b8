// internal/handlers/product.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clearlabel/transparency-backend/internal/models"
	"github.com/clearlabel/transparency-backend/internal/services"
	"github.com/clearlabel/transparency-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.productService.ListProducts(c.Request.Context(), *userID, params)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.SetPaginationHeaders(c, result)
	c.JSON(http.StatusOK, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// POST /products/:id/score
func (h *ProductHandler) ScoreProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	answers := models.NewAttributeMap()
	if err := c.ShouldBindJSON(&answers); err != nil {
		utils.BadRequestResponse(c, "Invalid answers payload", err.Error())
		return
	}

	score, product, err := h.productService.ScoreProduct(c.Request.Context(), id, answers)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":   score,
		"product": product,
	})
}

// GET /products/:id/report
func (h *ProductHandler) GetProductReport(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, pdf, err := h.productService.GenerateReport(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	filename := strings.ReplaceAll(product.Name, " ", "_") + "_Transparency_Report.pdf"
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		utils.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseProductID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(c *gin.Context) *uuid.UUID {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		return nil
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil
	}
	return &userID
}
