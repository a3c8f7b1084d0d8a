// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-admin/internal/i18n"
	"github.com/javajoker/catalog-admin/internal/productform"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /admin/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}
	utils.SuccessResponse(c, products)
}

// GET /admin/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /admin/products/slug?name=
func (h *ProductHandler) PreviewSlug(c *gin.Context) {
	name := c.Query("name")
	utils.SuccessResponse(c, gin.H{"name": name, "slug": productform.Slugify(name)})
}

// POST /admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var data productform.FormData
	if !bindJSON(c, &data) {
		return
	}

	product, fieldErrs, err := h.productService.CreateFromData(c.Request.Context(), data)
	if len(fieldErrs) > 0 {
		utils.ValidationErrorResponse(c, fieldErrs)
		return
	}
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var data productform.FormData
	if !bindJSON(c, &data) {
		return
	}

	product, fieldErrs, err := h.productService.UpdateFromData(c.Request.Context(), id, data)
	if len(fieldErrs) > 0 {
		utils.ValidationErrorResponse(c, fieldErrs)
		return
	}
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /admin/products/:id?confirm=true
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.productService.DeleteProduct(c.Request.Context(), id, confirmed); err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}
