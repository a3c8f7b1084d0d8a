// internal/handlers/taxonomy.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/catalog-admin/internal/i18n"
	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// TaxonomyHandler serves categories and styles. Each method returns the
// handler for one kind.
type TaxonomyHandler struct {
	taxonomyService *services.TaxonomyService
}

func NewTaxonomyHandler(taxonomyService *services.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// GET /admin/{categories,styles}
func (h *TaxonomyHandler) List(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		taxa, err := h.taxonomyService.List(c.Request.Context(), kind)
		if err != nil {
			respondError(c, err, i18n.KeyTaxonomyNotFound)
			return
		}
		utils.SuccessResponse(c, taxa)
	}
}

// POST /admin/{categories,styles}
func (h *TaxonomyHandler) Create(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		var req services.TaxonRequest
		if !bindJSON(c, &req) {
			return
		}

		taxon, err := h.taxonomyService.Add(c.Request.Context(), kind, &req)
		if err != nil {
			respondError(c, err, i18n.KeyTaxonomyNotFound)
			return
		}

		utils.CreatedResponse(c, gin.H{
			"message": i18n.T(lang, i18n.KeyTaxonomyCreated, kind),
			"entry":   taxon,
		})
	}
}

// DELETE /admin/{categories,styles}/:id
func (h *TaxonomyHandler) Delete(kind models.TaxonomyKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		id, ok := parseID(c)
		if !ok {
			return
		}

		if err := h.taxonomyService.Delete(c.Request.Context(), kind, id); err != nil {
			respondError(c, err, i18n.KeyTaxonomyNotFound)
			return
		}

		utils.SuccessResponse(c, gin.H{
			"message": i18n.T(lang, i18n.KeyTaxonomyDeleted, kind),
		})
	}
}
