// internal/handlers/form.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/i18n"
	"github.com/javajoker/catalog-admin/internal/models"
	"github.com/javajoker/catalog-admin/internal/productform"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// FormHandler drives the product dialog held in the admin's workspace.
type FormHandler struct {
	workspaces      *services.WorkspaceService
	productService  *services.ProductService
	taxonomyService *services.TaxonomyService
}

func NewFormHandler(workspaces *services.WorkspaceService, productService *services.ProductService, taxonomyService *services.TaxonomyService) *FormHandler {
	return &FormHandler{
		workspaces:      workspaces,
		productService:  productService,
		taxonomyService: taxonomyService,
	}
}

// FormOptions are the choices the dialog offers.
type FormOptions struct {
	Categories []string       `json:"categories"`
	Styles     []string       `json:"styles"`
	Sizes      []models.Size  `json:"sizes"`
	Colors     []models.Color `json:"colors"`
}

type formView struct {
	productform.State
	Options FormOptions `json:"options"`
}

func workspace(c *gin.Context, workspaces *services.WorkspaceService) *services.Workspace {
	userID, _ := utils.GetUserIDFromContext(c)
	return workspaces.For(userID)
}

func (h *FormHandler) options(c *gin.Context) FormOptions {
	opts := FormOptions{
		Categories: []string{},
		Styles:     []string{},
		Sizes:      models.Sizes,
		Colors:     models.Palette,
	}

	// A taxonomy that fails to load leaves its list empty.
	if categories, err := h.taxonomyService.List(c.Request.Context(), models.TaxonomyCategories); err == nil {
		for _, t := range categories {
			opts.Categories = append(opts.Categories, t.Name)
		}
	} else {
		logrus.WithError(err).Warn("Failed to load categories for the product form")
	}
	if styles, err := h.taxonomyService.List(c.Request.Context(), models.TaxonomyStyles); err == nil {
		for _, t := range styles {
			opts.Styles = append(opts.Styles, t.Name)
		}
	} else {
		logrus.WithError(err).Warn("Failed to load styles for the product form")
	}
	return opts
}

func (h *FormHandler) render(c *gin.Context, form *productform.Form) {
	utils.SuccessResponse(c, formView{State: form.State(), Options: h.options(c)})
}

// GET /admin/form
func (h *FormHandler) GetForm(c *gin.Context) {
	h.render(c, workspace(c, h.workspaces).Form)
}

// POST /admin/form/new
func (h *FormHandler) OpenCreate(c *gin.Context) {
	form := workspace(c, h.workspaces).Form
	form.OpenCreate()
	h.render(c, form)
}

// POST /admin/form/edit/:id
func (h *FormHandler) OpenEdit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	form := workspace(c, h.workspaces).Form
	form.OpenEdit(product)
	h.render(c, form)
}

// PATCH /admin/form
// Fields absent from the body keep their current value.
func (h *FormHandler) UpdateForm(c *gin.Context) {
	form := workspace(c, h.workspaces).Form

	data := form.State().Data
	if !bindJSON(c, &data) {
		return
	}
	if err := form.Apply(data); err != nil {
		respondError(c, err, "")
		return
	}
	utils.SuccessResponse(c, form.State())
}

// POST /admin/form/submit
func (h *FormHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	form := workspace(c, h.workspaces).Form
	editing := form.State().Mode == productform.ModeEdit

	product, fieldErrs, err := form.Submit(c.Request.Context(), h.productService)
	if len(fieldErrs) > 0 {
		utils.ValidationErrorResponse(c, fieldErrs)
		return
	}
	if err != nil {
		respondError(c, err, i18n.KeyProductNotFound)
		return
	}

	if editing {
		utils.SuccessResponse(c, gin.H{
			"message": i18n.T(lang, i18n.KeyProductUpdated),
			"product": product,
		})
		return
	}
	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// POST /admin/form/cancel
func (h *FormHandler) Cancel(c *gin.Context) {
	form := workspace(c, h.workspaces).Form
	form.Close()
	utils.SuccessResponse(c, form.State())
}
