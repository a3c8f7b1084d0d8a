// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-admin/internal/i18n"
	"github.com/javajoker/catalog-admin/internal/productform"
	"github.com/javajoker/catalog-admin/internal/repository"
	"github.com/javajoker/catalog-admin/internal/services"
	"github.com/javajoker/catalog-admin/internal/upload"
	"github.com/javajoker/catalog-admin/internal/utils"
)

// respondError maps service errors to responses. notFoundKey names the
// message for a missing record.
func respondError(c *gin.Context, err error, notFoundKey string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFoundResponse(c, notFoundKey)
	case errors.Is(err, services.ErrAdminEmailMissing):
		utils.ConfigErrorResponse(c, i18n.KeyConfigAdminEmailMissing)
	case errors.Is(err, services.ErrConfirmationRequired):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductConfirmationRequired), nil)
	case errors.Is(err, services.ErrInvalidOrderStatus):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderInvalidStatus), nil)
	case errors.Is(err, productform.ErrFormClosed):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyFormClosed))
	case errors.Is(err, upload.ErrUploadInFlight):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyFileUploadInFlight))
	default:
		if fieldErrs := utils.GetValidationErrors(err); len(fieldErrs) > 0 {
			utils.ValidationErrorResponse(c, fieldErrs)
			return
		}
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),
			"error": err,
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}
