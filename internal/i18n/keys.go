// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthSignInFailed       = "auth.sign_in_failed"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Configuration
	KeyConfigAdminEmailMissing = "config.admin_email_missing"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Products
	KeyProductCreated              = "product.created"
	KeyProductUpdated              = "product.updated"
	KeyProductDeleted              = "product.deleted"
	KeyProductNotFound             = "product.not_found"
	KeyProductConfirmationRequired = "product.confirmation_required"

	// Taxonomy
	KeyTaxonomyCreated  = "taxonomy.created"
	KeyTaxonomyDeleted  = "taxonomy.deleted"
	KeyTaxonomyNotFound = "taxonomy.not_found"

	// Orders
	KeyOrderStatusUpdated = "order.status_updated"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderInvalidStatus = "order.invalid_status"

	// Form
	KeyFormClosed = "form.closed"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess  = "file.upload_success"
	KeyFileUploadFailed   = "file.upload_failed"
	KeyFileUploadInFlight = "file.upload_in_flight"
	KeyFileInvalidType    = "file.invalid_type"
	KeyFileTooLarge       = "file.too_large"
)
