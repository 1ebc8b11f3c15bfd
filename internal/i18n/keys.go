// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySomethingWentWrong = "common.something_went_wrong"
	KeyValidationInvalid  = "validation.invalid"
	KeyInvalidData        = "validation.invalid_data"
	KeyRateLimited        = "common.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthUnauthorised       = "auth.unauthorised"
	KeyAuthAuthenticated      = "auth.authenticated"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthPasswordChanged    = "auth.password_changed"
	KeyAuthOldPasswordWrong   = "auth.old_password_wrong"
	KeyAuthAccountDeleted     = "auth.account_deleted"
	KeyAuthForbiddenOwner     = "auth.forbidden_owner"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Users
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserRoleUpdated    = "user.role_updated"
	KeyUserInvalidRole    = "user.invalid_role"

	// Products
	KeyProductNotFound = "product.not_found"

	// Cart
	KeyCartItemAdded      = "cart.item_added"
	KeyCartUpdated        = "cart.updated"
	KeyCartItemRemoved    = "cart.item_removed"
	KeyCartCleared        = "cart.cleared"
	KeyCartNotFound       = "cart.not_found"
	KeyCartItemNotPresent = "cart.item_not_present"
	KeyCartOutOfStock     = "cart.out_of_stock"
	KeyCartRetry          = "cart.retry"

	// Orders
	KeyOrderCreated              = "order.created"
	KeyOrderNotFound             = "order.not_found"
	KeyOrderNoneFound            = "order.none_found"
	KeyOrderStatusUpdated        = "order.status_updated"
	KeyOrderInvalidStatus        = "order.invalid_status"
	KeyOrderPaymentUpdated       = "order.payment_updated"
	KeyOrderInvalidPaymentStatus = "order.invalid_payment_status"
	KeyOrderPaymentVerified      = "order.payment_verified"
	KeyOrderPaymentFailed        = "order.payment_failed"
	KeyOrderPaymentUpstream      = "order.payment_upstream"
	KeyOrderPaymentNotOnline     = "order.payment_not_online"
	KeyOrderAlreadyPaid          = "order.already_paid"

	// Reviews
	KeyReviewAdded        = "review.added"
	KeyReviewNotPurchased = "review.not_purchased"
	KeyReviewDuplicate    = "review.duplicate"
	KeyReviewInvalidValue = "review.invalid_value"

	// Feature images
	KeyFeatureAdded        = "feature.added"
	KeyUploadFailed        = "upload.failed"
	KeyUploadTooLarge      = "upload.too_large"
	KeyUploadInvalidFormat = "upload.invalid_format"
)
