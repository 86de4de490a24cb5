package services

// Service errors
var (
	ErrBrandsNotLoaded  = &ServiceError{Message: "brand catalog is not loaded"}
	ErrNoActiveBrand    = &ServiceError{Message: "no brand selected"}
	ErrNoActiveModel    = &ServiceError{Message: "no model selected"}
	ErrQuantityFloor    = &ServiceError{Message: "quantity must be at least 1"}
	ErrCountdownActive  = &ServiceError{Message: "a code was just sent, wait for the countdown"}
	ErrResendNotReady   = &ServiceError{Message: "resend is not available until the countdown reaches zero"}
	ErrNoCodeSent       = &ServiceError{Message: "no verification code has been sent"}
	ErrAlreadyVerified  = &ServiceError{Message: "phone is already verified"}
	ErrCartEmpty        = &ServiceError{Message: "cart is empty"}
	ErrSessionNotFound  = &ServiceError{Message: "session not found"}
	ErrOrderNotFound    = &ServiceError{Message: "order not found"}
	ErrYearStepDisabled = &ServiceError{Message: "year capture is not enabled"}
)

// ServiceError represents a service-level error with a fixed message
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
