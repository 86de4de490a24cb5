package handlers

import "github.com/vodintech/caragecarcare/internal/models"

// BrandSelectRequest picks a brand in the wizard
type BrandSelectRequest struct {
	Brand string `json:"brand"`
}

// ModelSelectRequest picks a model of the active brand
type ModelSelectRequest struct {
	Model string `json:"model"`
}

// FuelSelectRequest picks a fuel type of the active model
type FuelSelectRequest struct {
	Fuel string `json:"fuel"`
}

// YearSelectRequest records the model year
type YearSelectRequest struct {
	Year string `json:"year"`
}

// FilterRequest sets the live search filter for the current list step
type FilterRequest struct {
	Query string `json:"query"`
}

// WizardSubmitRequest commits the selection together with the contact phone
type WizardSubmitRequest struct {
	Phone string `json:"phone"`
}

// CartAddRequest puts a service package in the cart
type CartAddRequest struct {
	Package models.ServicePackage `json:"package"`
}

// CartQuantityRequest sets the quantity for a cart row
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SendCodeRequest dispatches a verification code
type SendCodeRequest struct {
	Phone string `json:"phone"`
}

// VerifyCodeRequest checks a submitted verification code
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// PlaceOrderRequest completes the checkout
type PlaceOrderRequest struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Address string `json:"address"`
}
