package handlers

import "github.com/vodintech/caragecarcare/internal/models"

// WizardView is the full wizard state for rendering one screen
type WizardView struct {
	Step      string            `json:"step"`
	Selection models.Selection  `json:"selection"`
	Brands    []models.CarBrand `json:"brands,omitempty"`
	Models    []models.CarModel `json:"models,omitempty"`
	Fuels     []string          `json:"fuels,omitempty"`
	FuelIcons map[string]string `json:"fuel_icons,omitempty"`
	YearStep  bool              `json:"year_step"`
}

// CartView is the cart contents plus totals
type CartView struct {
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Total    float64           `json:"total"`
}

// CheckoutView reports the verification state and whether the order fields
// (date, time, address) are reachable yet
type CheckoutView struct {
	Verification models.VerificationState `json:"verification"`
	OrderFields  bool                     `json:"order_fields"`
	ResendReady  bool                     `json:"resend_ready"`
}

// SubmitResponse acknowledges a committed selection
type SubmitResponse struct {
	Status    string           `json:"status"`
	Selection models.Selection `json:"selection"`
}

// OrderResponse acknowledges a placed order
type OrderResponse struct {
	Status string        `json:"status"`
	Order  *models.Order `json:"order"`
}
