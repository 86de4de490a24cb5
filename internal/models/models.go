package models

// CarModel represents one model offered under a brand
type CarModel struct {
	Name      string   `json:"name"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	FuelTypes []string `json:"fuel_types"`
}

// CarBrand is an immutable catalog snapshot of a manufacturer and its models
type CarBrand struct {
	Name    string     `json:"brand"`
	LogoURL string     `json:"logoUrl,omitempty"`
	Models  []CarModel `json:"models"`
}

// Selection is the in-progress or committed vehicle choice for one session.
// Every field stays optional until the wizard commits it.
type Selection struct {
	Brand    string `json:"brand,omitempty"`
	Model    string `json:"model,omitempty"`
	FuelType string `json:"fuelType,omitempty"`
	Year     string `json:"year,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ServicePackage is a read-only catalog entry supplied per category
type ServicePackage struct {
	Name            string   `json:"name"`
	Price           float64  `json:"price"`
	DiscountedPrice float64  `json:"discountedPrice"`
	Warranty        string   `json:"warranty"`
	Interval        string   `json:"interval"`
	Duration        string   `json:"duration"`
	Services        []string `json:"services"`
	Recommended     bool     `json:"recommended"`
	Category        string   `json:"category"`
}

// CartItem is one quantity-aggregated row of the cart.
// PackageName is unique within a cart; Quantity never drops below 1.
type CartItem struct {
	PackageName string  `json:"packageName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

// VerificationState tracks the phone-verification machine for one checkout
type VerificationState struct {
	Phone            string `json:"phone"`
	CodeSent         bool   `json:"code_sent"`
	CountdownSeconds int    `json:"countdown_seconds"`
	Verified         bool   `json:"verified"`
	LastError        string `json:"last_error,omitempty"`
}

// Order is assembled at checkout and never persisted beyond the session
type Order struct {
	Reference    string            `json:"reference"`
	Selection    Selection         `json:"selection"`
	Items        []CartItem        `json:"items"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Address      string            `json:"address"`
	Total        float64           `json:"total"`
	Verification VerificationState `json:"verification"`
	PlacedAt     string            `json:"placed_at"`
}

// WSMessage is the envelope for messages pushed over the websocket
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
