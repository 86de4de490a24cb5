package catalog

import (
	"context"
	"sync"

	"github.com/vodintech/caragecarcare/internal/models"
)

// MockClient is a mock catalog gateway client for testing
type MockClient struct {
	mu          sync.Mutex
	brands      []models.CarBrand
	fuelIcons   []FuelIcon
	packages    map[string][]models.ServicePackage
	baseURL     string
	brandsErr   error
	iconsErr    error
	packagesErr error
	submitErr   error
	submitted   []SubmitRequest
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithBrands sets the brands to return
func WithBrands(brands []models.CarBrand) MockOption {
	return func(m *MockClient) {
		m.brands = brands
	}
}

// WithBrandsError sets an error to return from FetchBrands
func WithBrandsError(err error) MockOption {
	return func(m *MockClient) {
		m.brandsErr = err
	}
}

// WithFuelIcons sets the fuel icons to return
func WithFuelIcons(icons []FuelIcon) MockOption {
	return func(m *MockClient) {
		m.fuelIcons = icons
	}
}

// WithFuelIconsError sets an error to return from FetchFuelIcons
func WithFuelIconsError(err error) MockOption {
	return func(m *MockClient) {
		m.iconsErr = err
	}
}

// WithPackages sets the packages to return for a category
func WithPackages(category string, packages []models.ServicePackage) MockOption {
	return func(m *MockClient) {
		m.packages[category] = packages
	}
}

// WithPackagesError sets an error to return from FetchPackages
func WithPackagesError(err error) MockOption {
	return func(m *MockClient) {
		m.packagesErr = err
	}
}

// WithSubmitError sets an error to return from Submit
func WithSubmitError(err error) MockOption {
	return func(m *MockClient) {
		m.submitErr = err
	}
}

// NewMockClient creates a mock catalog client preloaded with fixture data
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		baseURL:   "http://mock-catalog.local",
		brands:    DefaultMockBrands(),
		fuelIcons: DefaultMockFuelIcons(),
		packages: map[string][]models.ServicePackage{
			"maintenance": DefaultMockPackages(),
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BaseURL returns the configured base URL
func (m *MockClient) BaseURL() string {
	return m.baseURL
}

// FetchBrands returns the configured mock brands or error
func (m *MockClient) FetchBrands(ctx context.Context) ([]models.CarBrand, error) {
	if m.brandsErr != nil {
		return nil, m.brandsErr
	}
	return m.brands, nil
}

// FetchFuelIcons returns the configured mock fuel icons or error
func (m *MockClient) FetchFuelIcons(ctx context.Context) ([]FuelIcon, error) {
	if m.iconsErr != nil {
		return nil, m.iconsErr
	}
	return m.fuelIcons, nil
}

// FetchPackages returns the configured mock packages for a category or error
func (m *MockClient) FetchPackages(ctx context.Context, category string) ([]models.ServicePackage, error) {
	if m.packagesErr != nil {
		return nil, m.packagesErr
	}
	return m.packages[category], nil
}

// Submit records the request and returns a canned acknowledgment
func (m *MockClient) Submit(ctx context.Context, req SubmitRequest) (*SubmitAck, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	m.mu.Lock()
	m.submitted = append(m.submitted, req)
	m.mu.Unlock()
	return &SubmitAck{Message: "Request submitted successfully"}, nil
}

// Submitted returns the requests recorded by Submit (for testing)
func (m *MockClient) Submitted() []SubmitRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SubmitRequest, len(m.submitted))
	copy(out, m.submitted)
	return out
}

// DefaultMockBrands returns a sample brand catalog for testing
func DefaultMockBrands() []models.CarBrand {
	return []models.CarBrand{
		{
			Name:    "Maruti Suzuki",
			LogoURL: "/media/brands/maruti.png",
			Models: []models.CarModel{
				{Name: "Swift", ImageURL: "/media/models/swift.png", FuelTypes: []string{"Petrol", "CNG"}},
				{Name: "Baleno", ImageURL: "/media/models/baleno.png", FuelTypes: []string{"Petrol"}},
				{Name: "Dzire", ImageURL: "/media/models/dzire.png", FuelTypes: []string{"Petrol", "CNG"}},
			},
		},
		{
			Name:    "Hyundai",
			LogoURL: "/media/brands/hyundai.png",
			Models: []models.CarModel{
				{Name: "i20", ImageURL: "/media/models/i20.png", FuelTypes: []string{"Petrol", "Diesel"}},
				{Name: "Creta", ImageURL: "/media/models/creta.png", FuelTypes: []string{"Petrol", "Diesel"}},
			},
		},
		{
			Name:    "Honda",
			LogoURL: "/media/brands/honda.png",
			Models: []models.CarModel{
				{Name: "City", ImageURL: "/media/models/city.png", FuelTypes: []string{"Petrol", "Diesel"}},
				{Name: "Amaze", ImageURL: "/media/models/amaze.png", FuelTypes: []string{"Petrol"}},
			},
		},
		{
			Name:    "Toyota",
			LogoURL: "/media/brands/toyota.png",
			Models: []models.CarModel{
				{Name: "Innova", ImageURL: "/media/models/innova.png", FuelTypes: []string{"Diesel"}},
				{Name: "Glanza", ImageURL: "/media/models/glanza.png", FuelTypes: []string{"Petrol"}},
			},
		},
		{
			Name:    "Tata",
			LogoURL: "/media/brands/tata.png",
			Models: []models.CarModel{
				{Name: "Nexon", ImageURL: "/media/models/nexon.png", FuelTypes: []string{"Petrol", "Diesel", "Electric"}},
				{Name: "Punch", ImageURL: "/media/models/punch.png", FuelTypes: []string{"Petrol"}},
			},
		},
	}
}

// DefaultMockFuelIcons returns sample fuel icon mappings for testing
func DefaultMockFuelIcons() []FuelIcon {
	return []FuelIcon{
		{Type: "Petrol", URL: "/media/fuel/petrol.png"},
		{Type: "Diesel", URL: "/media/fuel/diesel.png"},
		{Type: "CNG", URL: "/media/fuel/cng.png"},
		{Type: "Electric", URL: "/media/fuel/electric.png"},
	}
}

// DefaultMockPackages returns sample service packages for testing
func DefaultMockPackages() []models.ServicePackage {
	return []models.ServicePackage{
		{
			Name:            "Basic Service",
			Price:           3499,
			DiscountedPrice: 2999,
			Warranty:        "1000 Kms or 1 Month",
			Interval:        "Every 5000 Kms or 3 Months",
			Duration:        "4 Hrs",
			Services:        []string{"Engine Oil Change", "Oil Filter Replacement", "Air Filter Cleaning", "Interior Vacuuming"},
			Recommended:     false,
			Category:        "maintenance",
		},
		{
			Name:            "Standard Service",
			Price:           4999,
			DiscountedPrice: 4299,
			Warranty:        "1000 Kms or 1 Month",
			Interval:        "Every 10000 Kms or 6 Months",
			Duration:        "6 Hrs",
			Services:        []string{"Engine Oil Change", "Oil Filter Replacement", "Air Filter Replacement", "Coolant Top-up", "Battery Water Top-up", "Car Wash"},
			Recommended:     true,
			Category:        "maintenance",
		},
		{
			Name:            "Comprehensive Service",
			Price:           6999,
			DiscountedPrice: 5999,
			Warranty:        "1000 Kms or 1 Month",
			Interval:        "Every 15000 Kms or 12 Months",
			Duration:        "8 Hrs",
			Services:        []string{"Engine Oil Change", "Oil Filter Replacement", "Air Filter Replacement", "Fuel Filter Checkup", "Spark Plug Checkup", "Brake Pad Servicing", "Wheel Balancing", "Deep Cleaning"},
			Recommended:     false,
			Category:        "maintenance",
		},
	}
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
