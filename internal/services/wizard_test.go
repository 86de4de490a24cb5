package services_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/vodintech/caragecarcare/internal/errors"
	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/services"
	"github.com/vodintech/caragecarcare/internal/store"
	"github.com/vodintech/caragecarcare/internal/testutil"
	"github.com/vodintech/caragecarcare/pkg/catalog"
)

// setupWizard creates a wizard with a mock catalog and an in-memory store
func setupWizard(t *testing.T, opts ...catalog.MockOption) (*services.Wizard, *catalog.MockClient, *store.Store) {
	t.Helper()
	st := testutil.NewTestStore(t)
	log := logger.New()
	client := catalog.NewMockClient(opts...)
	wiz := services.NewWizard(log, client, st, "test-session", false)
	return wiz, client, st
}

// openAndSelect walks the wizard to the given depth using mock catalog data
func openAndSelect(t *testing.T, wiz *services.Wizard, brand, model, fuel string) {
	t.Helper()
	ctx := context.Background()

	if err := wiz.OpenBrandPicker(ctx); err != nil {
		t.Fatalf("OpenBrandPicker failed: %v", err)
	}
	if brand == "" {
		return
	}
	if err := wiz.SelectBrand(brand); err != nil {
		t.Fatalf("SelectBrand(%s) failed: %v", brand, err)
	}
	if model == "" {
		return
	}
	if err := wiz.SelectModel(model); err != nil {
		t.Fatalf("SelectModel(%s) failed: %v", model, err)
	}
	if fuel == "" {
		return
	}
	if err := wiz.SelectFuel(fuel); err != nil {
		t.Fatalf("SelectFuel(%s) failed: %v", fuel, err)
	}
}

// TestOpenBrandPicker_LoadsCatalog tests that opening the picker fetches brands
func TestOpenBrandPicker_LoadsCatalog(t *testing.T) {
	wiz, _, _ := setupWizard(t)

	if err := wiz.OpenBrandPicker(context.Background()); err != nil {
		t.Fatalf("OpenBrandPicker failed: %v", err)
	}
	if wiz.Step() != services.StepBrands {
		t.Errorf("expected step brands, got %s", wiz.Step())
	}
	if len(wiz.VisibleBrands()) == 0 {
		t.Error("expected brand list to be populated")
	}
}

// TestOpenBrandPicker_GatewayFailureLeavesStateUnchanged tests that a fetch
// error keeps the wizard on the form
func TestOpenBrandPicker_GatewayFailureLeavesStateUnchanged(t *testing.T) {
	wiz, _, _ := setupWizard(t, catalog.WithBrandsError(apperrors.Fetchf("catalog unreachable")))

	err := wiz.OpenBrandPicker(context.Background())
	if err == nil {
		t.Fatal("expected an error when the catalog is unreachable")
	}
	if wiz.Step() != services.StepForm {
		t.Errorf("expected wizard to stay on form, got %s", wiz.Step())
	}
}

// TestSelectBrand_AdvancesToModels tests the happy path brand selection
func TestSelectBrand_AdvancesToModels(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "Hyundai", "", "")

	if wiz.Step() != services.StepModels {
		t.Errorf("expected step models, got %s", wiz.Step())
	}
	if wiz.Selection().Brand != "Hyundai" {
		t.Errorf("expected brand Hyundai, got %q", wiz.Selection().Brand)
	}
}

// TestSelectBrand_UnknownBrandRejected tests that off-catalog brands fail
func TestSelectBrand_UnknownBrandRejected(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "", "", "")

	err := wiz.SelectBrand("DeLorean")
	if err == nil {
		t.Fatal("expected an error for an unknown brand")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrValidation {
		t.Errorf("expected a validation error, got %v", err)
	}
}

// TestSelectBrand_BeforeOpenRejected tests that selection requires a loaded catalog
func TestSelectBrand_BeforeOpenRejected(t *testing.T) {
	wiz, _, _ := setupWizard(t)

	if err := wiz.SelectBrand("Hyundai"); err != services.ErrBrandsNotLoaded {
		t.Errorf("expected ErrBrandsNotLoaded, got %v", err)
	}
}

// TestSelectBrand_ClearsDownstreamChoices tests the cascade invalidation:
// re-picking a brand wipes model, fuel, and year
func TestSelectBrand_ClearsDownstreamChoices(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "Maruti Suzuki", "Swift", "Petrol")

	if err := wiz.SelectBrand("Hyundai"); err != nil {
		t.Fatalf("SelectBrand failed: %v", err)
	}

	sel := wiz.Selection()
	if sel.Brand != "Hyundai" {
		t.Errorf("expected brand Hyundai, got %q", sel.Brand)
	}
	if sel.Model != "" || sel.FuelType != "" || sel.Year != "" {
		t.Errorf("expected model/fuel/year to be cleared, got %+v", sel)
	}
}

// TestSelectModel_ClearsFuelAndYear tests that re-picking a model invalidates
// the fuel choice below it
func TestSelectModel_ClearsFuelAndYear(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "Maruti Suzuki", "Swift", "Petrol")

	// Back out to the model list and pick again
	wiz.GoBack()
	if err := wiz.SelectModel("Baleno"); err != nil {
		t.Fatalf("SelectModel failed: %v", err)
	}

	sel := wiz.Selection()
	if sel.Model != "Baleno" {
		t.Errorf("expected model Baleno, got %q", sel.Model)
	}
	if sel.FuelType != "" {
		t.Errorf("expected fuel to be cleared, got %q", sel.FuelType)
	}
}

// TestSelectModel_WrongBrandRejected tests that a model must belong to the
// active brand
func TestSelectModel_WrongBrandRejected(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "Hyundai", "", "")

	// Swift belongs to Maruti Suzuki, not Hyundai
	if err := wiz.SelectModel("Swift"); err == nil {
		t.Fatal("expected an error for a model of another brand")
	}
}

// TestSelectFuel_MustBelongToModel tests fuel membership validation
func TestSelectFuel_MustBelongToModel(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "Maruti Suzuki", "Swift", "")

	if err := wiz.SelectFuel("Electric"); err == nil {
		t.Fatal("expected an error for a fuel the model does not offer")
	}
	if err := wiz.SelectFuel("Petrol"); err != nil {
		t.Fatalf("SelectFuel(Petrol) failed: %v", err)
	}
	if wiz.Step() != services.StepForm {
		t.Errorf("expected wizard back on form, got %s", wiz.Step())
	}
}

// TestSelectYear_DisabledByDefault tests that the year step rejects calls
// when not enabled for the deployment
func TestSelectYear_DisabledByDefault(t *testing.T) {
	wiz, _, _ := setupWizard(t)

	if err := wiz.SelectYear("2022"); err != services.ErrYearStepDisabled {
		t.Errorf("expected ErrYearStepDisabled, got %v", err)
	}
}

// TestSelectYear_Enabled tests the year capture path
func TestSelectYear_Enabled(t *testing.T) {
	st := testutil.NewTestStore(t)
	wiz := services.NewWizard(logger.New(), catalog.NewMockClient(), st, "test-session", true)
	openAndSelect(t, wiz, "Tata", "Nexon", "Electric")

	if wiz.Step() != services.StepYears {
		t.Fatalf("expected step years, got %s", wiz.Step())
	}
	if err := wiz.SelectYear("2023"); err != nil {
		t.Fatalf("SelectYear failed: %v", err)
	}
	if wiz.Selection().Year != "2023" {
		t.Errorf("expected year 2023, got %q", wiz.Selection().Year)
	}
	if wiz.Step() != services.StepForm {
		t.Errorf("expected wizard back on form, got %s", wiz.Step())
	}
}

// TestGoBack_StepsOneLevel tests backward navigation through the stack
func TestGoBack_StepsOneLevel(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "Honda", "City", "")

	if wiz.Step() != services.StepFuels {
		t.Fatalf("expected step fuels, got %s", wiz.Step())
	}

	wiz.GoBack()
	if wiz.Step() != services.StepModels {
		t.Errorf("expected step models after back, got %s", wiz.Step())
	}

	wiz.GoBack()
	if wiz.Step() != services.StepBrands {
		t.Errorf("expected step brands after back, got %s", wiz.Step())
	}

	// Back at the brand list, another back is a no-op
	wiz.GoBack()
	if wiz.Step() != services.StepBrands {
		t.Errorf("expected back to be a no-op at brands, got %s", wiz.Step())
	}
}

// TestVisibleBrands_FilterIsCaseInsensitiveSubstring tests the live search
func TestVisibleBrands_FilterIsCaseInsensitiveSubstring(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "", "", "")

	tests := []struct {
		filter string
		want   int
	}{
		{"", 5},
		{"h", 2}, // Hyundai, Honda
		{"HYUN", 1},
		{"suzuki", 1},
		{"zzz", 0},
	}

	for _, tt := range tests {
		wiz.SetBrandFilter(tt.filter)
		if got := len(wiz.VisibleBrands()); got != tt.want {
			t.Errorf("filter %q: expected %d brands, got %d", tt.filter, tt.want, got)
		}
	}
}

// TestVisibleModels_FilterNarrowsActiveBrand tests model filtering
func TestVisibleModels_FilterNarrowsActiveBrand(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	openAndSelect(t, wiz, "Maruti Suzuki", "", "")

	wiz.SetModelFilter("sw")
	visible := wiz.VisibleModels()
	if len(visible) != 1 || visible[0].Name != "Swift" {
		t.Errorf("expected only Swift to match, got %+v", visible)
	}

	// Clearing the filter restores the full list
	wiz.SetModelFilter("")
	if got := len(wiz.VisibleModels()); got != 3 {
		t.Errorf("expected 3 models with empty filter, got %d", got)
	}
}

// TestFuelIcons_DegradesToEmptyOnError tests that icon failures are cosmetic
func TestFuelIcons_DegradesToEmptyOnError(t *testing.T) {
	wiz, _, _ := setupWizard(t, catalog.WithFuelIconsError(apperrors.Fetchf("boom")))

	icons := wiz.FuelIcons(context.Background())
	if icons == nil {
		t.Fatal("expected a non-nil map")
	}
	if len(icons) != 0 {
		t.Errorf("expected no icons on error, got %d", len(icons))
	}
}

// TestFuelIcons_KeyedByLowercaseType tests the icon map shape
func TestFuelIcons_KeyedByLowercaseType(t *testing.T) {
	wiz, _, _ := setupWizard(t)

	icons := wiz.FuelIcons(context.Background())
	if _, ok := icons["petrol"]; !ok {
		t.Errorf("expected a petrol icon, got %v", icons)
	}
}

// TestSubmit_RequiresCompleteSelection tests that the first missing field is
// reported in order
func TestSubmit_RequiresCompleteSelection(t *testing.T) {
	wiz, _, _ := setupWizard(t)
	ctx := context.Background()

	assertMissing := func(field string) {
		t.Helper()
		_, err := wiz.Submit(ctx)
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) {
			t.Fatalf("expected an application error, got %v", err)
		}
		if appErr.Field != field {
			t.Errorf("expected missing field %q, got %q", field, appErr.Field)
		}
	}

	assertMissing("brand")

	openAndSelect(t, wiz, "Honda", "", "")
	assertMissing("model")

	if err := wiz.SelectModel("City"); err != nil {
		t.Fatalf("SelectModel failed: %v", err)
	}
	assertMissing("fuelType")

	if err := wiz.SelectFuel("Petrol"); err != nil {
		t.Fatalf("SelectFuel failed: %v", err)
	}
	assertMissing("phone")
}

// TestSubmit_PersistsAndNotifies tests the happy path: the store record is
// written and the gateway notification fires in the background
func TestSubmit_PersistsAndNotifies(t *testing.T) {
	wiz, client, st := setupWizard(t)
	ctx := context.Background()

	openAndSelect(t, wiz, "Toyota", "Innova", "Diesel")
	wiz.SetPhone("9876543210")

	sel, err := wiz.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if sel.Brand != "Toyota" || sel.Phone != "9876543210" {
		t.Errorf("unexpected committed selection: %+v", sel)
	}
	if wiz.Step() != services.StepForm {
		t.Errorf("expected wizard reset to form, got %s", wiz.Step())
	}

	stored, err := st.GetSelection(ctx, "test-session")
	if err != nil {
		t.Fatalf("GetSelection failed: %v", err)
	}
	if stored != sel {
		t.Errorf("stored selection %+v does not match committed %+v", stored, sel)
	}

	wiz.FlushNotifications()
	submitted := client.Submitted()
	if len(submitted) != 1 {
		t.Fatalf("expected 1 gateway notification, got %d", len(submitted))
	}
	if submitted[0].Brand != "Toyota" || submitted[0].Phone != "9876543210" {
		t.Errorf("unexpected notification payload: %+v", submitted[0])
	}
}

// TestSubmit_NotificationFailureIsInvisible tests fire and forget: a gateway
// failure never reaches the caller
func TestSubmit_NotificationFailureIsInvisible(t *testing.T) {
	wiz, _, _ := setupWizard(t, catalog.WithSubmitError(apperrors.Fetchf("gateway down")))
	ctx := context.Background()

	openAndSelect(t, wiz, "Tata", "Punch", "Petrol")
	wiz.SetPhone("9876543210")

	if _, err := wiz.Submit(ctx); err != nil {
		t.Fatalf("Submit must not surface the notification failure, got %v", err)
	}
	wiz.FlushNotifications()
}

// TestSubmit_YearRequiredWhenStepEnabled tests that year joins the required
// set only for year-capturing deployments
func TestSubmit_YearRequiredWhenStepEnabled(t *testing.T) {
	st := testutil.NewTestStore(t)
	wiz := services.NewWizard(logger.New(), catalog.NewMockClient(), st, "test-session", true)

	openAndSelect(t, wiz, "Tata", "Nexon", "Electric")
	wiz.SetPhone("9876543210")

	_, err := wiz.Submit(context.Background())
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Field != "year" {
		t.Errorf("expected missing year, got %v", err)
	}

	if err := wiz.SelectYear("2024"); err != nil {
		t.Fatalf("SelectYear failed: %v", err)
	}
	if _, err := wiz.Submit(context.Background()); err != nil {
		t.Errorf("Submit failed with year set: %v", err)
	}
	wiz.FlushNotifications()
}
