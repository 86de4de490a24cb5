package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vodintech/caragecarcare/internal/errors"
	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/models"
	"github.com/vodintech/caragecarcare/internal/store"
	"github.com/vodintech/caragecarcare/pkg/catalog"
)

// WizardStep identifies the active screen of the selection wizard
type WizardStep int

const (
	StepForm WizardStep = iota
	StepBrands
	StepModels
	StepFuels
	StepYears
)

// String returns the wire name of a step
func (s WizardStep) String() string {
	switch s {
	case StepForm:
		return "form"
	case StepBrands:
		return "brands"
	case StepModels:
		return "models"
	case StepFuels:
		return "fuels"
	case StepYears:
		return "years"
	default:
		return "unknown"
	}
}

// Wizard narrows a vehicle selection one step at a time:
// Form -> Brands -> Models -> Fuels -> (Years) -> Form.
// Selecting a brand invalidates every downstream choice, which keeps a model
// from one brand from pairing with a fuel type valid only for another.
type Wizard struct {
	log       logger.Logger
	catalog   catalog.Client
	store     store.SelectionStore
	sessionID string
	yearStep  bool

	mu          sync.Mutex
	step        WizardStep
	brands      []models.CarBrand
	selection   models.Selection
	brandFilter string
	modelFilter string

	notifyWG      sync.WaitGroup
	notifyTimeout time.Duration
}

// NewWizard creates a wizard for one session
func NewWizard(log logger.Logger, client catalog.Client, selStore store.SelectionStore, sessionID string, yearStep bool) *Wizard {
	return &Wizard{
		log:           log,
		catalog:       client,
		store:         selStore,
		sessionID:     sessionID,
		yearStep:      yearStep,
		step:          StepForm,
		notifyTimeout: 10 * time.Second,
	}
}

// Step returns the active wizard step
func (w *Wizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Selection returns a copy of the in-progress selection
func (w *Wizard) Selection() models.Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selection
}

// YearStepEnabled reports whether this deployment captures the model year
func (w *Wizard) YearStepEnabled() bool {
	return w.yearStep
}

// OpenBrandPicker moves Form -> Brands, loading the brand catalog on first
// use. A gateway failure leaves the wizard where it was; the caller can retry.
func (w *Wizard) OpenBrandPicker(ctx context.Context) error {
	w.mu.Lock()
	loaded := w.brands != nil
	w.mu.Unlock()

	if !loaded {
		brands, err := w.catalog.FetchBrands(ctx)
		if err != nil {
			w.log.Warn("Failed to load brand catalog", "error", err)
			return err
		}
		w.mu.Lock()
		w.brands = brands
		w.mu.Unlock()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepBrands
	w.brandFilter = ""
	return nil
}

// SelectBrand picks a brand and moves to the model list. Any previously
// chosen model, fuel, or year is cleared: a new brand invalidates everything
// below it.
func (w *Wizard) SelectBrand(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.brands == nil {
		return ErrBrandsNotLoaded
	}
	if w.findBrand(name) == nil {
		return errors.Validationf("unknown brand: %s", name)
	}

	w.selection.Brand = name
	w.selection.Model = ""
	w.selection.FuelType = ""
	w.selection.Year = ""
	w.step = StepModels
	w.modelFilter = ""
	return nil
}

// SelectModel picks a model of the active brand and moves to the fuel list.
// Fuel and year are cleared.
func (w *Wizard) SelectModel(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	brand := w.findBrand(w.selection.Brand)
	if brand == nil {
		return ErrNoActiveBrand
	}
	if findModel(brand, name) == nil {
		return errors.Validationf("model %q does not belong to %s", name, brand.Name)
	}

	w.selection.Model = name
	w.selection.FuelType = ""
	w.selection.Year = ""
	w.step = StepFuels
	return nil
}

// SelectFuel picks a fuel type of the active model. The wizard returns to the
// form, or moves to the year step when year capture is enabled.
func (w *Wizard) SelectFuel(fuel string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	brand := w.findBrand(w.selection.Brand)
	if brand == nil {
		return ErrNoActiveBrand
	}
	model := findModel(brand, w.selection.Model)
	if model == nil {
		return ErrNoActiveModel
	}

	valid := false
	for _, f := range model.FuelTypes {
		if f == fuel {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Validationf("fuel type %q is not available for %s", fuel, model.Name)
	}

	w.selection.FuelType = fuel
	w.selection.Year = ""
	if w.yearStep {
		w.step = StepYears
	} else {
		w.step = StepForm
	}
	return nil
}

// SelectYear records the model year and returns to the form.
// Only callable when year capture is enabled for this deployment.
func (w *Wizard) SelectYear(year string) error {
	if !w.yearStep {
		return ErrYearStepDisabled
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.selection.FuelType == "" {
		return errors.Validation("select a fuel type before the year")
	}
	if year == "" {
		return errors.MissingField("year")
	}

	w.selection.Year = year
	w.step = StepForm
	return nil
}

// GoBack steps exactly one level back. At Form or Brands it does nothing.
func (w *Wizard) GoBack() {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepModels:
		w.step = StepBrands
	case StepFuels:
		w.step = StepModels
	case StepYears:
		w.step = StepFuels
	}
}

// SetPhone records the contact number on the form
func (w *Wizard) SetPhone(phone string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.Phone = phone
}

// SetBrandFilter sets the live search filter for the brand list
func (w *Wizard) SetBrandFilter(filter string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.brandFilter = filter
}

// SetModelFilter sets the live search filter for the model list
func (w *Wizard) SetModelFilter(filter string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.modelFilter = filter
}

// VisibleBrands returns the brand list narrowed by the current filter.
// Filtering is a case-insensitive substring match over the rendered names;
// the underlying catalog is never touched.
func (w *Wizard) VisibleBrands() []models.CarBrand {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.brandFilter == "" {
		return append([]models.CarBrand(nil), w.brands...)
	}

	needle := strings.ToLower(w.brandFilter)
	var visible []models.CarBrand
	for _, b := range w.brands {
		if strings.Contains(strings.ToLower(b.Name), needle) {
			visible = append(visible, b)
		}
	}
	return visible
}

// VisibleModels returns the active brand's models narrowed by the current filter
func (w *Wizard) VisibleModels() []models.CarModel {
	w.mu.Lock()
	defer w.mu.Unlock()

	brand := w.findBrand(w.selection.Brand)
	if brand == nil {
		return nil
	}
	if w.modelFilter == "" {
		return append([]models.CarModel(nil), brand.Models...)
	}

	needle := strings.ToLower(w.modelFilter)
	var visible []models.CarModel
	for _, m := range brand.Models {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			visible = append(visible, m)
		}
	}
	return visible
}

// FuelOptions returns the fuel types of the active model, in catalog order
func (w *Wizard) FuelOptions() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	brand := w.findBrand(w.selection.Brand)
	if brand == nil {
		return nil
	}
	model := findModel(brand, w.selection.Model)
	if model == nil {
		return nil
	}
	return append([]string(nil), model.FuelTypes...)
}

// FuelIcons returns the gateway's fuel icon mapping keyed by lowercased fuel
// name. Icons are decoration, so a gateway failure degrades to an empty map.
func (w *Wizard) FuelIcons(ctx context.Context) map[string]string {
	icons, err := w.catalog.FetchFuelIcons(ctx)
	if err != nil {
		w.log.Debug("Fuel icons unavailable", "error", err)
		return map[string]string{}
	}
	out := make(map[string]string, len(icons))
	for _, icon := range icons {
		out[strings.ToLower(icon.Type)] = icon.URL
	}
	return out
}

// Submit validates the full selection, writes it to the session store, and
// fires a detached notification to the catalog gateway. The notification is
// deliberately not awaited: the user has already moved on, so its failure is
// logged and never observed by the caller.
func (w *Wizard) Submit(ctx context.Context) (models.Selection, error) {
	w.mu.Lock()
	sel := w.selection
	w.mu.Unlock()

	switch {
	case sel.Brand == "":
		return models.Selection{}, errors.MissingField("brand")
	case sel.Model == "":
		return models.Selection{}, errors.MissingField("model")
	case sel.FuelType == "":
		return models.Selection{}, errors.MissingField("fuelType")
	case w.yearStep && sel.Year == "":
		return models.Selection{}, errors.MissingField("year")
	case sel.Phone == "":
		return models.Selection{}, errors.MissingField("phone")
	}

	if err := w.store.PutSelection(ctx, w.sessionID, sel); err != nil {
		return models.Selection{}, errors.Wrap(err, errors.ErrInternal, "failed to persist selection")
	}

	w.log.Info("Selection committed", "session", w.sessionID,
		"brand", sel.Brand, "model", sel.Model, "fuel", sel.FuelType)

	w.notifyWG.Add(1)
	go func() {
		defer w.notifyWG.Done()
		notifyCtx, cancel := context.WithTimeout(context.Background(), w.notifyTimeout)
		defer cancel()

		_, err := w.catalog.Submit(notifyCtx, catalog.SubmitRequest{
			Brand:    sel.Brand,
			Model:    sel.Model,
			FuelType: sel.FuelType,
			Phone:    sel.Phone,
		})
		if err != nil {
			// Accepted risk: the backend never hears about this request
			w.log.Warn("Background submit-request failed", "session", w.sessionID, "error", err)
		}
	}()

	w.mu.Lock()
	w.step = StepForm
	w.mu.Unlock()

	return sel, nil
}

// FlushNotifications blocks until every detached gateway notification has
// finished. Used on shutdown and in tests.
func (w *Wizard) FlushNotifications() {
	w.notifyWG.Wait()
}

// findBrand looks up a loaded brand by name. Caller holds w.mu.
func (w *Wizard) findBrand(name string) *models.CarBrand {
	if name == "" {
		return nil
	}
	for i := range w.brands {
		if w.brands[i].Name == name {
			return &w.brands[i]
		}
	}
	return nil
}

func findModel(brand *models.CarBrand, name string) *models.CarModel {
	if name == "" {
		return nil
	}
	for i := range brand.Models {
		if brand.Models[i].Name == name {
			return &brand.Models[i]
		}
	}
	return nil
}
