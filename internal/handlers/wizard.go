package handlers

import (
	"net/http"

	"github.com/vodintech/caragecarcare/internal/services"
)

// handleWizardView returns the wizard state for the active step
func (h *Handlers) handleWizardView(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	respondOK(w, h.wizardView(r, sess))
}

// wizardView assembles the render data for the current step. Only the lists
// the step actually shows are populated.
func (h *Handlers) wizardView(r *http.Request, sess *services.Session) WizardView {
	wiz := sess.Wizard
	view := WizardView{
		Step:      wiz.Step().String(),
		Selection: wiz.Selection(),
		YearStep:  wiz.YearStepEnabled(),
	}

	switch wiz.Step() {
	case services.StepBrands:
		view.Brands = wiz.VisibleBrands()
	case services.StepModels:
		view.Models = wiz.VisibleModels()
	case services.StepFuels:
		view.Fuels = wiz.FuelOptions()
		view.FuelIcons = wiz.FuelIcons(r.Context())
	}
	return view
}

// handleWizardOpen opens the brand picker
func (h *Handlers) handleWizardOpen(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	if err := sess.Wizard.OpenBrandPicker(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.wizardView(r, sess))
}

// handleWizardBrand selects a brand
func (h *Handlers) handleWizardBrand(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req BrandSelectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Wizard.SelectBrand(req.Brand); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.wizardView(r, sess))
}

// handleWizardModel selects a model
func (h *Handlers) handleWizardModel(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req ModelSelectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Wizard.SelectModel(req.Model); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.wizardView(r, sess))
}

// handleWizardFuel selects a fuel type
func (h *Handlers) handleWizardFuel(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req FuelSelectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Wizard.SelectFuel(req.Fuel); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.wizardView(r, sess))
}

// handleWizardYear records the model year (only when the step is enabled)
func (h *Handlers) handleWizardYear(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req YearSelectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := sess.Wizard.SelectYear(req.Year); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, h.wizardView(r, sess))
}

// handleWizardBack steps one level back
func (h *Handlers) handleWizardBack(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	sess.Wizard.GoBack()
	respondOK(w, h.wizardView(r, sess))
}

// handleWizardFilter applies the live search filter for the active list step
func (h *Handlers) handleWizardFilter(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req FilterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	switch sess.Wizard.Step() {
	case services.StepBrands:
		sess.Wizard.SetBrandFilter(req.Query)
	case services.StepModels:
		sess.Wizard.SetModelFilter(req.Query)
	default:
		respondError(w, BadRequest("no filterable list on this step"))
		return
	}
	respondOK(w, h.wizardView(r, sess))
}

// handleWizardSubmit commits the selection. The gateway notification runs in
// the background; this response does not wait for it.
func (h *Handlers) handleWizardSubmit(w http.ResponseWriter, r *http.Request, sess *services.Session) {
	var req WizardSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Phone != "" {
		sess.Wizard.SetPhone(req.Phone)
	}

	sel, err := sess.Wizard.Submit(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, SubmitResponse{Status: "submitted", Selection: sel})
}
