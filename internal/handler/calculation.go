package handler

import (
	"net/http"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/service"
)

func (h *Handler) CalculateWeight(w http.ResponseWriter, r *http.Request) {
	var in service.WeightInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.svc.Calculator.Weight(in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) CalculateProfile(w http.ResponseWriter, r *http.Request) {
	var in model.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.svc.Calculator.Profile(in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard.Summary(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
