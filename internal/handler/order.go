package handler

import (
	"net/http"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in model.OrderStatusInput
	if !decodeJSON(w, r, &in) {
		return
	}
	o, err := h.svc.Orders.SetStatus(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
