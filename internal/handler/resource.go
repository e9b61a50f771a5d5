package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

// Resource is the CRUD surface shared by every entity. C and U are the
// create and update payloads.
type Resource[T, C, U any] interface {
	List(ctx context.Context, p model.ListParams) (model.Page[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in C) (*T, error)
	Update(ctx context.Context, id int64, in U) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type resource[T, C, U any] struct {
	h   *Handler
	svc Resource[T, C, U]
}

// mount registers list/create on "/" and get/update/delete on "/{id}".
func (res resource[T, C, U]) mount(r chi.Router, adminDelete bool) {
	r.Get("/", res.list)
	r.Post("/", res.create)
	r.Get("/{id}", res.get)
	r.Put("/{id}", res.update)
	if adminDelete {
		r.With(requireAdmin(res.h)).Delete("/{id}", res.delete)
	} else {
		r.Delete("/{id}", res.delete)
	}
}

func (res resource[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	p, ok := listParams(w, r)
	if !ok {
		return
	}
	page, err := res.svc.List(r.Context(), p)
	if err != nil {
		res.h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (res resource[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	v, err := res.svc.Get(r.Context(), id)
	if err != nil {
		res.h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (res resource[T, C, U]) create(w http.ResponseWriter, r *http.Request) {
	var in C
	if !decodeJSON(w, r, &in) {
		return
	}
	v, err := res.svc.Create(r.Context(), in)
	if err != nil {
		res.h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (res resource[T, C, U]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var in U
	if !decodeJSON(w, r, &in) {
		return
	}
	v, err := res.svc.Update(r.Context(), id, in)
	if err != nil {
		res.h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (res resource[T, C, U]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := res.svc.Delete(r.Context(), id); err != nil {
		res.h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
