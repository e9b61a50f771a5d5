package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrValidation marks input rejected before it reaches the database.
var ErrValidation = errors.New("validation failed")

// ValidationError collects field problems for one input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type validator struct {
	fields map[string]string
}

func (v *validator) check(ok bool, field, msg string) {
	if ok {
		return
	}
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, exists := v.fields[field]; !exists {
		v.fields[field] = msg
	}
}

// maxLen checks s against a VARCHAR(n) column, which counts characters.
func (v *validator) maxLen(s string, n int, field string) {
	v.check(utf8.RuneCountInString(s) <= n, field, fmt.Sprintf("must be at most %d characters", n))
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// Status is the active/inactive flag shared by users, buyers and profiles.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Material is a supported steel grade. Both share the same density.
type Material string

const (
	MaterialEN8  Material = "EN8"
	MaterialEN19 Material = "EN19"
)

func (m Material) Valid() bool {
	return m == MaterialEN8 || m == MaterialEN19
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 1_000_000
)

// ListParams are the query parameters accepted by every list endpoint.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// Normalize clamps paging to sane values.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		p.Limit = DefaultPageLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	p.Status = strings.TrimSpace(p.Status)
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Page is one page of a list result.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPage builds a page, never returning a nil Data slice.
func NewPage[T any](items []T, p ListParams, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit > 0 {
		pages++
	}
	return Page[T]{
		Data: items,
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: pages,
		},
	}
}
