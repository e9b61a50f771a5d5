package service

import (
	"errors"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

var (
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("not allowed")
	ErrRateLimited       = errors.New("too many attempts, try again later")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderClosed       = errors.New("order is closed")
)

// invalid builds a single-field validation error.
func invalid(field, msg string) error {
	return &model.ValidationError{Fields: map[string]string{field: msg}}
}

// stockError names the inventory row that ran short.
func stockError(inventoryID int64, have, want int) error {
	return fmt.Errorf("%w: inventory %d has %d pieces, %d requested", ErrInsufficientStock, inventoryID, have, want)
}
