package repository

import (
	"context"
	"fmt"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

const buyerColumns = "id, name, contact_person, email, phone, gst_number, address, status, created_at, updated_at"

func (s *Store) ListBuyers(ctx context.Context, p model.ListParams) ([]model.Buyer, int64, error) {
	var w whereBuilder
	w.search(p.Search, "name", "contact_person", "email", "gst_number")
	if p.Status != "" {
		w.add("status = ?", p.Status)
	}

	total, err := s.count(ctx, "buyers", &w)
	if err != nil {
		return nil, 0, err
	}

	limit, args := w.page(p.Limit, p.Offset())
	buyers, err := queryAll[model.Buyer](ctx, s.getExecutor(ctx),
		"SELECT "+buyerColumns+" FROM buyers"+w.String()+" ORDER BY created_at DESC, id DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list buyers: %w", err)
	}
	return buyers, total, nil
}

func (s *Store) GetBuyer(ctx context.Context, id int64) (*model.Buyer, error) {
	b, err := queryOne[model.Buyer](ctx, s.getExecutor(ctx),
		"SELECT "+buyerColumns+" FROM buyers WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer %d: %w", id, err)
	}
	return b, nil
}

func (s *Store) CreateBuyer(ctx context.Context, in model.BuyerInput) (*model.Buyer, error) {
	b, err := queryOne[model.Buyer](ctx, s.getExecutor(ctx), `
		INSERT INTO buyers (name, contact_person, email, phone, gst_number, address, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+buyerColumns,
		in.Name, in.ContactPerson, in.Email, in.Phone, in.GSTNumber, in.Address, in.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create buyer: %w", err)
	}
	return b, nil
}

func (s *Store) UpdateBuyer(ctx context.Context, id int64, in model.BuyerInput) (*model.Buyer, error) {
	b, err := queryOne[model.Buyer](ctx, s.getExecutor(ctx), `
		UPDATE buyers
		SET name = $2, contact_person = $3, email = $4, phone = $5, gst_number = $6,
		    address = $7, status = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+buyerColumns,
		id, in.Name, in.ContactPerson, in.Email, in.Phone, in.GSTNumber, in.Address, in.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to update buyer %d: %w", id, err)
	}
	return b, nil
}

// DeactivateBuyer soft-deletes a buyer; its orders stay intact.
func (s *Store) DeactivateBuyer(ctx context.Context, id int64) error {
	tag, err := s.getExecutor(ctx).Exec(ctx,
		"UPDATE buyers SET status = $2, updated_at = now() WHERE id = $1", id, model.StatusInactive)
	if err != nil {
		return fmt.Errorf("failed to deactivate buyer %d: %w", id, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to deactivate buyer %d: %w", id, ErrNotFound)
	}
	return nil
}
