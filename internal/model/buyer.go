package model

import (
	"net/mail"
	"strings"
	"time"
)

type Buyer struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	ContactPerson string    `json:"contact_person" db:"contact_person"`
	Email         string    `json:"email" db:"email"`
	Phone         string    `json:"phone" db:"phone"`
	GSTNumber     string    `json:"gst_number" db:"gst_number"`
	Address       string    `json:"address" db:"address"`
	Status        Status    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

type BuyerInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	GSTNumber     string `json:"gst_number"`
	Address       string `json:"address"`
	Status        Status `json:"status"`
}

func (in *BuyerInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.GSTNumber = strings.ToUpper(strings.TrimSpace(in.GSTNumber))
	in.Address = strings.TrimSpace(in.Address)
	if in.Status == "" {
		in.Status = StatusActive
	}
}

const (
	// gstLength is the length of an Indian GSTIN.
	gstLength = 15

	maxNameLength  = 255
	maxPhoneLength = 32
)

func (in BuyerInput) Validate() error {
	var v validator
	v.check(in.Name != "", "name", "is required")
	v.maxLen(in.Name, maxNameLength, "name")
	v.maxLen(in.ContactPerson, maxNameLength, "contact_person")
	if in.Email != "" {
		_, err := mail.ParseAddress(in.Email)
		v.check(err == nil, "email", "must be a valid address")
		v.maxLen(in.Email, maxEmailLength, "email")
	}
	v.maxLen(in.Phone, maxPhoneLength, "phone")
	if in.GSTNumber != "" {
		v.check(len(in.GSTNumber) == gstLength, "gst_number", "must be 15 characters")
	}
	v.check(in.Status.Valid(), "status", "must be active or inactive")
	return v.err()
}
