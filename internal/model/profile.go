package model

import (
	"strings"
	"time"

	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
)

type ProfileType string

const (
	ProfileGear   ProfileType = "gear"
	ProfilePinion ProfileType = "pinion"
)

func (t ProfileType) Valid() bool {
	return t == ProfileGear || t == ProfilePinion
}

// Profile is a gear or pinion specification. Weights and costs are derived
// from the inputs on every write.
type Profile struct {
	ID                    int64                 `json:"id" db:"id"`
	Name                  string                `json:"name" db:"name"`
	Type                  ProfileType           `json:"type" db:"type"`
	Material              Material              `json:"material" db:"material"`
	DiameterMM            float64               `json:"diameter_mm" db:"diameter_mm"`
	LengthMM              float64               `json:"length_mm" db:"length_mm"`
	MaterialRate          float64               `json:"material_rate" db:"material_rate"`
	BurningWastagePercent float64               `json:"burning_wastage_percent" db:"burning_wastage_percent"`
	HTRate                float64               `json:"ht_rate" db:"ht_rate"`
	TeethCount            int                   `json:"teeth_count" db:"teeth_count"`
	Module                float64               `json:"module" db:"module"`
	Face                  float64               `json:"face" db:"face"`
	TeethRate             float64               `json:"teeth_rate" db:"teeth_rate"`
	CynGrindingCost       float64               `json:"cyn_grinding_cost" db:"cyn_grinding_cost"`
	ProcessCosts          []costing.ProcessCost `json:"process_costs" db:"process_costs"`
	WeightKg              float64               `json:"weight_kg" db:"weight_kg"`
	TotalWeightKg         float64               `json:"total_weight_kg" db:"total_weight_kg"`
	MaterialCost          float64               `json:"material_cost" db:"material_cost"`
	HTCost                float64               `json:"ht_cost" db:"ht_cost"`
	TcTgCost              float64               `json:"tc_tg_cost" db:"tc_tg_cost"`
	TotalCost             float64               `json:"total_cost" db:"total_cost"`
	Status                Status                `json:"status" db:"status"`
	CreatedAt             time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at" db:"updated_at"`
}

type ProfileInput struct {
	Name                  string                `json:"name"`
	Type                  ProfileType           `json:"type"`
	Material              Material              `json:"material"`
	DiameterMM            float64               `json:"diameter_mm"`
	LengthMM              float64               `json:"length_mm"`
	MaterialRate          float64               `json:"material_rate"`
	BurningWastagePercent float64               `json:"burning_wastage_percent"`
	HTRate                float64               `json:"ht_rate"`
	TeethCount            int                   `json:"teeth_count"`
	Module                float64               `json:"module"`
	Face                  float64               `json:"face"`
	TeethRate             float64               `json:"teeth_rate"`
	CynGrindingCost       float64               `json:"cyn_grinding_cost"`
	ProcessCosts          []costing.ProcessCost `json:"process_costs"`
	Status                Status                `json:"status"`
}

func (in *ProfileInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Material = Material(strings.ToUpper(strings.TrimSpace(string(in.Material))))
	if in.Status == "" {
		in.Status = StatusActive
	}
	if in.ProcessCosts == nil {
		in.ProcessCosts = []costing.ProcessCost{}
	}
	for i := range in.ProcessCosts {
		in.ProcessCosts[i].Name = strings.TrimSpace(in.ProcessCosts[i].Name)
	}
}

func (in ProfileInput) Validate() error {
	v := in.costingChecks()
	v.check(in.Name != "", "name", "is required")
	v.maxLen(in.Name, maxNameLength, "name")
	v.check(in.Type.Valid(), "type", "must be gear or pinion")
	v.check(in.Material.Valid(), "material", "must be EN8 or EN19")
	v.check(in.Status.Valid(), "status", "must be active or inactive")
	return v.err()
}

// ValidateCosting checks only the inputs the cost calculation reads, so an
// unsaved profile is priced under the same rules as a stored one.
func (in ProfileInput) ValidateCosting() error {
	v := in.costingChecks()
	return v.err()
}

func (in ProfileInput) costingChecks() validator {
	var v validator
	v.check(in.DiameterMM > 0, "diameter_mm", "must be greater than 0")
	v.check(in.LengthMM > 0, "length_mm", "must be greater than 0")
	v.check(in.MaterialRate >= 0, "material_rate", "cannot be negative")
	v.check(in.BurningWastagePercent >= 0 && in.BurningWastagePercent < 100, "burning_wastage_percent", "must be between 0 and 100")
	v.check(in.HTRate >= 0, "ht_rate", "cannot be negative")
	v.check(in.TeethCount >= 0, "teeth_count", "cannot be negative")
	v.check(in.Module >= 0, "module", "cannot be negative")
	v.check(in.Face >= 0, "face", "cannot be negative")
	v.check(in.TeethRate >= 0, "teeth_rate", "cannot be negative")
	v.check(in.CynGrindingCost >= 0, "cyn_grinding_cost", "cannot be negative")
	for _, p := range in.ProcessCosts {
		v.check(p.Name != "", "process_costs", "need a name")
		v.check(p.Cost >= 0, "process_costs", "cannot be negative")
	}
	return v
}

// Spec returns the costing inputs of the profile.
func (in ProfileInput) Spec() costing.ProfileSpec {
	return costing.ProfileSpec{
		DiameterMM:            in.DiameterMM,
		LengthMM:              in.LengthMM,
		BurningWastagePercent: in.BurningWastagePercent,
		MaterialRate:          in.MaterialRate,
		HTRate:                in.HTRate,
		TeethCount:            in.TeethCount,
		Module:                in.Module,
		Face:                  in.Face,
		TeethRate:             in.TeethRate,
		CynGrindingCost:       in.CynGrindingCost,
		ProcessCosts:          in.ProcessCosts,
	}
}

// NewProfile combines validated input with its derived costs.
func NewProfile(in ProfileInput, c costing.ProfileCost) Profile {
	return Profile{
		Name:                  in.Name,
		Type:                  in.Type,
		Material:              in.Material,
		DiameterMM:            in.DiameterMM,
		LengthMM:              in.LengthMM,
		MaterialRate:          in.MaterialRate,
		BurningWastagePercent: in.BurningWastagePercent,
		HTRate:                in.HTRate,
		TeethCount:            in.TeethCount,
		Module:                in.Module,
		Face:                  in.Face,
		TeethRate:             in.TeethRate,
		CynGrindingCost:       in.CynGrindingCost,
		ProcessCosts:          c.ProcessCosts,
		WeightKg:              c.WeightKg,
		TotalWeightKg:         c.TotalWeightKg,
		MaterialCost:          c.MaterialCost,
		HTCost:                c.HTCost,
		TcTgCost:              c.TcTgCost,
		TotalCost:             c.TotalCost,
		Status:                in.Status,
	}
}
