package service

import (
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/costing"
	"github.com/yahyatarique/IMS-BSGearTech-sub001/internal/model"
)

type WeightInput struct {
	DiameterMM            float64 `json:"diameter_mm"`
	LengthMM              float64 `json:"length_mm"`
	BurningWastagePercent float64 `json:"burning_wastage_percent"`
}

type WeightResult struct {
	WeightKg      float64 `json:"weight_kg"`
	TotalWeightKg float64 `json:"total_weight_kg"`
}

// CalculationService exposes the costing functions without persisting
// anything.
type CalculationService struct{}

func NewCalculationService() *CalculationService {
	return &CalculationService{}
}

func (CalculationService) Weight(in WeightInput) (WeightResult, error) {
	if in.BurningWastagePercent >= 100 {
		return WeightResult{}, invalid("burning_wastage_percent", "must be between 0 and 100")
	}
	w, err := costing.CylindricalWeight(in.DiameterMM, in.LengthMM)
	if err != nil {
		return WeightResult{}, err
	}
	total, err := costing.BurningWeight(w, in.BurningWastagePercent)
	if err != nil {
		return WeightResult{}, err
	}
	return WeightResult{WeightKg: w, TotalWeightKg: total}, nil
}

// Profile costs a profile draft. Name and type are not required, the
// numeric inputs follow the same rules as a saved profile.
func (CalculationService) Profile(in model.ProfileInput) (costing.ProfileCost, error) {
	in.Normalize()
	if err := in.ValidateCosting(); err != nil {
		return costing.ProfileCost{}, err
	}
	return costing.Profile(in.Spec())
}
