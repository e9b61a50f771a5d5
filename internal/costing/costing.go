package costing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// SteelDensity is the density in g/cm³ used for both EN8 and EN19 stock.
const SteelDensity = 7.85

const (
	weightPlaces = 3
	moneyPlaces  = 2
)

var ErrInvalidInput = errors.New("invalid costing input")

var (
	pi       = decimal.NewFromFloat(math.Pi)
	density  = decimal.NewFromFloat(SteelDensity)
	twenty   = decimal.NewFromInt(20)
	ten      = decimal.NewFromInt(10)
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// ProcessCost is an extra per-piece process charge (e.g. keyway, hobbing).
type ProcessCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Breakdown holds the components that roll up into a profile total.
type Breakdown struct {
	MaterialCost    float64       `json:"material_cost"`
	TcTgCost        float64       `json:"tc_tg_cost"`
	HTCost          float64       `json:"ht_cost"`
	CynGrindingCost float64       `json:"cyn_grinding_cost"`
	ProcessCosts    []ProcessCost `json:"process_costs"`
}

// ProfileSpec is the set of inputs a profile's costs are derived from.
type ProfileSpec struct {
	DiameterMM            float64
	LengthMM              float64
	BurningWastagePercent float64
	MaterialRate          float64
	HTRate                float64
	TeethCount            int
	Module                float64
	Face                  float64
	TeethRate             float64
	CynGrindingCost       float64
	ProcessCosts          []ProcessCost
}

// ProfileCost is the fully derived result for one piece of a profile.
type ProfileCost struct {
	WeightKg      float64 `json:"weight_kg"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	Breakdown
	TotalCost float64 `json:"total_cost"`
}

func check(name string, v float64, strictlyPositive bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, name)
	}
	if strictlyPositive && v <= 0 {
		return fmt.Errorf("%w: %s must be greater than 0", ErrInvalidInput, name)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, name)
	}
	return nil
}

// CylindricalWeight returns the weight in kg of a round bar:
// π × (d/20)² × (l/10) × density / 1000, rounded to 3 places.
func CylindricalWeight(diameterMM, lengthMM float64) (float64, error) {
	if err := check("diameter", diameterMM, true); err != nil {
		return 0, err
	}
	if err := check("length", lengthMM, true); err != nil {
		return 0, err
	}

	radiusCM := decimal.NewFromFloat(diameterMM).Div(twenty)
	lengthCM := decimal.NewFromFloat(lengthMM).Div(ten)
	grams := pi.Mul(radiusCM).Mul(radiusCM).Mul(lengthCM).Mul(density)

	return grams.Div(thousand).Round(weightPlaces).InexactFloat64(), nil
}

// BurningWeight grows a net weight by the burning wastage percentage.
func BurningWeight(weightKg, wastagePercent float64) (float64, error) {
	if err := check("weight", weightKg, false); err != nil {
		return 0, err
	}
	if err := check("burning wastage percent", wastagePercent, false); err != nil {
		return 0, err
	}
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(wastagePercent).Div(hundred))
	return decimal.NewFromFloat(weightKg).Mul(factor).Round(weightPlaces).InexactFloat64(), nil
}

// MaterialCost is total_weight_kg × rate_per_kg.
func MaterialCost(totalWeightKg, ratePerKg float64) (float64, error) {
	return perKg("material rate", totalWeightKg, ratePerKg)
}

// HTCost is total_weight_kg × ht_rate.
func HTCost(totalWeightKg, htRate float64) (float64, error) {
	return perKg("heat treatment rate", totalWeightKg, htRate)
}

func perKg(rateName string, weightKg, rate float64) (float64, error) {
	if err := check("total weight", weightKg, false); err != nil {
		return 0, err
	}
	if err := check(rateName, rate, false); err != nil {
		return 0, err
	}
	return decimal.NewFromFloat(weightKg).Mul(decimal.NewFromFloat(rate)).Round(moneyPlaces).InexactFloat64(), nil
}

// TeethCost is teeth_count × module × face × teeth_rate.
func TeethCost(teethCount int, module, face, teethRate float64) (float64, error) {
	if teethCount < 0 {
		return 0, fmt.Errorf("%w: teeth count cannot be negative", ErrInvalidInput)
	}
	if err := check("module", module, false); err != nil {
		return 0, err
	}
	if err := check("face", face, false); err != nil {
		return 0, err
	}
	if err := check("teeth rate", teethRate, false); err != nil {
		return 0, err
	}
	return decimal.NewFromInt(int64(teethCount)).
		Mul(decimal.NewFromFloat(module)).
		Mul(decimal.NewFromFloat(face)).
		Mul(decimal.NewFromFloat(teethRate)).
		Round(moneyPlaces).InexactFloat64(), nil
}

// ProfileTotal sums a breakdown:
// material + tc/tg + ht + cylindrical grinding + every process cost.
func ProfileTotal(b Breakdown) (float64, error) {
	parts := []struct {
		name string
		v    float64
	}{
		{"material cost", b.MaterialCost},
		{"tc/tg cost", b.TcTgCost},
		{"ht cost", b.HTCost},
		{"cylindrical grinding cost", b.CynGrindingCost},
	}
	for _, p := range b.ProcessCosts {
		parts = append(parts, struct {
			name string
			v    float64
		}{"process cost " + p.Name, p.Cost})
	}

	total := decimal.Zero
	for _, p := range parts {
		if err := check(p.name, p.v, false); err != nil {
			return 0, err
		}
		total = total.Add(decimal.NewFromFloat(p.v))
	}
	return total.Round(moneyPlaces).InexactFloat64(), nil
}

// Profile derives weight and every cost component of one profile piece.
func Profile(spec ProfileSpec) (ProfileCost, error) {
	weight, err := CylindricalWeight(spec.DiameterMM, spec.LengthMM)
	if err != nil {
		return ProfileCost{}, err
	}
	totalWeight, err := BurningWeight(weight, spec.BurningWastagePercent)
	if err != nil {
		return ProfileCost{}, err
	}
	material, err := MaterialCost(totalWeight, spec.MaterialRate)
	if err != nil {
		return ProfileCost{}, err
	}
	ht, err := HTCost(totalWeight, spec.HTRate)
	if err != nil {
		return ProfileCost{}, err
	}
	teeth, err := TeethCost(spec.TeethCount, spec.Module, spec.Face, spec.TeethRate)
	if err != nil {
		return ProfileCost{}, err
	}

	processes := spec.ProcessCosts
	if processes == nil {
		processes = []ProcessCost{}
	}
	b := Breakdown{
		MaterialCost:    material,
		TcTgCost:        teeth,
		HTCost:          ht,
		CynGrindingCost: spec.CynGrindingCost,
		ProcessCosts:    processes,
	}
	total, err := ProfileTotal(b)
	if err != nil {
		return ProfileCost{}, err
	}

	return ProfileCost{
		WeightKg:      weight,
		TotalWeightKg: totalWeight,
		Breakdown:     b,
		TotalCost:     total,
	}, nil
}

// WastageResult is the outcome of a burning wastage measurement.
type WastageResult struct {
	WastageKg   float64 `json:"wastage_kg"`
	NetWeightKg float64 `json:"net_weight_kg"`
}

// Wastage computes the material lost while burning: the percentage of the
// input weight plus an absolute adjustment, which may be negative.
func Wastage(inputKg, wastagePercent, adjustmentKg float64) (WastageResult, error) {
	if err := check("input weight", inputKg, true); err != nil {
		return WastageResult{}, err
	}
	if err := check("wastage percent", wastagePercent, false); err != nil {
		return WastageResult{}, err
	}
	if wastagePercent > 100 {
		return WastageResult{}, fmt.Errorf("%w: wastage percent cannot exceed 100", ErrInvalidInput)
	}
	if math.IsNaN(adjustmentKg) || math.IsInf(adjustmentKg, 0) {
		return WastageResult{}, fmt.Errorf("%w: adjustment must be a finite number", ErrInvalidInput)
	}

	in := decimal.NewFromFloat(inputKg)
	wastage := in.Mul(decimal.NewFromFloat(wastagePercent)).Div(hundred).
		Add(decimal.NewFromFloat(adjustmentKg)).
		Round(weightPlaces)
	if wastage.IsNegative() {
		return WastageResult{}, fmt.Errorf("%w: wastage cannot be negative", ErrInvalidInput)
	}
	if wastage.GreaterThan(in) {
		return WastageResult{}, fmt.Errorf("%w: wastage exceeds input weight", ErrInvalidInput)
	}

	return WastageResult{
		WastageKg:   wastage.InexactFloat64(),
		NetWeightKg: in.Sub(wastage).Round(weightPlaces).InexactFloat64(),
	}, nil
}

// Line is one priced order line.
type Line struct {
	UnitCost     float64
	UnitWeightKg float64
	Quantity     int
}

// Totals is the roll-up of an order.
type Totals struct {
	TotalCost     float64 `json:"total_cost"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profit_margin"`
}

// LineTotal is unit cost × quantity rounded to money places.
func LineTotal(l Line) float64 {
	return decimal.NewFromFloat(l.UnitCost).Mul(decimal.NewFromInt(int64(l.Quantity))).Round(moneyPlaces).InexactFloat64()
}

// LineWeight is unit weight × quantity rounded to weight places.
func LineWeight(l Line) float64 {
	return decimal.NewFromFloat(l.UnitWeightKg).Mul(decimal.NewFromInt(int64(l.Quantity))).Round(weightPlaces).InexactFloat64()
}

// OrderTotals rolls up order lines against a selling price. The margin is
// expressed as a percentage of the selling price and is 0 when nothing is
// charged.
func OrderTotals(lines []Line, sellingPrice float64) (Totals, error) {
	if err := check("selling price", sellingPrice, false); err != nil {
		return Totals{}, err
	}

	cost, weight := decimal.Zero, decimal.Zero
	for i, l := range lines {
		if l.Quantity <= 0 {
			return Totals{}, fmt.Errorf("%w: line %d quantity must be greater than 0", ErrInvalidInput, i+1)
		}
		if err := check("unit cost", l.UnitCost, false); err != nil {
			return Totals{}, err
		}
		if err := check("unit weight", l.UnitWeightKg, false); err != nil {
			return Totals{}, err
		}
		qty := decimal.NewFromInt(int64(l.Quantity))
		cost = cost.Add(decimal.NewFromFloat(l.UnitCost).Mul(qty))
		weight = weight.Add(decimal.NewFromFloat(l.UnitWeightKg).Mul(qty))
	}

	cost = cost.Round(moneyPlaces)
	selling := decimal.NewFromFloat(sellingPrice)
	profit := selling.Sub(cost)
	margin := decimal.Zero
	if selling.IsPositive() {
		margin = profit.Div(selling).Mul(hundred)
	}

	return Totals{
		TotalCost:     cost.InexactFloat64(),
		TotalWeightKg: weight.Round(weightPlaces).InexactFloat64(),
		Profit:        profit.Round(moneyPlaces).InexactFloat64(),
		ProfitMargin:  margin.Round(moneyPlaces).InexactFloat64(),
	}, nil
}
