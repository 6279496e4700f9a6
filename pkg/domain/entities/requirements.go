package entities

import (
	"encoding/json"
)

// Requirements is an ordered IngredientID -> grams mapping. Adding to an
// existing ingredient sums the masses; iteration follows first-seen order.
type Requirements struct {
	order  []IngredientID
	masses map[IngredientID]float64
}

// RequirementEntry is one ingredient mass in a Requirements mapping
type RequirementEntry struct {
	IngredientID IngredientID `json:"ingredient_id"`
	MassGrams    float64      `json:"mass_grams"`
}

// NewRequirements creates an empty Requirements mapping
func NewRequirements() *Requirements {
	return &Requirements{
		masses: make(map[IngredientID]float64),
	}
}

// Add accumulates grams for an ingredient. The zero value is ready to use.
func (r *Requirements) Add(id IngredientID, grams float64) {
	if r.masses == nil {
		r.masses = make(map[IngredientID]float64)
	}
	if _, exists := r.masses[id]; !exists {
		r.order = append(r.order, id)
	}
	r.masses[id] += grams
}

// Merge adds every entry of other into r
func (r *Requirements) Merge(other *Requirements) {
	for _, id := range other.order {
		r.Add(id, other.masses[id])
	}
}

// Get returns the mass for an ingredient
func (r *Requirements) Get(id IngredientID) (float64, bool) {
	grams, ok := r.masses[id]
	return grams, ok
}

// Len returns the number of ingredients
func (r *Requirements) Len() int {
	return len(r.order)
}

// IDs returns the ingredient IDs in first-seen order
func (r *Requirements) IDs() []IngredientID {
	ids := make([]IngredientID, len(r.order))
	copy(ids, r.order)
	return ids
}

// Entries returns the mapping as an ordered slice
func (r *Requirements) Entries() []RequirementEntry {
	entries := make([]RequirementEntry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, RequirementEntry{IngredientID: id, MassGrams: r.masses[id]})
	}
	return entries
}

// TotalGrams sums all masses
func (r *Requirements) TotalGrams() float64 {
	total := 0.0
	for _, id := range r.order {
		total += r.masses[id]
	}
	return total
}

// MarshalJSON encodes the mapping as an ordered array of entries
func (r *Requirements) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Entries())
}

// UnmarshalJSON decodes an ordered array of entries
func (r *Requirements) UnmarshalJSON(data []byte) error {
	var entries []RequirementEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*r = *NewRequirements()
	for _, e := range entries {
		r.Add(e.IngredientID, e.MassGrams)
	}
	return nil
}
