package entities

import (
	"math"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{1000, "1000"},
		{0, "0"},
		{2.5, "2.50"},
		{19.607843137254903, "19.61"},
		{0.004, "0.00"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.value); got != tt.expected {
			t.Errorf("FormatAmount(%v): expected %s, got %s", tt.value, tt.expected, got)
		}
	}
}

func TestDisplayQuantity_String(t *testing.T) {
	q := DisplayQuantity{Value: 2500, Unit: Gram}
	if q.String() != "2500 g" {
		t.Errorf("Expected '2500 g', got '%s'", q.String())
	}
}

func TestNewPlanItem(t *testing.T) {
	if _, err := NewPlanItem("BAGUETTE", 40); err != nil {
		t.Fatalf("Expected valid plan item: %v", err)
	}
	if _, err := NewPlanItem("BAGUETTE", 0); err == nil {
		t.Error("Expected zero quantity to be rejected")
	}
	if _, err := NewPlanItem("BAGUETTE", math.NaN()); err == nil {
		t.Error("Expected NaN quantity to be rejected")
	}
	if _, err := NewPlanItem("BAGUETTE", math.Inf(1)); err == nil {
		t.Error("Expected infinite quantity to be rejected")
	}
	if _, err := NewPlanItem("", 1); err == nil {
		t.Error("Expected empty recipe id to be rejected")
	}
}
