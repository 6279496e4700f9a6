package events

import (
	"errors"
	"testing"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

func TestInMemoryEventStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	req := entities.NewRequirements()
	req.Add("FLOUR", 300)
	req.Add("WATER", 200)

	if err := store.AppendEvent("plan-1", NewPlanResolvedEvent("plan-1", nil, req, true)); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}
	if err := store.AppendEvent("plan-1", NewEvent("custom", "plan-1", nil)); err != nil {
		t.Fatalf("Failed to append: %v", err)
	}

	events, _ := store.ReadEvents("plan-1", 0)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Version() != 1 || events[1].Version() != 2 {
		t.Errorf("Expected versions 1 and 2, got %d and %d", events[0].Version(), events[1].Version())
	}

	data, ok := events[0].Data().(PlanResolved)
	if !ok {
		t.Fatalf("Expected PlanResolved payload, got %T", events[0].Data())
	}
	if data.IngredientCount != 2 || data.TotalGrams != 500 {
		t.Errorf("Expected 2 ingredients / 500 g, got %d / %g", data.IngredientCount, data.TotalGrams)
	}

	tail, _ := store.ReadEvents("plan-1", 2)
	if len(tail) != 1 || tail[0].Type() != "custom" {
		t.Errorf("Expected only the custom event from version 2, got %v", tail)
	}
	if none, _ := store.ReadEvents("plan-1", 5); len(none) != 0 {
		t.Errorf("Expected no events past the end, got %d", len(none))
	}

	all, _ := store.ReadAllEvents(1)
	if len(all) != 1 {
		t.Errorf("Expected 1 event from position 1, got %d", len(all))
	}
}

func TestInMemoryEventStore_Subscribers(t *testing.T) {
	store := NewInMemoryEventStore(nil)

	var shortages []StockShortage
	handler := &HandlerFunc{
		Types: []string{StockShortageEvent},
		Fn: func(e Event) error {
			shortages = append(shortages, e.Data().(StockShortage))
			return nil
		},
	}
	failing := &HandlerFunc{
		Types: []string{StockShortageEvent},
		Fn:    func(Event) error { return errors.New("boom") },
	}
	_ = store.Subscribe([]string{StockShortageEvent}, handler)
	_ = store.Subscribe([]string{StockShortageEvent}, failing)

	line := entities.StockLine{IngredientID: "SALT", RequiredGrams: 50, AvailableGrams: 10}
	_ = store.AppendEvent("SALT", NewStockShortageEvent("plan-1", line))
	_ = store.AppendEvent("plan-1", NewEvent(PlanResolvedEvent, "plan-1", nil))

	if len(shortages) != 1 || shortages[0].Line.IngredientID != "SALT" {
		t.Fatalf("Expected one SALT shortage, got %+v", shortages)
	}

	_ = store.Unsubscribe(handler)
	_ = store.AppendEvent("SALT", NewStockShortageEvent("plan-2", line))
	if len(shortages) != 1 {
		t.Errorf("Expected unsubscribed handler to stay silent, got %d calls", len(shortages))
	}
}

func TestInMemoryEventStore_CapacityEvictsOldest(t *testing.T) {
	store := NewInMemoryEventStore(nil, WithCapacity(3))

	for _, stream := range []string{"plan-1", "plan-2", "plan-2", "plan-3", "plan-2"} {
		if err := store.AppendEvent(stream, NewEvent(PlanResolvedEvent, stream, nil)); err != nil {
			t.Fatalf("Failed to append: %v", err)
		}
	}

	if store.Len() != 3 {
		t.Fatalf("Expected 3 retained events, got %d", store.Len())
	}
	if gone, _ := store.ReadEvents("plan-1", 0); len(gone) != 0 {
		t.Errorf("Expected plan-1 to be evicted, got %d events", len(gone))
	}

	plan2, _ := store.ReadEvents("plan-2", 0)
	if len(plan2) != 2 {
		t.Fatalf("Expected 2 retained plan-2 events, got %d", len(plan2))
	}
	if plan2[0].Version() != 2 || plan2[1].Version() != 3 {
		t.Errorf("Expected plan-2 versions 2 and 3, got %d and %d", plan2[0].Version(), plan2[1].Version())
	}
	if tail, _ := store.ReadEvents("plan-2", 3); len(tail) != 1 {
		t.Errorf("Expected 1 plan-2 event from version 3, got %d", len(tail))
	}

	all, _ := store.ReadAllEvents(0)
	if len(all) != 3 || all[0].StreamID() != "plan-2" {
		t.Errorf("Expected 3 events starting at plan-2, got %v", all)
	}
	if last, _ := store.ReadAllEvents(4); len(last) != 1 || last[0].StreamID() != "plan-2" {
		t.Errorf("Expected the fifth event at absolute position 4, got %v", last)
	}
}

func TestInMemoryEventStore_UnboundedByDefault(t *testing.T) {
	store := NewInMemoryEventStore(nil, WithCapacity(0))
	for i := 0; i < 50; i++ {
		_ = store.AppendEvent("plan-1", NewEvent(PlanResolvedEvent, "plan-1", nil))
	}
	if store.Len() != 50 {
		t.Errorf("Expected 50 events, got %d", store.Len())
	}
}
