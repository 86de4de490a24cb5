package services_test

import (
	"context"
	"testing"

	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/models"
	"github.com/vodintech/caragecarcare/internal/services"
	"github.com/vodintech/caragecarcare/internal/store"
	"github.com/vodintech/caragecarcare/internal/testutil"
)

func setupCart(t *testing.T) (*services.Cart, *store.Store) {
	t.Helper()
	st := testutil.NewTestStore(t)
	return services.NewCart(logger.New(), st, "test-session"), st
}

func pkg(name string, discounted float64) models.ServicePackage {
	return models.ServicePackage{Name: name, Price: discounted + 500, DiscountedPrice: discounted}
}

// TestAdd_NewPackageGetsOneRow tests first add
func TestAdd_NewPackageGetsOneRow(t *testing.T) {
	cart, _ := setupCart(t)

	cart.Add(pkg("Basic Service", 2999))

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].PackageName != "Basic Service" || items[0].Quantity != 1 {
		t.Errorf("unexpected item: %+v", items[0])
	}
	if items[0].UnitPrice != 2999 {
		t.Errorf("expected discounted price 2999 as unit price, got %v", items[0].UnitPrice)
	}
}

// TestAdd_DuplicateAggregatesQuantity tests that re-adding bumps quantity
// instead of inserting a second row
func TestAdd_DuplicateAggregatesQuantity(t *testing.T) {
	cart, _ := setupCart(t)

	cart.Add(pkg("Basic Service", 2999))
	cart.Add(pkg("Basic Service", 2999))
	cart.Add(pkg("Basic Service", 2999))

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single aggregated row, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", items[0].Quantity)
	}
}

// TestAdd_PreservesInsertionOrder tests row ordering across mixed adds
func TestAdd_PreservesInsertionOrder(t *testing.T) {
	cart, _ := setupCart(t)

	cart.Add(pkg("Basic Service", 2999))
	cart.Add(pkg("Standard Service", 4299))
	cart.Add(pkg("Basic Service", 2999))

	items := cart.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}
	if items[0].PackageName != "Basic Service" || items[1].PackageName != "Standard Service" {
		t.Errorf("expected insertion order to hold, got %+v", items)
	}
}

// TestSetQuantity_FloorAtOne tests that quantities below 1 are rejected
func TestSetQuantity_FloorAtOne(t *testing.T) {
	cart, _ := setupCart(t)
	cart.Add(pkg("Basic Service", 2999))

	if err := cart.SetQuantity("Basic Service", 0); err != services.ErrQuantityFloor {
		t.Errorf("expected ErrQuantityFloor for 0, got %v", err)
	}
	if err := cart.SetQuantity("Basic Service", -3); err != services.ErrQuantityFloor {
		t.Errorf("expected ErrQuantityFloor for -3, got %v", err)
	}

	// The item is untouched
	if items := cart.Items(); items[0].Quantity != 1 {
		t.Errorf("expected quantity to stay 1, got %d", items[0].Quantity)
	}
}

// TestSetQuantity_UnknownNameIsNoOp tests quantity updates for absent rows
func TestSetQuantity_UnknownNameIsNoOp(t *testing.T) {
	cart, _ := setupCart(t)
	cart.Add(pkg("Basic Service", 2999))

	if err := cart.SetQuantity("Deep Clean", 4); err != nil {
		t.Errorf("expected nil for an unknown package, got %v", err)
	}
	if cart.Len() != 1 {
		t.Errorf("expected cart unchanged, got %d rows", cart.Len())
	}
}

// TestRemove_IsTheOnlyWayOut tests that removal deletes the row regardless
// of quantity
func TestRemove_IsTheOnlyWayOut(t *testing.T) {
	cart, _ := setupCart(t)
	cart.Add(pkg("Basic Service", 2999))
	if err := cart.SetQuantity("Basic Service", 5); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}

	cart.Remove("Basic Service")
	if cart.Len() != 0 {
		t.Errorf("expected empty cart after remove, got %d rows", cart.Len())
	}

	// Removing again is a no-op
	cart.Remove("Basic Service")
}

// TestSubtotal_SumsUnitTimesQuantity tests the price arithmetic
func TestSubtotal_SumsUnitTimesQuantity(t *testing.T) {
	cart, _ := setupCart(t)

	cart.Add(pkg("Basic Service", 100))
	if err := cart.SetQuantity("Basic Service", 2); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	cart.Add(pkg("Wax Polish", 50))

	if got := cart.Subtotal(); got != 250 {
		t.Errorf("expected subtotal 250, got %v", got)
	}
	if cart.Total() != cart.Subtotal() {
		t.Errorf("expected total to equal subtotal, got %v vs %v", cart.Total(), cart.Subtotal())
	}
}

// TestSubtotal_EmptyCartIsZero tests the empty case
func TestSubtotal_EmptyCartIsZero(t *testing.T) {
	cart, _ := setupCart(t)

	if got := cart.Subtotal(); got != 0 {
		t.Errorf("expected 0 for empty cart, got %v", got)
	}
}

// TestPersistAndLoad_RoundTrip tests the store round trip across cart instances
func TestPersistAndLoad_RoundTrip(t *testing.T) {
	st := testutil.NewTestStore(t)
	log := logger.New()
	ctx := context.Background()

	cart := services.NewCart(log, st, "test-session")
	cart.Add(pkg("Basic Service", 2999))
	cart.Add(pkg("Standard Service", 4299))
	if err := cart.SetQuantity("Standard Service", 2); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}

	if err := cart.Persist(ctx); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	// A fresh cart for the same session sees the stored rows
	reloaded := services.NewCart(log, st, "test-session")
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	items := reloaded.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 rows after reload, got %d", len(items))
	}
	if items[1].PackageName != "Standard Service" || items[1].Quantity != 2 {
		t.Errorf("unexpected reloaded row: %+v", items[1])
	}
	if reloaded.Subtotal() != 2999+2*4299 {
		t.Errorf("unexpected subtotal after reload: %v", reloaded.Subtotal())
	}
}

// TestLoad_MissingRecordMeansEmptyCart tests that a fresh session loads clean
func TestLoad_MissingRecordMeansEmptyCart(t *testing.T) {
	cart, _ := setupCart(t)
	cart.Add(pkg("Basic Service", 2999))

	// Nothing was ever persisted for this session
	if err := cart.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cart.Len() != 0 {
		t.Errorf("expected empty cart when no record exists, got %d rows", cart.Len())
	}
}
