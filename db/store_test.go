package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/caiorlm/logichain/geo"
	"github.com/caiorlm/logichain/route"
)

func floatPtr(v float64) *float64 {
	return &v
}

func testDB(t *testing.T) *DB {
	t.Helper()
	store, err := OpenDB(filepath.Join(t.TempDir(), "routes.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testValidator(t *testing.T) *route.RouteValidator {
	t.Helper()
	v, err := route.NewRouteValidator(route.RouteConfig{
		ContractID:      "contract-1",
		ToleranceRadius: 0,
		MaxError:        10,
	})
	if err != nil {
		t.Fatal(err)
	}

	now := time.Unix(1700000000, 0)
	for i := int64(0); i < 2; i++ {
		point := &geo.GeoPoint{
			Latitude:  1,
			Longitude: 1 + float64(i)*0.0001,
			Timestamp: now.Unix() + i,
			Accuracy:  floatPtr(5),
		}
		if _, err := v.AddPoint(point, now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}
	return v
}

func TestSaveFetchRoundTrip(t *testing.T) {
	store := testDB(t)
	v := testValidator(t)

	if err := store.SaveRoute(v); err != nil {
		t.Fatal(err)
	}

	loaded, found, err := store.FetchRoute("contract-1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("saved route not found")
	}

	if loaded.ID() != v.ID() {
		t.Fatalf("id %s != %s", loaded.ID(), v.ID())
	}
	if loaded.ContractID() != "contract-1" {
		t.Fatalf("contract id = %s", loaded.ContractID())
	}
	if loaded.Status() != route.StatusInProgress {
		t.Fatalf("status = %s", loaded.Status())
	}
	if loaded.PointCount() != 2 {
		t.Fatalf("point count = %d", loaded.PointCount())
	}
	if loaded.Config().MaxError != 10 {
		t.Fatalf("config max error = %v", loaded.Config().MaxError)
	}
}

func TestFetchRestoresProof(t *testing.T) {
	store := testDB(t)
	v := testValidator(t)

	hash, err := v.GenerateProof()
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRoute(v); err != nil {
		t.Fatal(err)
	}

	loaded, found, err := store.FetchRoute("contract-1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("saved route not found")
	}
	if loaded.Status() != route.StatusCompleted {
		t.Fatalf("status = %s", loaded.Status())
	}
	if loaded.ProofHash() != hash {
		t.Fatalf("proof hash %s != %s", loaded.ProofHash(), hash)
	}

	// The restored sequence must reproduce the identical proof.
	again, err := loaded.GenerateProof()
	if err != nil {
		t.Fatal(err)
	}
	if again != hash {
		t.Fatalf("restored proof %s != %s", again, hash)
	}
}

func TestUpdateStatus(t *testing.T) {
	store := testDB(t)
	v := testValidator(t)

	if err := store.SaveRoute(v); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateStatus("contract-1", route.StatusFailed); err != nil {
		t.Fatal(err)
	}

	loaded, found, err := store.FetchRoute("contract-1")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("saved route not found")
	}
	if loaded.Status() != route.StatusFailed {
		t.Fatalf("status = %s, expected failed", loaded.Status())
	}
}

func TestUpdateStatusUnknownContract(t *testing.T) {
	store := testDB(t)
	if err := store.UpdateStatus("missing", route.StatusFailed); err == nil {
		t.Fatal("expected error for unknown contract")
	}
}

func TestFetchMissing(t *testing.T) {
	store := testDB(t)

	_, found, err := store.FetchRoute("missing")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("found a route that was never saved")
	}
}
