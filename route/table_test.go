package route

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTableBegin(t *testing.T) {
	table := NewTable()

	v, err := table.Begin(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	if v.ContractID() != "contract-1" {
		t.Fatalf("contract id = %s", v.ContractID())
	}

	if _, err := table.Begin(testConfig()); !errors.Is(err, ErrRouteExists) {
		t.Fatalf("err = %v, expected ErrRouteExists", err)
	}
	if table.Len() != 1 {
		t.Fatalf("table len = %d, expected 1", table.Len())
	}
}

func TestTableWithUnknownContract(t *testing.T) {
	table := NewTable()

	err := table.With("missing", func(v *RouteValidator) error {
		t.Fatal("fn must not run for an unknown contract")
		return nil
	})
	if !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("err = %v, expected ErrRouteNotFound", err)
	}
}

func TestTableRemove(t *testing.T) {
	table := NewTable()
	if _, err := table.Begin(testConfig()); err != nil {
		t.Fatal(err)
	}

	v, err := table.Remove("contract-1")
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || v.ContractID() != "contract-1" {
		t.Fatal("removed validator not returned")
	}

	if _, err := table.Remove("contract-1"); !errors.Is(err, ErrRouteNotFound) {
		t.Fatalf("err = %v, expected ErrRouteNotFound", err)
	}
}

// TestTableConcurrentContracts drives many contracts in parallel and
// checks per-contract ordering: each validator must hold its own full
// sequence in admission order.
func TestTableConcurrentContracts(t *testing.T) {
	table := NewTable()
	now := time.Unix(1700000000, 0)

	const contracts = 8
	const pointsPerContract = 50

	for i := 0; i < contracts; i++ {
		config := testConfig()
		config.ContractID = fmt.Sprintf("contract-%d", i)
		if _, err := table.Begin(config); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < contracts; i++ {
		contractID := fmt.Sprintf("contract-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < pointsPerContract; j++ {
				err := table.With(contractID, func(v *RouteValidator) error {
					_, err := v.AddPoint(testPoint(1, 1, now.Unix(), 5), now)
					return err
				})
				if err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	for i := 0; i < contracts; i++ {
		contractID := fmt.Sprintf("contract-%d", i)
		err := table.With(contractID, func(v *RouteValidator) error {
			if v.PointCount() != pointsPerContract {
				return fmt.Errorf("%s has %d points, expected %d", contractID, v.PointCount(), pointsPerContract)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}
}
