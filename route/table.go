package route

import (
	"sync"
)

// tableEntry pairs a validator with its contract lock.
type tableEntry struct {
	// mtx serializes all access to the validator.
	mtx sync.Mutex
	// validator is the exclusively-owned validator for the contract.
	validator *RouteValidator
}

// Table keys active validators by contract id. Each entry carries its
// own lock, so N contracts progress in parallel with no cross-contract
// contention; the table mutex only guards the map itself.
type Table struct {
	tableMtx sync.Mutex
	table    map[string]*tableEntry
}

// NewTable builds an empty validator table.
func NewTable() *Table {
	return &Table{
		table: make(map[string]*tableEntry),
	}
}

// Begin registers a new validator for a contract.
func (t *Table) Begin(config RouteConfig) (*RouteValidator, error) {
	validator, err := NewRouteValidator(config)
	if err != nil {
		return nil, err
	}

	t.tableMtx.Lock()
	defer t.tableMtx.Unlock()

	if _, ok := t.table[config.ContractID]; ok {
		return nil, ErrRouteExists
	}

	t.table[config.ContractID] = &tableEntry{validator: validator}
	return validator, nil
}

// Restore registers a previously persisted validator for a contract.
func (t *Table) Restore(validator *RouteValidator) error {
	t.tableMtx.Lock()
	defer t.tableMtx.Unlock()

	contractID := validator.ContractID()
	if _, ok := t.table[contractID]; ok {
		return ErrRouteExists
	}

	t.table[contractID] = &tableEntry{validator: validator}
	return nil
}

// With runs fn against the contract's validator under its lock. Calls
// for the same contract serialize; points are appended in the order
// calls are admitted here. fn should hold the lock no longer than
// necessary: compute, then release before any network submission.
func (t *Table) With(contractID string, fn func(v *RouteValidator) error) error {
	t.tableMtx.Lock()
	entry, ok := t.table[contractID]
	t.tableMtx.Unlock()

	if !ok {
		return ErrRouteNotFound
	}

	entry.mtx.Lock()
	defer entry.mtx.Unlock()
	return fn(entry.validator)
}

// Remove drops the contract's validator from the table and returns it,
// for hand-off to archival storage.
func (t *Table) Remove(contractID string) (*RouteValidator, error) {
	t.tableMtx.Lock()
	defer t.tableMtx.Unlock()

	entry, ok := t.table[contractID]
	if !ok {
		return nil, ErrRouteNotFound
	}

	delete(t.table, contractID)
	return entry.validator, nil
}

// Len returns the number of active contracts.
func (t *Table) Len() int {
	t.tableMtx.Lock()
	defer t.tableMtx.Unlock()
	return len(t.table)
}
