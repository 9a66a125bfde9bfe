package db

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/caiorlm/logichain/geo"
	"github.com/caiorlm/logichain/route"
)

// RouteRecord is the persisted form of a route.
type RouteRecord struct {
	ID         string            `json:"id"`
	ContractID string            `json:"contract_id"`
	Config     route.RouteConfig `json:"config"`
	Status     string            `json:"status"`
	StartTime  int64             `json:"start_time"`
	EndTime    int64             `json:"end_time,omitempty"`
	ProofHash  string            `json:"proof_hash,omitempty"`
}

// SaveRoute persists the route record and its full point sequence.
// Called after every accepted mutation; failures propagate to the
// caller unchanged and are never retried here.
func (kvg *DB) SaveRoute(validator *route.RouteValidator) error {
	points := validator.Points()

	record := &RouteRecord{
		ID:         validator.ID(),
		ContractID: validator.ContractID(),
		Config:     validator.Config(),
		Status:     validator.Status().String(),
		ProofHash:  validator.ProofHash(),
	}
	if len(points) > 0 {
		record.StartTime = points[0].Timestamp
		record.EndTime = points[len(points)-1].Timestamp
	}

	recordData, err := json.Marshal(record)
	if err != nil {
		return err
	}
	pointData, err := json.Marshal(points)
	if err != nil {
		return err
	}

	key := []byte(validator.ContractID())
	return kvg.DB.Update(func(tx *bolt.Tx) error {
		if err := kvg.GetRouteBucket(tx).Put(key, recordData); err != nil {
			return err
		}
		return kvg.GetPointBucket(tx).Put(key, pointData)
	})
}

// UpdateStatus rewrites the persisted status for a contract.
func (kvg *DB) UpdateStatus(contractID string, status route.ValidationStatus) error {
	key := []byte(contractID)
	return kvg.DB.Update(func(tx *bolt.Tx) error {
		bucket := kvg.GetRouteBucket(tx)
		data := bucket.Get(key)
		if data == nil {
			return fmt.Errorf("no saved route for contract %s", contractID)
		}

		record := &RouteRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return err
		}

		record.Status = status.String()
		updated, err := json.Marshal(record)
		if err != nil {
			return err
		}
		return bucket.Put(key, updated)
	})
}

// FetchRoute loads the saved state for a contract. The bool reports
// whether any state was found.
func (kvg *DB) FetchRoute(contractID string) (*route.RouteValidator, bool, error) {
	key := []byte(contractID)

	var record *RouteRecord
	var points []*geo.GeoPoint
	err := kvg.DB.View(func(tx *bolt.Tx) error {
		data := kvg.GetRouteBucket(tx).Get(key)
		if data == nil {
			return nil
		}

		record = &RouteRecord{}
		if err := json.Unmarshal(data, record); err != nil {
			return err
		}

		if pointData := kvg.GetPointBucket(tx).Get(key); pointData != nil {
			return json.Unmarshal(pointData, &points)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if record == nil {
		return nil, false, nil
	}

	status, err := route.ParseStatus(record.Status)
	if err != nil {
		return nil, false, err
	}

	validator := route.RestoreRouteValidator(
		record.ID,
		record.Config,
		points,
		status,
		record.ProofHash,
	)
	return validator, true, nil
}
