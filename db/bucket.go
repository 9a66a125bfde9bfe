package db

import (
	"github.com/boltdb/bolt"
)

// GetRouteBucket returns the route record storage bucket.
func (kvg *DB) GetRouteBucket(tx *bolt.Tx) *bolt.Bucket {
	return GetOrEnsureBucket(tx, []byte("routes"))
}

// GetPointBucket returns the point sequence storage bucket.
func (kvg *DB) GetPointBucket(tx *bolt.Tx) *bolt.Bucket {
	return GetOrEnsureBucket(tx, []byte("points"))
}

func (kvg *DB) ensureBuckets() error {
	return kvg.DB.Update(func(tx *bolt.Tx) error {
		kvg.GetRouteBucket(tx)
		kvg.GetPointBucket(tx)
		return nil
	})
}
