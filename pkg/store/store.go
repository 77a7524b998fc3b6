// Package store persists generated designs.
//
// [DirStore] writes a design directory the way the generator has always
// produced it: one .circuit.tsx per solved design, next to a JSON record.
// [MongoStore] keeps the records in a MongoDB collection keyed by
// (pin_count, variant), for the server and for large batch runs.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/pinboard/pkg/pipeline"
)

// Record is a stored design plus bookkeeping.
type Record struct {
	pipeline.Design `bson:",inline"`

	RunID     string    `json:"run_id,omitempty" bson:"run_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store saves and loads design records. Put replaces any record with the
// same pin count and variant. Get returns a NOT_FOUND error for a missing
// record. List returns the records for a pin count ordered by variant.
type Store interface {
	Put(ctx context.Context, r *Record) error
	Get(ctx context.Context, pinCount, id int) (*Record, error)
	List(ctx context.Context, pinCount int) ([]*Record, error)
	Close() error
}
