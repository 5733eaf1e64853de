package lena

import (
	"context"
	"time"
)

// Store persists the three record kinds. Each kind is an independent table
// keyed by record ID:
//   - Put* inserts or replaces the record with the same ID (last write wins),
//     assigning a new ID when it is empty, and returns the record as stored.
//   - Properties, Investors and Purchases return every record, in first
//     insertion order.
//   - Delete* removes the record with that ID. Unknown IDs are ignored, and
//     nothing referencing the deleted record is touched.
type Store interface {
	PutProperty(ctx context.Context, p Property) (Property, error)
	Properties(ctx context.Context) ([]Property, error)
	DeleteProperty(ctx context.Context, id string) error

	PutInvestor(ctx context.Context, i Investor) (Investor, error)
	Investors(ctx context.Context) ([]Investor, error)
	DeleteInvestor(ctx context.Context, id string) error

	PutPurchase(ctx context.Context, p Purchase) (Purchase, error)
	Purchases(ctx context.Context) ([]Purchase, error)
	DeletePurchase(ctx context.Context, id string) error

	Close() error
}

// Stamp returns a copy of p ready to be stored at time now: it has an ID and
// its update time is now, to the millisecond.
func (p Property) Stamp(now time.Time) Property {
	if p.ID == "" {
		p.ID = NewID()
	}
	p.UpdatedAt = now.UTC().Truncate(time.Millisecond)
	return p
}

// Stamp returns a copy of i ready to be stored at time now: it has an ID and
// a creation time.
func (i Investor) Stamp(now time.Time) Investor {
	if i.ID == "" {
		i.ID = NewID()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
	return i
}

// Stamp returns a copy of p ready to be stored at time now: it has an ID and
// a creation time.
func (p Purchase) Stamp(now time.Time) Purchase {
	if p.ID == "" {
		p.ID = NewID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now.UTC().Truncate(time.Millisecond)
	}
	return p
}

// FindProperty returns the property with that id in list.
func FindProperty(list []Property, id string) (Property, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// FindInvestor returns the investor with that id in list.
func FindInvestor(list []Investor, id string) (Investor, bool) {
	for _, i := range list {
		if i.ID == id {
			return i, true
		}
	}
	return Investor{}, false
}
