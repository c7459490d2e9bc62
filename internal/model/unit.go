package model

import "time"

// UnitKind splits the catalog into houses and other rentable spaces.  The
// two kinds share one schema and differ only in which public listing they
// appear under.
type UnitKind string

const (
	KindHouse UnitKind = "house"
	KindOther UnitKind = "other"
)

// Valid reports whether k is a known unit kind.
func (k UnitKind) Valid() bool {
	return k == KindHouse || k == KindOther
}

// Unit is a rentable entity identified by a slug-like id (e.g. "oxala").
// ManuallyUnavailable hides the unit from public listings without touching
// its bookings.
type Unit struct {
	ID                  string    `json:"id"`
	Kind                UnitKind  `json:"kind"`
	Name                string    `json:"name"`
	ShortDescription    string    `json:"shortDescription,omitempty"`
	LongDescription     string    `json:"longDescription,omitempty"`
	Image               string    `json:"image,omitempty"`
	Images              []string  `json:"images,omitempty"`
	Capacity            int       `json:"capacity,omitempty"`
	ManuallyUnavailable bool      `json:"isManuallyUnavailable"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
