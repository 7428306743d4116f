package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// Destination groups bookable venues under one location. Its availability
// flag gates every venue beneath it.
type Destination struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url,omitempty"`
	Availability bool   `json:"availability"`
}

// Venue is a concrete bookable space within a destination.
type Venue struct {
	ID            int64           `json:"id"`
	DestinationID int64           `json:"destination_id"`
	Name          string          `json:"name"`
	Capacity      int             `json:"capacity"`
	Price         decimal.Decimal `json:"price"`
	Availability  bool            `json:"availability"`

	// DestinationName is populated on unfiltered listings for display.
	DestinationName string `json:"destination_name,omitempty"`
}

type DestinationInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	// Availability is optional on update; nil keeps the current flag.
	Availability *bool `json:"availability"`
}

type VenueInput struct {
	DestinationID int64           `json:"destination_id"`
	Name          string          `json:"name"`
	Capacity      int             `json:"capacity"`
	Price         decimal.Decimal `json:"price"`
	Availability  *bool           `json:"availability"`
}
