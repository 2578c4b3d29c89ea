package models

type Location struct {
	ID      int64   `json:"id" db:"id"`
	Country string  `json:"country" db:"country"`
	Region  *string `json:"region" db:"region"`
	IsoCode *string `json:"iso_code" db:"iso_code"`
}
