package models

import "time"

// DailyStat is one epidemic's measured state in one location on one date.
// Cases, Deaths, Recovered and Active are cumulative; the New* fields are
// the deltas reported for that date.
type DailyStat struct {
	ID           int64     `json:"id" db:"id"`
	Date         time.Time `json:"date" db:"date"`
	Cases        int64     `json:"cases" db:"cases"`
	Deaths       int64     `json:"deaths" db:"deaths"`
	Recovered    int64     `json:"recovered" db:"recovered"`
	Active       int64     `json:"active" db:"active"`
	NewCases     int64     `json:"new_cases" db:"new_cases"`
	NewDeaths    int64     `json:"new_deaths" db:"new_deaths"`
	NewRecovered int64     `json:"new_recovered" db:"new_recovered"`
	EpidemicID   int64     `json:"id_epidemic" db:"id_epidemic"`
	LocationID   int64     `json:"id_loc" db:"id_loc"`
}
