package stats

type GlobalStats struct {
	TotalEpidemics  int64    `json:"total_epidemics"`
	ActiveEpidemics int64    `json:"active_epidemics"`
	TotalCases      int64    `json:"total_cases"`
	TotalDeaths     int64    `json:"total_deaths"`
	MortalityRate   *float64 `json:"mortality_rate"`
}

type TypeDistribution struct {
	Type          *string `json:"type"`
	EpidemicCount int64   `json:"epidemic_count"`
	Cases         int64   `json:"cases"`
	Deaths        int64   `json:"deaths"`
}

type CountryDistribution struct {
	Country string `json:"country"`
	Cases   int64  `json:"cases"`
	Deaths  int64  `json:"deaths"`
}

type DailyEvolution struct {
	Date        string `json:"date"`
	NewCases    int64  `json:"new_cases"`
	NewDeaths   int64  `json:"new_deaths"`
	ActiveCases int64  `json:"active_cases"`
}

type ActiveEpidemic struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        *string `json:"type"`
	Country     string  `json:"country"`
	TotalCases  int64   `json:"total_cases"`
	TotalDeaths int64   `json:"total_deaths"`
}

// DashboardStats is the full dashboard snapshot.
type DashboardStats struct {
	GlobalStats            GlobalStats           `json:"global_stats"`
	TypeDistribution       []TypeDistribution    `json:"type_distribution"`
	GeographicDistribution []CountryDistribution `json:"geographic_distribution"`
	DailyEvolution         []DailyEvolution      `json:"daily_evolution"`
	TopActiveEpidemics     []ActiveEpidemic      `json:"top_active_epidemics"`
}

type EpidemicRef struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Type *string `json:"type"`
}

type LocationRef struct {
	Country string  `json:"country"`
	Region  *string `json:"region"`
}

type DailyStat struct {
	ID           int64       `json:"id"`
	Date         string      `json:"date"`
	Cases        int64       `json:"cases"`
	Active       int64       `json:"active"`
	Deaths       int64       `json:"deaths"`
	Recovered    int64       `json:"recovered"`
	NewCases     int64       `json:"new_cases"`
	NewDeaths    int64       `json:"new_deaths"`
	NewRecovered int64       `json:"new_recovered"`
	Epidemic     EpidemicRef `json:"epidemic"`
	Location     LocationRef `json:"location"`
}

type TypeStats struct {
	Type           *string `json:"type"`
	Count          int64   `json:"count"`
	TotalCases     int64   `json:"total_cases"`
	TotalDeaths    int64   `json:"total_deaths"`
	AvgActiveCases int64   `json:"avg_active_cases"`
}

type GeographicStats struct {
	Country        string  `json:"country"`
	Region         *string `json:"region"`
	EpidemicCount  int64   `json:"epidemic_count"`
	TotalCases     int64   `json:"total_cases"`
	TotalDeaths    int64   `json:"total_deaths"`
	AvgActiveCases int64   `json:"avg_active_cases"`
}

type Location struct {
	ID      int64   `json:"id"`
	Country string  `json:"country"`
	Region  *string `json:"region"`
	IsoCode *string `json:"iso_code"`
}

// FilterOptions lists the values clients can filter epidemics by.
type FilterOptions struct {
	Countries []string `json:"countries"`
	Types     []string `json:"types"`
}

type EpidemicDetail struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Type      *string `json:"type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Active    bool    `json:"active"`
}
