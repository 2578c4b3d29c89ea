package repo

type DailyStatsFilter struct {
	EpidemicID *int64
	Limit      int
}

// limit caps the requested row count at DailyStatsLimit.
func (f DailyStatsFilter) limit() int {
	if f.Limit <= 0 || f.Limit > DailyStatsLimit {
		return DailyStatsLimit
	}
	return f.Limit
}
