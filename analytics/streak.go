package analytics

// Streaks holds the longest and the still-running win and loss runs.
type Streaks struct {
	MaxWinStreak      int `json:"maxWinStreak"`
	MaxLossStreak     int `json:"maxLossStreak"`
	CurrentWinStreak  int `json:"currentWinStreak"`
	CurrentLossStreak int `json:"currentLossStreak"`
}

// AnalyzeStreaks walks the trades oldest first. A win extends a winning run
// and ends a losing one, a loss does the reverse, and any other outcome
// resets both counters.
func AnalyzeStreaks(trades []Trade) Streaks {
	var s Streaks
	for _, t := range Chronological(trades) {
		switch t.Outcome {
		case Win:
			s.CurrentWinStreak++
			s.CurrentLossStreak = 0
		case Loss:
			s.CurrentLossStreak++
			s.CurrentWinStreak = 0
		default:
			s.CurrentWinStreak = 0
			s.CurrentLossStreak = 0
		}
		s.MaxWinStreak = max(s.MaxWinStreak, s.CurrentWinStreak)
		s.MaxLossStreak = max(s.MaxLossStreak, s.CurrentLossStreak)
	}
	return s
}
