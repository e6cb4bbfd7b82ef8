package session

// Rank is an achievement title derived from a session's score.
type Rank struct {
	Title string
	Badge string
	// MinPercent is the lowest percentage earning this rank.
	MinPercent int
}

// Ranks from highest to lowest.
var (
	RankProdigy    = Rank{Title: "Prodigy", Badge: "👑", MinPercent: 100}
	RankChampion   = Rank{Title: "Champion", Badge: "🏆", MinPercent: 80}
	RankRisingStar = Rank{Title: "Rising Star", Badge: "✨", MinPercent: 60}
	RankHardWorker = Rank{Title: "Hard Worker", Badge: "🔥", MinPercent: 40}
	RankSprout     = Rank{Title: "Sprout", Badge: "🌱", MinPercent: 0}
)

var ranks = []Rank{RankProdigy, RankChampion, RankRisingStar, RankHardWorker, RankSprout}

// RankFor returns the rank for score points over questions answered.
// Sessions with no answers are Sprouts.
func RankFor(score, questions int) Rank {
	if questions <= 0 {
		return RankSprout
	}
	maxScore := questions * PointsPerCorrect
	for _, r := range ranks {
		if score*100 >= r.MinPercent*maxScore {
			return r
		}
	}
	return RankSprout
}

func (r Rank) String() string {
	return r.Badge + " " + r.Title
}
