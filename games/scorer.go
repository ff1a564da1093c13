package games

import "math"

// CategoryScore is the match rate for one category.
type CategoryScore struct {
	Category Category `json:"category"`
	Percent  int      `json:"percent"`
	Matches  int      `json:"matches"`
	Total    int      `json:"total"`
}

// Report is the compatibility shown on the summary screen.
type Report struct {
	Categories []CategoryScore `json:"categories"`
	Overall    int             `json:"overall"`
	Vibe       string          `json:"vibe"`
}

// ScoreCategory scores one frozen question list against a room's
// responses. A question counts only when it has exactly two responses,
// and it matches when both answers are byte-equal. The second return is
// false when ids is empty. With ids present but nothing paired yet the
// score is 0, not absent.
func ScoreCategory(c Category, ids []int64, responses []Response) (CategoryScore, bool) {
	if len(ids) == 0 {
		return CategoryScore{}, false
	}

	byQuestion := make(map[int64][]string, len(ids))
	for _, r := range responses {
		byQuestion[r.QuestionID] = append(byQuestion[r.QuestionID], r.Answer)
	}

	score := CategoryScore{Category: c}
	for _, id := range ids {
		answers := byQuestion[id]
		if len(answers) != 2 {
			continue
		}
		score.Total++
		if answers[0] == answers[1] {
			score.Matches++
		}
	}

	if score.Total > 0 {
		score.Percent = roundPercent(float64(score.Matches) / float64(score.Total) * 100)
	}

	return score, true
}

// Compatibility scores every scored category of room. Categories without
// a question list are left out of the overall mean rather than counted
// as zero.
func Compatibility(room Room, responses []Response) Report {
	report := Report{Categories: []CategoryScore{}}

	sum := 0
	for _, c := range ScoredCategories {
		score, ok := ScoreCategory(c, room.QuestionSet(c), responses)
		if !ok {
			continue
		}
		report.Categories = append(report.Categories, score)
		sum += score.Percent
	}

	if n := len(report.Categories); n > 0 {
		report.Overall = roundPercent(float64(sum) / float64(n))
	}
	report.Vibe = Vibe(report.Overall)

	return report
}

// Vibe labels an overall score.
func Vibe(overall int) string {
	switch {
	case overall > 80:
		return "Soulmates?!"
	case overall > 50:
		return "Solid Connection!"
	}
	return "Getting to know each other!"
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
