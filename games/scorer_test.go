package games

import "testing"

func answers(roomID int64, rows ...any) []Response {
	// rows is (playerID, questionID, answer) triples.
	var out []Response
	for i := 0; i+2 < len(rows); i += 3 {
		out = append(out, Response{
			ID:         int64(len(out) + 1),
			RoomID:     roomID,
			PlayerID:   int64(rows[i].(int)),
			QuestionID: int64(rows[i+1].(int)),
			Answer:     rows[i+2].(string),
		})
	}
	return out
}

func TestScoreCategoryMatches(t *testing.T) {
	t.Parallel()

	rs := answers(1,
		1, 10, "Pizza",
		2, 10, "Pizza",
		1, 11, "Tea",
		2, 11, "Coffee",
		1, 12, "Beach",
		2, 12, "Beach",
	)

	got, ok := ScoreCategory(CategoryQuiz, []int64{10, 11, 12}, rs)
	if !ok {
		t.Fatal("expected a score")
	}
	if got.Matches != 2 || got.Total != 3 {
		t.Fatalf("matches/total = %d/%d, want 2/3", got.Matches, got.Total)
	}
	if got.Percent != 67 {
		t.Fatalf("percent = %d, want 67", got.Percent)
	}
}

func TestScoreCategoryEdgeCases(t *testing.T) {
	t.Parallel()

	if _, ok := ScoreCategory(CategoryLikely, nil, answers(1, 1, 10, "Me")); ok {
		t.Fatal("empty list should be absent")
	}

	got, ok := ScoreCategory(CategoryLikely, []int64{10}, answers(1, 1, 10, "Me"))
	if !ok || got.Percent != 0 || got.Total != 0 {
		t.Fatalf("unpaired score = %+v, %v; want 0 percent present", got, ok)
	}

	// A double submission leaves three rows, so the question is not paired.
	triple := answers(1, 1, 10, "A", 1, 10, "A", 2, 10, "A")
	got, _ = ScoreCategory(CategoryQuiz, []int64{10}, triple)
	if got.Total != 0 {
		t.Fatalf("tripled question counted: %+v", got)
	}

	// Comparison is byte-exact.
	got, _ = ScoreCategory(CategoryQuiz, []int64{10}, answers(1, 1, 10, "pizza", 2, 10, "Pizza"))
	if got.Matches != 0 || got.Total != 1 {
		t.Fatalf("case-different answers = %+v, want 0/1", got)
	}
}

func TestCompatibilityExcludesEmptyCategories(t *testing.T) {
	t.Parallel()

	room := Room{
		QuizQuestions:     []int64{10, 11},
		ThisThatQuestions: []int64{20},
	}
	rs := answers(1,
		1, 10, "Pizza", 2, 10, "Pizza",
		1, 11, "Tea", 2, 11, "Coffee",
		1, 20, "Night", 2, 20, "Night",
	)

	report := Compatibility(room, rs)
	if len(report.Categories) != 2 {
		t.Fatalf("categories = %+v, want quiz and this_that only", report.Categories)
	}
	// (50 + 100) / 2, likely and would_you_rather left out.
	if report.Overall != 75 {
		t.Fatalf("overall = %d, want 75", report.Overall)
	}
	if report.Vibe != "Solid Connection!" {
		t.Fatalf("vibe = %q", report.Vibe)
	}
}

func TestCompatibilitySingleQuestionMatch(t *testing.T) {
	t.Parallel()

	room := Room{QuizQuestions: []int64{10}}
	report := Compatibility(room, answers(1, 1, 10, "Pizza", 2, 10, "Pizza"))
	if report.Overall != 100 || report.Categories[0].Percent != 100 {
		t.Fatalf("report = %+v, want 100%%", report)
	}
	if report.Vibe != "Soulmates?!" {
		t.Fatalf("vibe = %q", report.Vibe)
	}
}

func TestCompatibilityNoData(t *testing.T) {
	t.Parallel()

	report := Compatibility(Room{}, nil)
	if report.Overall != 0 || len(report.Categories) != 0 {
		t.Fatalf("report = %+v, want empty", report)
	}
	if report.Vibe != "Getting to know each other!" {
		t.Fatalf("vibe = %q", report.Vibe)
	}
}

func TestViewRound(t *testing.T) {
	t.Parallel()

	room := Room{Phase: Quiz, Round: 1, QuizQuestions: []int64{10, 11}}
	players := []Player{{ID: 1}, {ID: 2}}

	view := ViewRound(room, players, answers(1, 2, 10, "Pizza"))
	if view.BothAnswered || len(view.Answered) != 1 || view.Answered[0] != 2 {
		t.Fatalf("half-answered view = %+v", view)
	}
	if view.HostID == nil || *view.HostID != 1 {
		t.Fatalf("host = %v, want 1", view.HostID)
	}
	if view.QuestionID == nil || *view.QuestionID != 10 {
		t.Fatalf("question = %v, want 10", view.QuestionID)
	}

	view = ViewRound(room, players, answers(1, 2, 10, "Pizza", 1, 10, "Sushi"))
	if !view.BothAnswered || view.Match == nil || *view.Match {
		t.Fatalf("mismatched view = %+v", view)
	}

	view = ViewRound(Room{Phase: Dashboard, Round: 1}, players, nil)
	if view.QuestionID != nil || view.BothAnswered {
		t.Fatalf("dashboard view = %+v", view)
	}
}
