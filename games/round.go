package games

// RoundView summarizes what the clients need to render the current round:
// which question is up, who has answered it, and who may advance.
type RoundView struct {
	Phase        Phase   `json:"phase"`
	Round        int     `json:"round"`
	QuestionID   *int64  `json:"questionId,omitempty"`
	Answered     []int64 `json:"answered"`
	BothAnswered bool    `json:"bothAnswered"`
	Match        *bool   `json:"match,omitempty"`
	HostID       *int64  `json:"hostId,omitempty"`
}

// ViewRound builds the RoundView for room. "Both answered" is computed
// from whatever rows the caller fetched, so it only becomes true once the
// second answer is visible to the reading client.
func ViewRound(room Room, players []Player, responses []Response) RoundView {
	view := RoundView{
		Phase:    room.Phase,
		Round:    room.Round,
		Answered: []int64{},
	}

	if host, ok := Host(players); ok {
		id := host.ID
		view.HostID = &id
	}

	qid, ok := CurrentQuestion(room)
	if !ok {
		return view
	}
	view.QuestionID = &qid

	// First answer per player wins, matching what the clients display.
	answers := make(map[int64]string, 2)
	for _, r := range responses {
		if r.QuestionID != qid {
			continue
		}
		if _, seen := answers[r.PlayerID]; seen {
			continue
		}
		answers[r.PlayerID] = r.Answer
		view.Answered = append(view.Answered, r.PlayerID)
	}

	if len(players) < 2 {
		return view
	}

	mine, ok1 := answers[players[0].ID]
	theirs, ok2 := answers[players[1].ID]
	if ok1 && ok2 {
		view.BothAnswered = true
		match := mine == theirs
		view.Match = &match
	}

	return view
}
