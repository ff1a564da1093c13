package games

import (
	"errors"
	"fmt"
)

var (
	// ErrNotActivity is returned when a dashboard selection names a phase
	// that cannot be played.
	ErrNotActivity = errors.New("not a selectable activity")

	// ErrNoAdvance is returned by Advance for phases that only move on by
	// an explicit selection, like the dashboard.
	ErrNoAdvance = errors.New("phase has no next round")

	// ErrIllegalTransition is returned by CheckTransition in strict mode.
	ErrIllegalTransition = errors.New("illegal phase transition")
)

// Transition is the (phase, round) pair a room should move to.
type Transition struct {
	Phase Phase `json:"phase"`
	Round int   `json:"round"`
}

// Start moves a room out of the lobby once both players are in.
func Start() Transition {
	return Transition{Phase: Dashboard, Round: 1}
}

// PlayAgain returns to the dashboard from the summary screen.
func PlayAgain() Transition {
	return Transition{Phase: Dashboard, Round: 1}
}

// SelectActivity starts activity p at its first round.
func SelectActivity(p Phase) (Transition, error) {
	if !p.IsActivity() {
		return Transition{}, fmt.Errorf("%w: %q", ErrNotActivity, p)
	}
	return Transition{Phase: p, Round: 1}, nil
}

// Advance computes where a room goes after both players finish its
// current round. Scored activities end in the summary after the last
// question of their frozen list; dares go back to the dashboard.
func Advance(room Room) (Transition, error) {
	switch room.Phase {
	case Lobby, Summary, MovieNight, MusicTogether:
		return Transition{Phase: Dashboard, Round: 1}, nil
	case Dashboard:
		return Transition{}, fmt.Errorf("%w: %s", ErrNoAdvance, room.Phase)
	}

	category, ok := room.Phase.Category()
	if !ok {
		return Transition{}, fmt.Errorf("%w: %q", ErrNoAdvance, room.Phase)
	}

	last := len(room.QuestionSet(category))
	if room.Round >= last {
		if room.Phase.Scored() {
			return Transition{Phase: Summary, Round: 1}, nil
		}
		return Transition{Phase: Dashboard, Round: 1}, nil
	}

	return Transition{Phase: room.Phase, Round: room.Round + 1}, nil
}

// CurrentQuestion returns the question id for the room's current round,
// read from the frozen list of the phase's category. Rounds are 1-based.
func CurrentQuestion(room Room) (int64, bool) {
	category, ok := room.Phase.Category()
	if !ok {
		return 0, false
	}

	ids := room.QuestionSet(category)
	if room.Round < 1 || room.Round > len(ids) {
		return 0, false
	}

	return ids[room.Round-1], true
}

// CheckTransition validates a requested move against the transition graph
// the clients follow. The server only enforces it in strict mode.
func CheckTransition(from Room, to Transition) error {
	if legal(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s/%d -> %s/%d", ErrIllegalTransition, from.Phase, from.Round, to.Phase, to.Round)
}

func legal(from Room, to Transition) bool {
	// Going back to the dashboard is always allowed; every activity has a
	// back button.
	if to.Phase == Dashboard {
		return from.Phase != Lobby || to.Round <= 1
	}

	switch from.Phase {
	case Lobby:
		return false
	case Dashboard:
		return to.Phase.IsActivity() && to.Round <= 1
	case Summary:
		return false
	}

	if !from.Phase.IsActivity() {
		return false
	}

	if to.Phase == from.Phase {
		// Rounds only move forward within a play-through.
		return to.Round >= from.Round
	}

	return to.Phase == Summary && from.Phase.Scored()
}
