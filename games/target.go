package games

// Target says where a submitted answer goes. Regular questions get one
// appended row per submission; room slots are a single mutable value
// shared by both players, stored under a negative question id.
type Target interface {
	// QuestionID is the id the row is stored under.
	QuestionID() int64
	isTarget()
}

// PlayerAnswer is a per-player answer to a bank question.
type PlayerAnswer struct {
	Question int64
}

func (t PlayerAnswer) QuestionID() int64 { return t.Question }
func (PlayerAnswer) isTarget()           {}

// RoomSlot is a room-wide singleton value, like the shared movie URL.
type RoomSlot struct {
	Slot int64
}

func (t RoomSlot) QuestionID() int64 { return t.Slot }
func (RoomSlot) isTarget()           {}

// Well-known room slots.
var (
	MovieSlot = RoomSlot{Slot: -1}
	MusicSlot = RoomSlot{Slot: -2}
)

// TargetFor maps a wire question id to its target.
func TargetFor(questionID int64) Target {
	if questionID < 0 {
		return RoomSlot{Slot: questionID}
	}
	return PlayerAnswer{Question: questionID}
}
