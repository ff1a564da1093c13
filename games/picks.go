package games

import "math/rand/v2"

// Pick is a bit of flavor text one partner "picks" for the other.
type Pick struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

var picks = []Pick{
	{Type: "song", Content: "Perfect by Ed Sheeran"},
	{Type: "song", Content: "Tum Hi Ho by Arijit Singh"},
	{Type: "song", Content: "Can't Help Falling in Love by Elvis Presley"},
	{Type: "song", Content: "Adore You by Harry Styles"},
	{Type: "message", Content: "You make ordinary days feel like weekends."},
	{Type: "message", Content: "Thinking of you, as usual."},
	{Type: "message", Content: "You're my favorite notification."},
	{Type: "question", Content: "What's a memory of us you replay most often?"},
	{Type: "question", Content: "Where should our next trip be?"},
	{Type: "question", Content: "What's one small thing I do that makes your day?"},
	{Type: "dateIdea", Content: "Cook a new recipe together over video call."},
	{Type: "dateIdea", Content: "Watch the sunset and send each other photos."},
	{Type: "dateIdea", Content: "Build a shared playlist, one song each at a time."},
}

// RandomPick returns a random entry from the picks catalog.
func RandomPick() Pick {
	return picks[rand.IntN(len(picks))]
}

// Picks returns a copy of the whole catalog.
func Picks() []Pick {
	out := make([]Pick, len(picks))
	copy(out, picks)
	return out
}
