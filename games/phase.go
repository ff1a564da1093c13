/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package games holds the couplebox game rules: phases and rounds, the
// per-room question sets, and compatibility scoring. Everything here is
// pure logic over already-fetched data; persistence lives in package store.
package games

import (
	"time"
)

// Phase is the named activity a room is currently in.
type Phase string

const (
	Lobby          Phase = "lobby"
	Dashboard      Phase = "dashboard"
	Quiz           Phase = "quiz"
	ThisThat       Phase = "this_that"
	Likely         Phase = "likely"
	Dare           Phase = "dare"
	WouldYouRather Phase = "would_you_rather"
	MovieNight     Phase = "movie_night"
	MusicTogether  Phase = "music_together"
	Summary        Phase = "summary"
)

// Activities are the phases selectable from the dashboard.
var Activities = []Phase{Quiz, ThisThat, Likely, Dare, WouldYouRather, MovieNight, MusicTogether}

// IsActivity reports whether p can be picked from the dashboard.
func (p Phase) IsActivity() bool {
	for _, a := range Activities {
		if a == p {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case Lobby, Dashboard, Summary:
		return true
	}
	return p.IsActivity()
}

// Scored reports whether answers in p count toward compatibility.
func (p Phase) Scored() bool {
	switch p {
	case Quiz, ThisThat, Likely, WouldYouRather:
		return true
	}
	return false
}

// Category returns the question category backing p, if any.
func (p Phase) Category() (Category, bool) {
	switch p {
	case Quiz, ThisThat, Likely, Dare, WouldYouRather:
		return Category(p), true
	}
	return "", false
}

// Category tags questions in the bank. Category names match the phases
// that draw from them.
type Category string

const (
	CategoryQuiz           = Category(Quiz)
	CategoryThisThat       = Category(ThisThat)
	CategoryLikely         = Category(Likely)
	CategoryDare           = Category(Dare)
	CategoryWouldYouRather = Category(WouldYouRather)
)

// Categories lists every category that gets a frozen question set per room.
var Categories = []Category{CategoryQuiz, CategoryThisThat, CategoryLikely, CategoryWouldYouRather, CategoryDare}

// ScoredCategories lists the categories shown on the summary screen.
var ScoredCategories = []Category{CategoryQuiz, CategoryThisThat, CategoryLikely, CategoryWouldYouRather}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Room is one shared session and its phase/round cursor.
type Room struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Phase     Phase      `json:"phase"`
	Round     int        `json:"round"`
	MetDate   *time.Time `json:"metDate"`
	CreatedAt time.Time  `json:"createdAt"`
	Version   int64      `json:"version"`

	QuizQuestions           []int64 `json:"quizQuestions"`
	ThisThatQuestions       []int64 `json:"thisThatQuestions"`
	LikelyQuestions         []int64 `json:"likelyQuestions"`
	WouldYouRatherQuestions []int64 `json:"wouldYouRatherQuestions"`
	DareQuestions           []int64 `json:"dareQuestions"`
}

// QuestionSet returns the frozen question ids for category c.
func (r *Room) QuestionSet(c Category) []int64 {
	switch c {
	case CategoryQuiz:
		return r.QuizQuestions
	case CategoryThisThat:
		return r.ThisThatQuestions
	case CategoryLikely:
		return r.LikelyQuestions
	case CategoryWouldYouRather:
		return r.WouldYouRatherQuestions
	case CategoryDare:
		return r.DareQuestions
	}
	return nil
}

// SetQuestionSet stores ids as the frozen list for category c on the
// in-memory record. It does not persist anything.
func (r *Room) SetQuestionSet(c Category, ids []int64) {
	switch c {
	case CategoryQuiz:
		r.QuizQuestions = ids
	case CategoryThisThat:
		r.ThisThatQuestions = ids
	case CategoryLikely:
		r.LikelyQuestions = ids
	case CategoryWouldYouRather:
		r.WouldYouRatherQuestions = ids
	case CategoryDare:
		r.DareQuestions = ids
	}
}

// Player is one of the (normally two) people in a room.
type Player struct {
	ID       int64     `json:"id"`
	RoomID   int64     `json:"roomId"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Score    int       `json:"score"`
	JoinedAt time.Time `json:"joinedAt"`
}

// DefaultAvatar is used when a player joins without picking one.
const DefaultAvatar = "🙂"

// Host returns the first-joined player, who by convention drives shared
// actions. The second return is false for an empty room.
func Host(players []Player) (Player, bool) {
	if len(players) == 0 {
		return Player{}, false
	}
	host := players[0]
	for _, p := range players[1:] {
		if p.ID < host.ID {
			host = p
		}
	}
	return host, true
}

// Response is one answer row.
type Response struct {
	ID         int64  `json:"id"`
	RoomID     int64  `json:"roomId"`
	PlayerID   int64  `json:"playerId"`
	QuestionID int64  `json:"questionId"`
	Answer     string `json:"answer"`
}
