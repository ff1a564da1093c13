package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Seednode/couplebox/games"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "couplebox.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func testQuestions() []games.Question {
	return []games.Question{
		{Category: games.CategoryQuiz, Text: "Favorite food?", Options: []string{"Pizza", "Sushi"}},
		{Category: games.CategoryQuiz, Text: "Dream trip?", Options: []string{"Paris", "Tokyo"}},
		{Category: games.CategoryDare, Text: "Sing a song"},
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSeedQuestionsIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	added, err := s.SeedQuestions(ctx, testQuestions())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != 3 {
		t.Fatalf("added = %d, want 3", added)
	}

	added, err = s.SeedQuestions(ctx, testQuestions())
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if added != 0 {
		t.Fatalf("reseed added = %d, want 0", added)
	}

	all, err := s.ListQuestions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("catalog size = %d, want 3", len(all))
	}

	dares, err := s.ListQuestionsByCategory(ctx, games.CategoryDare)
	if err != nil {
		t.Fatalf("list dares: %v", err)
	}
	if len(dares) != 1 || dares[0].Options == nil || len(dares[0].Options) != 0 {
		t.Fatalf("dares = %#v, want one with empty options", dares)
	}

	ids, err := s.QuestionIDs(ctx, games.CategoryQuiz)
	if err != nil {
		t.Fatalf("quiz ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("quiz ids = %v, want 2", ids)
	}
}

func TestSeedQuestionsRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	s := openTempStore(t)
	_, err := s.SeedQuestions(context.Background(), []games.Question{{Category: "bogus", Text: "?"}})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestCreateRoomAndLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "ab12")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if room.Code != "AB12" || room.Phase != games.Lobby || room.Round != 0 {
		t.Fatalf("room = %+v, want AB12 lobby/0", room)
	}
	if room.QuizQuestions == nil || len(room.QuizQuestions) != 0 {
		t.Fatalf("quiz questions = %#v, want empty", room.QuizQuestions)
	}

	if _, err := s.CreateRoom(ctx, "AB12"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate code err = %v, want ErrAlreadyExists", err)
	}

	got, err := s.RoomByCode(ctx, "ab12")
	if err != nil {
		t.Fatalf("room by code: %v", err)
	}
	if got.ID != room.ID {
		t.Fatalf("room id = %d, want %d", got.ID, room.ID)
	}

	if _, err := s.RoomByCode(ctx, "ZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing room err = %v, want ErrNotFound", err)
	}
}

func TestAssignQuestionSetIsFrozen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "FRZN")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	empty, err := s.AssignQuestionSet(ctx, room.ID, games.CategoryQuiz, nil)
	if err != nil {
		t.Fatalf("assign empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty assignment = %v", empty)
	}

	first, err := s.AssignQuestionSet(ctx, room.ID, games.CategoryQuiz, []int64{3, 1, 2})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	second, err := s.AssignQuestionSet(ctx, room.ID, games.CategoryQuiz, []int64{9, 8})
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if !slices.Equal(first, []int64{3, 1, 2}) || !slices.Equal(second, first) {
		t.Fatalf("sets = %v then %v, want first list kept", first, second)
	}

	got, err := s.RoomByCode(ctx, "FRZN")
	if err != nil {
		t.Fatalf("room by code: %v", err)
	}
	if !slices.Equal(got.QuizQuestions, []int64{3, 1, 2}) {
		t.Fatalf("stored quiz set = %v", got.QuizQuestions)
	}
	if len(got.DareQuestions) != 0 {
		t.Fatalf("dare set = %v, want empty", got.DareQuestions)
	}

	if _, err := s.AssignQuestionSet(ctx, room.ID, "bogus", []int64{1}); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestAdvancePhase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "ADVN")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	moved, err := s.AdvancePhase(ctx, room.ID, games.Quiz, 3)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if moved.Phase != games.Quiz || moved.Round != 3 || moved.Version != room.Version+1 {
		t.Fatalf("moved = %+v", moved)
	}

	// Backwards moves are accepted as-is.
	back, err := s.AdvancePhase(ctx, room.ID, games.Quiz, 1)
	if err != nil {
		t.Fatalf("advance back: %v", err)
	}
	if back.Round != 1 {
		t.Fatalf("round = %d, want 1", back.Round)
	}

	if _, err := s.AdvancePhase(ctx, 9999, games.Dashboard, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing room err = %v, want ErrNotFound", err)
	}
}

func TestAdvancePhaseAtDetectsConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "VERS")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	moved, err := s.AdvancePhaseAt(ctx, room.ID, games.Dashboard, 1, room.Version)
	if err != nil {
		t.Fatalf("advance at current version: %v", err)
	}

	if _, err := s.AdvancePhaseAt(ctx, room.ID, games.Quiz, 1, room.Version); !errors.Is(err, ErrConflict) {
		t.Fatalf("stale advance err = %v, want ErrConflict", err)
	}

	if _, err := s.AdvancePhaseAt(ctx, room.ID, games.Quiz, 1, moved.Version); err != nil {
		t.Fatalf("advance at new version: %v", err)
	}

	if _, err := s.AdvancePhaseAt(ctx, 9999, games.Quiz, 1, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing room err = %v, want ErrNotFound", err)
	}
}

func TestSetMetDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "DATE")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	met := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	got, err := s.SetMetDate(ctx, room.ID, met)
	if err != nil {
		t.Fatalf("set met date: %v", err)
	}
	if got.MetDate == nil || !got.MetDate.Equal(met) {
		t.Fatalf("met date = %v, want %v", got.MetDate, met)
	}
	if got.Phase != room.Phase || got.Round != room.Round {
		t.Fatalf("met date changed play state: %+v", got)
	}
}

func TestPlayersOrderedByJoin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "PLYR")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	alice, err := s.CreatePlayer(ctx, room.ID, "Alice", "")
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	if alice.Avatar != games.DefaultAvatar {
		t.Fatalf("avatar = %q, want default", alice.Avatar)
	}
	if _, err := s.CreatePlayer(ctx, room.ID, "Bob", "🐻"); err != nil {
		t.Fatalf("create bob: %v", err)
	}
	if _, err := s.CreatePlayer(ctx, room.ID, " ", ""); err == nil {
		t.Fatal("expected error for blank name")
	}

	players, err := s.PlayersByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if len(players) != 2 || players[0].Name != "Alice" || players[1].Name != "Bob" {
		t.Fatalf("players = %+v", players)
	}
}

func TestSubmitResponseAppends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "RESP")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	for _, answer := range []string{"Pizza", "Sushi"} {
		if _, err := s.SubmitResponse(ctx, room.ID, 1, games.PlayerAnswer{Question: 7}, answer); err != nil {
			t.Fatalf("submit %q: %v", answer, err)
		}
	}

	rows, err := s.ResponsesByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("responses: %v", err)
	}
	if len(rows) != 2 || rows[0].Answer != "Pizza" || rows[1].Answer != "Sushi" {
		t.Fatalf("rows = %+v, want two appended rows", rows)
	}
}

func TestSubmitResponseSlotOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	room, err := s.CreateRoom(ctx, "SLOT")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}

	if _, ok, err := s.SlotValue(ctx, room.ID, games.MovieSlot); err != nil || ok {
		t.Fatalf("unset slot = ok %v err %v", ok, err)
	}

	if _, err := s.SubmitResponse(ctx, room.ID, 1, games.MovieSlot, "https://youtu.be/a"); err != nil {
		t.Fatalf("set movie: %v", err)
	}
	if _, err := s.SubmitResponse(ctx, room.ID, 2, games.MovieSlot, "https://youtu.be/b"); err != nil {
		t.Fatalf("overwrite movie: %v", err)
	}
	if _, err := s.SubmitResponse(ctx, room.ID, 1, games.MusicSlot, "https://example.com/x.mp3"); err != nil {
		t.Fatalf("set music: %v", err)
	}

	rows, err := s.ResponsesByRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("responses: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %+v, want one row per slot", rows)
	}

	movie, ok, err := s.SlotValue(ctx, room.ID, games.MovieSlot)
	if err != nil || !ok || movie != "https://youtu.be/b" {
		t.Fatalf("movie = %q ok %v err %v", movie, ok, err)
	}
}

func TestApplyMigrationsRunsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempStore(t)

	migrationFS := fstest.MapFS{
		"002_extra.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE extra (id INTEGER);\n-- +migrate Down\nDROP TABLE extra;\n")},
		"README.md":     {Data: []byte("ignored")},
	}

	for range 2 {
		if err := applyMigrations(ctx, s.db, migrationFS, "."); err != nil {
			t.Fatalf("apply migrations: %v", err)
		}
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE name = '002_extra.sql'`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("migration rows = %d, want 1", count)
	}
}

func TestUpSection(t *testing.T) {
	t.Parallel()

	got := upSection("-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;\n")
	if got != "\nSELECT 1;\n" {
		t.Fatalf("up = %q", got)
	}
	if got := upSection("SELECT 3;"); got != "SELECT 3;" {
		t.Fatalf("unmarked up = %q", got)
	}
}
