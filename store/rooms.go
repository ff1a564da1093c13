package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Seednode/couplebox/games"
)

const roomColumns = `id, code, phase, round, met_date, version, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (games.Room, error) {
	var (
		room      games.Room
		phase     string
		metDate   sql.NullInt64
		createdAt int64
	)
	if err := row.Scan(&room.ID, &room.Code, &phase, &room.Round, &metDate, &room.Version, &createdAt); err != nil {
		return games.Room{}, err
	}

	room.Phase = games.Phase(phase)
	room.CreatedAt = fromMillis(createdAt)
	if metDate.Valid {
		t := fromMillis(metDate.Int64)
		room.MetDate = &t
	}

	return room, nil
}

// CreateRoom inserts a room in the lobby at round 0 with no question sets.
// It returns ErrAlreadyExists if code is taken.
func (s *Store) CreateRoom(ctx context.Context, code string) (games.Room, error) {
	code = games.NormalizeCode(code)
	if code == "" {
		return games.Room{}, fmt.Errorf("room code is required")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rooms (code, phase, round, version, created_at) VALUES (?, ?, 0, 0, ?)`,
		code,
		string(games.Lobby),
		toMillis(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return games.Room{}, ErrAlreadyExists
		}
		return games.Room{}, fmt.Errorf("create room: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return games.Room{}, fmt.Errorf("create room: %w", err)
	}

	return s.roomByID(ctx, id)
}

// RoomByCode looks a room up by its share code, ignoring case.
func (s *Store) RoomByCode(ctx context.Context, code string) (games.Room, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE code = ?`,
		games.NormalizeCode(code),
	)

	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return games.Room{}, ErrNotFound
		}
		return games.Room{}, fmt.Errorf("get room %q: %w", code, err)
	}

	if err := s.loadQuestionSets(ctx, &room); err != nil {
		return games.Room{}, err
	}

	return room, nil
}

func (s *Store) roomByID(ctx context.Context, id int64) (games.Room, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)

	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return games.Room{}, ErrNotFound
		}
		return games.Room{}, fmt.Errorf("get room %d: %w", id, err)
	}

	if err := s.loadQuestionSets(ctx, &room); err != nil {
		return games.Room{}, err
	}

	return room, nil
}

func (s *Store) loadQuestionSets(ctx context.Context, room *games.Room) error {
	for _, c := range games.Categories {
		room.SetQuestionSet(c, []int64{})
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, question_ids FROM room_question_sets WHERE room_id = ?`,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("load question sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, encoded string
		if err := rows.Scan(&category, &encoded); err != nil {
			return fmt.Errorf("load question sets: %w", err)
		}
		ids, err := decodeIDs(encoded)
		if err != nil {
			return fmt.Errorf("decode %s question set: %w", category, err)
		}
		room.SetQuestionSet(games.Category(category), ids)
	}

	return rows.Err()
}

// AssignQuestionSet freezes ids as the room's question list for category.
// The first assignment wins: later calls leave the stored list untouched
// and return it. An empty ids is not recorded, so the category can still
// be assigned later.
func (s *Store) AssignQuestionSet(ctx context.Context, roomID int64, category games.Category, ids []int64) ([]int64, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	if len(ids) > 0 {
		encoded, err := encodeIDs(ids)
		if err != nil {
			return nil, fmt.Errorf("encode question set: %w", err)
		}

		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO room_question_sets (room_id, category, question_ids) VALUES (?, ?, ?)
			 ON CONFLICT (room_id, category) DO NOTHING`,
			roomID,
			string(category),
			encoded,
		); err != nil {
			return nil, fmt.Errorf("assign %s question set: %w", category, err)
		}
	}

	var encoded string
	err := s.db.QueryRowContext(ctx,
		`SELECT question_ids FROM room_question_sets WHERE room_id = ? AND category = ?`,
		roomID,
		string(category),
	).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s question set: %w", category, err)
	}

	return decodeIDs(encoded)
}

// AdvancePhase sets the room's phase and round unconditionally. Legality
// of the move is the caller's business; concurrent writers simply race
// and the last one wins.
func (s *Store) AdvancePhase(ctx context.Context, roomID int64, phase games.Phase, round int) (games.Room, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET phase = ?, round = ?, version = version + 1 WHERE id = ?`,
		string(phase),
		round,
		roomID,
	)
	if err != nil {
		return games.Room{}, fmt.Errorf("advance room %d: %w", roomID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return games.Room{}, ErrNotFound
	}

	return s.roomByID(ctx, roomID)
}

// AdvancePhaseAt is AdvancePhase guarded by an optimistic version check.
// It returns ErrConflict if the room changed since version was read.
func (s *Store) AdvancePhaseAt(ctx context.Context, roomID int64, phase games.Phase, round int, version int64) (games.Room, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET phase = ?, round = ?, version = version + 1 WHERE id = ? AND version = ?`,
		string(phase),
		round,
		roomID,
		version,
	)
	if err != nil {
		return games.Room{}, fmt.Errorf("advance room %d: %w", roomID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return games.Room{}, fmt.Errorf("advance room %d: %w", roomID, err)
	}
	if n == 0 {
		if _, err := s.roomByID(ctx, roomID); err != nil {
			return games.Room{}, err
		}
		return games.Room{}, ErrConflict
	}

	return s.roomByID(ctx, roomID)
}

// SetMetDate records when the couple met. It has no effect on play.
func (s *Store) SetMetDate(ctx context.Context, roomID int64, metDate time.Time) (games.Room, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE rooms SET met_date = ? WHERE id = ?`,
		toMillis(metDate),
		roomID,
	)
	if err != nil {
		return games.Room{}, fmt.Errorf("set met date: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return games.Room{}, ErrNotFound
	}

	return s.roomByID(ctx, roomID)
}
