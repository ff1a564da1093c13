package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Seednode/couplebox/games"
)

// SubmitResponse records answer for target. Bank questions get a new row
// on every call, so repeat submissions accumulate. Room slots keep a
// single row per room that later submissions overwrite.
func (s *Store) SubmitResponse(ctx context.Context, roomID, playerID int64, target games.Target, answer string) (games.Response, error) {
	switch t := target.(type) {
	case games.PlayerAnswer:
		return s.appendResponse(ctx, roomID, playerID, t.QuestionID(), answer)
	case games.RoomSlot:
		return s.upsertSlot(ctx, roomID, playerID, t.QuestionID(), answer)
	default:
		return games.Response{}, fmt.Errorf("unsupported answer target %T", target)
	}
}

func (s *Store) appendResponse(ctx context.Context, roomID, playerID, questionID int64, answer string) (games.Response, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (room_id, player_id, question_id, answer) VALUES (?, ?, ?, ?)`,
		roomID,
		playerID,
		questionID,
		answer,
	)
	if err != nil {
		return games.Response{}, fmt.Errorf("insert response: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return games.Response{}, fmt.Errorf("insert response: %w", err)
	}

	return games.Response{ID: id, RoomID: roomID, PlayerID: playerID, QuestionID: questionID, Answer: answer}, nil
}

func (s *Store) upsertSlot(ctx context.Context, roomID, playerID, slot int64, value string) (games.Response, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return games.Response{}, fmt.Errorf("begin slot update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM responses WHERE room_id = ? AND question_id = ? ORDER BY id LIMIT 1`,
		roomID,
		slot,
	).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx,
			`INSERT INTO responses (room_id, player_id, question_id, answer) VALUES (?, ?, ?, ?)`,
			roomID,
			playerID,
			slot,
			value,
		)
		if err != nil {
			return games.Response{}, fmt.Errorf("insert slot %d: %w", slot, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return games.Response{}, fmt.Errorf("insert slot %d: %w", slot, err)
		}
	case err != nil:
		return games.Response{}, fmt.Errorf("read slot %d: %w", slot, err)
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE responses SET answer = ?, player_id = ? WHERE id = ?`,
			value,
			playerID,
			id,
		); err != nil {
			return games.Response{}, fmt.Errorf("update slot %d: %w", slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return games.Response{}, fmt.Errorf("commit slot %d: %w", slot, err)
	}

	return games.Response{ID: id, RoomID: roomID, PlayerID: playerID, QuestionID: slot, Answer: value}, nil
}

// ResponsesByRoom returns every row for the room, slots included, in
// insertion order.
func (s *Store) ResponsesByRoom(ctx context.Context, roomID int64) ([]games.Response, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, player_id, question_id, answer FROM responses WHERE room_id = ? ORDER BY id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	out := []games.Response{}
	for rows.Next() {
		var r games.Response
		if err := rows.Scan(&r.ID, &r.RoomID, &r.PlayerID, &r.QuestionID, &r.Answer); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// SlotValue reads a room slot. The second return is false if nobody has
// set it yet.
func (s *Store) SlotValue(ctx context.Context, roomID int64, slot games.RoomSlot) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT answer FROM responses WHERE room_id = ? AND question_id = ? ORDER BY id LIMIT 1`,
		roomID,
		slot.QuestionID(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %d: %w", slot.QuestionID(), err)
	}

	return value, true, nil
}
