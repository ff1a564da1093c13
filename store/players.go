package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/couplebox/games"
)

// CreatePlayer adds a player to room. Rooms have no capacity limit here;
// callers decide whether a third join is acceptable.
func (s *Store) CreatePlayer(ctx context.Context, roomID int64, name, avatar string) (games.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return games.Player{}, fmt.Errorf("player name is required")
	}
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		avatar = games.DefaultAvatar
	}

	joined := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO players (room_id, name, avatar, score, joined_at) VALUES (?, ?, ?, 0, ?)`,
		roomID,
		name,
		avatar,
		toMillis(joined),
	)
	if err != nil {
		return games.Player{}, fmt.Errorf("create player: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return games.Player{}, fmt.Errorf("create player: %w", err)
	}

	return games.Player{
		ID:       id,
		RoomID:   roomID,
		Name:     name,
		Avatar:   avatar,
		JoinedAt: fromMillis(toMillis(joined)),
	}, nil
}

// PlayersByRoom lists a room's players in join order.
func (s *Store) PlayersByRoom(ctx context.Context, roomID int64) ([]games.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, room_id, name, avatar, score, joined_at FROM players WHERE room_id = ? ORDER BY id`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []games.Player{}
	for rows.Next() {
		var (
			p      games.Player
			joined int64
		)
		if err := rows.Scan(&p.ID, &p.RoomID, &p.Name, &p.Avatar, &p.Score, &joined); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		p.JoinedAt = fromMillis(joined)
		players = append(players, p)
	}

	return players, rows.Err()
}
