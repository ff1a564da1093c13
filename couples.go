/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Seednode/couplebox/games"
	"github.com/Seednode/couplebox/store"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// maxCodeAttempts bounds retries when a freshly generated room code is
// already taken.
const maxCodeAttempts = 10

// Couples serves the room API. Handlers keep no game state of their own;
// everything lives in the store and is re-read on every request.
type Couples struct {
	cfg     *Config
	store   *store.Store
	sampler *games.Sampler
	sizes   games.SetSizes
	newCode func() string
	errs    chan<- error
}

func newCouples(cfg *Config, st *store.Store, sampler *games.Sampler, errs chan<- error) *Couples {
	return &Couples{
		cfg:     cfg,
		store:   st,
		sampler: sampler,
		sizes:   cfg.setSizes(),
		newCode: games.NewCode,
		errs:    errs,
	}
}

type createRoomRequest struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	MetDate string `json:"metDate"`
}

type createRoomResponse struct {
	RoomCode string `json:"roomCode"`
	PlayerID int64  `json:"playerId"`
	RoomID   int64  `json:"roomId"`
}

type joinRoomRequest struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type joinRoomResponse struct {
	PlayerID int64 `json:"playerId"`
	RoomID   int64 `json:"roomId"`
}

type statusResponse struct {
	Room      games.Room       `json:"room"`
	Players   []games.Player   `json:"players"`
	Questions []games.Question `json:"questions"`
	Responses []games.Response `json:"responses"`
}

type nextRequest struct {
	Phase *games.Phase `json:"phase"`
	Round *int         `json:"round"`
}

type activityRequest struct {
	Phase games.Phase `json:"phase"`
}

type advanceRequest struct {
	Version *int64 `json:"version"`
}

type metDateRequest struct {
	MetDate string `json:"metDate"`
}

type mediaResponse struct {
	Movie         *games.Media `json:"movie"`
	Music         *games.Media `json:"music"`
	WatchTogether string       `json:"watchTogether,omitempty"`
}

// parseMetDate accepts a calendar date or a full RFC 3339 timestamp.
func parseMetDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad date %q", errInvalidInput, s)
}

func (c *Couples) room(ctx context.Context, code string) (games.Room, error) {
	if !games.ValidCode(code) {
		return games.Room{}, fmt.Errorf("%w: %q", errRoomNotFound, code)
	}

	room, err := c.store.RoomByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return games.Room{}, fmt.Errorf("%w: %q", errRoomNotFound, code)
	}
	return room, err
}

// ensureQuestionSet freezes the room's list for category if it has none
// yet. An existing list is never replaced.
func (c *Couples) ensureQuestionSet(ctx context.Context, room *games.Room, category games.Category) error {
	if len(room.QuestionSet(category)) > 0 {
		return nil
	}

	ids, err := c.store.QuestionIDs(ctx, category)
	if err != nil {
		return err
	}

	frozen, err := c.store.AssignQuestionSet(ctx, room.ID, category, c.sampler.Sample(ids, c.sizes[category]))
	if err != nil {
		return err
	}
	room.SetQuestionSet(category, frozen)

	return nil
}

func (c *Couples) createRoomWithCode(ctx context.Context) (games.Room, error) {
	for range maxCodeAttempts {
		room, err := c.store.CreateRoom(ctx, c.newCode())
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		return room, err
	}
	return games.Room{}, fmt.Errorf("no free room code after %d attempts", maxCodeAttempts)
}

func (c *Couples) serveCreateRoom() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		var req createRoomRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(c.cfg, w, r, c.errs, fmt.Errorf("%w: name is required", errInvalidInput))
			return
		}

		var metDate *time.Time
		if strings.TrimSpace(req.MetDate) != "" {
			t, err := parseMetDate(req.MetDate)
			if err != nil {
				writeError(c.cfg, w, r, c.errs, err)
				return
			}
			metDate = &t
		}

		room, err := c.createRoomWithCode(ctx)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		for _, category := range games.Categories {
			if err := c.ensureQuestionSet(ctx, &room, category); err != nil {
				writeError(c.cfg, w, r, c.errs, err)
				return
			}
		}

		if metDate != nil {
			if room, err = c.store.SetMetDate(ctx, room.ID, *metDate); err != nil {
				writeError(c.cfg, w, r, c.errs, err)
				return
			}
		}

		host, err := c.store.CreatePlayer(ctx, room.ID, req.Name, req.Avatar)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		logf(c.cfg, "ROOMS: Created room %s for %s", room.Code, realIP(r))

		writeJSON(c.cfg, w, r, c.errs, http.StatusCreated, createRoomResponse{
			RoomCode: room.Code,
			PlayerID: host.ID,
			RoomID:   room.ID,
		})
	}
}

func (c *Couples) serveJoinRoom() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		var req joinRoomRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}
		if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
			writeError(c.cfg, w, r, c.errs, fmt.Errorf("%w: code and name are required", errInvalidInput))
			return
		}

		room, err := c.room(ctx, req.Code)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		player, err := c.store.CreatePlayer(ctx, room.ID, req.Name, req.Avatar)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		logf(c.cfg, "ROOMS: Player %d joined room %s", player.ID, room.Code)

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, joinRoomResponse{
			PlayerID: player.ID,
			RoomID:   room.ID,
		})
	}
}

func (c *Couples) serveStatus() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		players, err := c.store.PlayersByRoom(ctx, room.ID)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		questions, err := c.store.ListQuestions(ctx)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		responses, err := c.store.ResponsesByRoom(ctx, room.ID)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, statusResponse{
			Room:      room,
			Players:   players,
			Questions: questions,
			Responses: responses,
		})
	}
}

// move persists a transition. In strict mode it is checked against the
// transition graph and written only if the room is still at version.
func (c *Couples) move(ctx context.Context, room games.Room, to games.Transition, version int64) (games.Room, error) {
	if !c.cfg.strict {
		return c.store.AdvancePhase(ctx, room.ID, to.Phase, to.Round)
	}

	if err := games.CheckTransition(room, to); err != nil {
		return games.Room{}, err
	}
	return c.store.AdvancePhaseAt(ctx, room.ID, to.Phase, to.Round, version)
}

func (c *Couples) serveNext() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		var req nextRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		to := games.Transition{Phase: games.Dashboard, Round: 0}
		if req.Phase != nil {
			to.Phase = *req.Phase
		}
		if req.Round != nil {
			to.Round = *req.Round
		}
		if !to.Phase.Valid() || to.Round < 0 {
			writeError(c.cfg, w, r, c.errs, fmt.Errorf("%w: %s/%d", errInvalidInput, to.Phase, to.Round))
			return
		}

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		room, err = c.move(ctx, room, to, room.Version)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		logf(c.cfg, "ROOMS: Room %s set to %s/%d", room.Code, room.Phase, room.Round)

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, room)
	}
}

func (c *Couples) serveActivity() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		var req activityRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		to, err := games.SelectActivity(req.Phase)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		if category, ok := to.Phase.Category(); ok {
			if err := c.ensureQuestionSet(ctx, &room, category); err != nil {
				writeError(c.cfg, w, r, c.errs, err)
				return
			}
		}

		room, err = c.move(ctx, room, to, room.Version)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		logf(c.cfg, "ROOMS: Room %s started %s", room.Code, room.Phase)

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, room)
	}
}

func (c *Couples) serveAdvance() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		var req advanceRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		to, err := games.Advance(room)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		version := room.Version
		if req.Version != nil {
			version = *req.Version
		}

		room, err = c.move(ctx, room, to, version)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		logf(c.cfg, "ROOMS: Room %s advanced to %s/%d", room.Code, room.Phase, room.Round)

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, room)
	}
}

func (c *Couples) serveRound() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		players, err := c.store.PlayersByRoom(ctx, room.ID)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		responses, err := c.store.ResponsesByRoom(ctx, room.ID)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, games.ViewRound(room, players, responses))
	}
}

func (c *Couples) serveScores() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		responses, err := c.store.ResponsesByRoom(ctx, room.ID)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, games.Compatibility(room, responses))
	}
}

func (c *Couples) serveMedia() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		var resp mediaResponse

		for _, slot := range []struct {
			slot games.RoomSlot
			dst  **games.Media
		}{
			{games.MovieSlot, &resp.Movie},
			{games.MusicSlot, &resp.Music},
		} {
			url, ok, err := c.store.SlotValue(ctx, room.ID, slot.slot)
			if err != nil {
				writeError(c.cfg, w, r, c.errs, err)
				return
			}
			if ok && url != "" {
				m := games.DetectMedia(url)
				*slot.dst = &m
			}
		}

		if resp.Movie != nil {
			resp.WatchTogether = games.WatchTogetherURL(*resp.Movie)
		}

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, resp)
	}
}

func (c *Couples) serveMetDate() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()

		var req metDateRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		metDate, err := parseMetDate(req.MetDate)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		room, err := c.room(ctx, p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		room, err = c.store.SetMetDate(ctx, room.ID, metDate)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, room)
	}
}

// serveQR renders a PNG QR code of the join link for a room.
func (c *Couples) serveQR() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		room, err := c.room(r.Context(), p.ByName("code"))
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		scheme := c.cfg.scheme()
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + c.cfg.prefix + "/?code=" + room.Code

		const qrSize = 320
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, fmt.Errorf("encode qr for %s: %w", room.Code, err))
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(c.cfg, w)

		_, err = w.Write(png)
		if err != nil {
			c.errs <- err

			return
		}
	}
}

// roomRoutes dispatches on the :action segment. httprouter cannot mix a
// static segment with a parameter at the same position, so per-room
// actions share one route per method.
func roomRoutes(routes map[string]httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		h, ok := routes[p.ByName("action")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r, p)
	}
}

func registerCouplesGame(c *Couples, mux *httprouter.Router) {
	prefix := c.cfg.prefix

	mux.POST(prefix+"/api/rooms", traced("/api/rooms", c.serveCreateRoom()))

	// POST /api/rooms/join shares its position with :code.
	join := traced("/api/rooms/join", c.serveJoinRoom())
	mux.POST(prefix+"/api/rooms/:code", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		if p.ByName("code") != "join" {
			http.NotFound(w, r)
			return
		}
		join(w, r, p)
	})

	mux.GET(prefix+"/api/rooms/:code/:action", roomRoutes(map[string]httprouter.Handle{
		"status": traced("/api/rooms/:code/status", c.serveStatus()),
		"round":  traced("/api/rooms/:code/round", c.serveRound()),
		"scores": traced("/api/rooms/:code/scores", c.serveScores()),
		"media":  traced("/api/rooms/:code/media", c.serveMedia()),
		"qr":     traced("/api/rooms/:code/qr", c.serveQR()),
	}))

	mux.POST(prefix+"/api/rooms/:code/:action", roomRoutes(map[string]httprouter.Handle{
		"next":     traced("/api/rooms/:code/next", c.serveNext()),
		"activity": traced("/api/rooms/:code/activity", c.serveActivity()),
		"advance":  traced("/api/rooms/:code/advance", c.serveAdvance()),
		"met-date": traced("/api/rooms/:code/met-date", c.serveMetDate()),
	}))

	mux.POST(prefix+"/api/responses", traced("/api/responses", c.serveSubmitResponse()))

	mux.GET(prefix+"/api/picks/random", traced("/api/picks/random", c.servePick()))

	mux.GET(prefix+"/api/config", traced("/api/config", c.serveClientConfig()))
}
