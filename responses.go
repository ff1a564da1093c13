package main

import (
	"fmt"
	"net/http"

	"github.com/Seednode/couplebox/games"
	"github.com/julienschmidt/httprouter"
)

type submitResponseRequest struct {
	RoomID     int64   `json:"roomId"`
	PlayerID   int64   `json:"playerId"`
	QuestionID *int64  `json:"questionId"`
	Answer     *string `json:"answer"`
}

type clientConfig struct {
	PollInterval int64 `json:"pollInterval"`
}

// serveSubmitResponse records an answer. Ids are trusted as sent: the
// room and player are not cross-checked, and the answer is not matched
// against the question's options.
func (c *Couples) serveSubmitResponse() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		var req submitResponseRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}
		if req.RoomID <= 0 || req.PlayerID <= 0 || req.QuestionID == nil || req.Answer == nil {
			writeError(c.cfg, w, r, c.errs, fmt.Errorf("%w: roomId, playerId, questionId and answer are required", errInvalidInput))
			return
		}

		resp, err := c.store.SubmitResponse(r.Context(), req.RoomID, req.PlayerID, games.TargetFor(*req.QuestionID), *req.Answer)
		if err != nil {
			writeError(c.cfg, w, r, c.errs, err)
			return
		}

		writeJSON(c.cfg, w, r, c.errs, http.StatusCreated, resp)
	}
}

func (c *Couples) servePick() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, games.RandomPick())
	}
}

func (c *Couples) serveClientConfig() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		writeJSON(c.cfg, w, r, c.errs, http.StatusOK, clientConfig{
			PollInterval: c.cfg.pollInterval.Milliseconds(),
		})
	}
}
