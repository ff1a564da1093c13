/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Seednode/couplebox/games"
	"github.com/Seednode/couplebox/store"
)

var (
	errInvalidInput = errors.New("invalid input")
	errRoomNotFound = errors.New("room not found")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func logErrors(errs <-chan error) {
	for err := range errs {
		log.Printf("%s | ERROR: %v", time.Now().Format(logDate), err)
	}
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon(""))
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}

type apiError struct {
	Message string `json:"message"`
}

// errorStatus maps an error from the game or store layers to the status
// code and client-facing message for it. Anything unrecognized is a 500.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidInput), errors.Is(err, games.ErrNotActivity):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, errRoomNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Room not found"
	case errors.Is(err, games.ErrIllegalTransition):
		return http.StatusConflict, "Illegal phase change"
	case errors.Is(err, games.ErrNoAdvance):
		return http.StatusConflict, "Nothing to advance"
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, "Room changed, reload and retry"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func writeError(cfg *Config, w http.ResponseWriter, r *http.Request, errs chan<- error, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		errs <- fmt.Errorf("%s %s: %w", r.Method, r.URL.Path, err)
	} else {
		logf(cfg, "REJECT: %s %s from %s: %v", r.Method, r.URL.Path, realIP(r), err)
	}

	writeJSON(cfg, w, r, errs, status, apiError{Message: message})
}
