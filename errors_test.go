package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Seednode/couplebox/games"
	"github.com/Seednode/couplebox/store"
)

func TestErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name", errInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("select: %w", games.ErrNotActivity), http.StatusBadRequest},
		{fmt.Errorf("%w: ZZZZ", errRoomNotFound), http.StatusNotFound},
		{store.ErrNotFound, http.StatusNotFound},
		{games.ErrIllegalTransition, http.StatusConflict},
		{games.ErrNoAdvance, http.StatusConflict},
		{fmt.Errorf("advance: %w", store.ErrConflict), http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got, _ := errorStatus(tt.err); got != tt.want {
			t.Fatalf("status for %v = %d, want %d", tt.err, got, tt.want)
		}
	}

	if _, msg := errorStatus(errors.New("x")); msg != "Internal error" {
		t.Fatalf("internal message = %q", msg)
	}
}

func TestHumanReadableSize(t *testing.T) {
	t.Parallel()

	if got := humanReadableSize(512); got != "512 B" {
		t.Fatalf("size = %q, want 512 B", got)
	}
	if got := humanReadableSize(1500); got != "1.5 kB" {
		t.Fatalf("size = %q, want 1.5 kB", got)
	}
}
