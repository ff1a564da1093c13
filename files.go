/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
)

// maxBodySize caps request bodies; answers and media links are short.
const maxBodySize = 64 << 10

func humanReadableSize(bytes int) string {
	return humanize.Bytes(uint64(bytes))
}

// readJSON decodes the request body into dst. An empty body leaves dst
// untouched. Malformed JSON is reported as errInvalidInput.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}
}

func writeJSON(cfg *Config, w http.ResponseWriter, r *http.Request, errs chan<- error, status int, v any) {
	startTime := time.Now()

	data, err := json.Marshal(v)
	if err != nil {
		errs <- fmt.Errorf("encode response for %s: %w", r.URL.Path, err)
		status = http.StatusInternalServerError
		data = []byte(`{"message":"Internal error"}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	written, err := w.Write(append(data, '\n'))
	if err != nil {
		errs <- err

		return
	}

	logf(cfg, "SERVE: %s %s %d (%s) to %s in %s",
		r.Method,
		r.URL.Path,
		status,
		humanReadableSize(written),
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}
