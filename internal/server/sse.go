package server

import (
	"encoding/json"
	"net/http"

	"github.com/hanatools/hanacli/internal/errs"
)

// sseSink streams progress broadcasts as server-sent events. Write and
// flush errors are ignored: a client that went away must not abort the
// conversion batch feeding the stream.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSESink(w http.ResponseWriter) (*sseSink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errs.New(errs.ErrKindUnsupportedConfig, "response writer does not support streaming")
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return &sseSink{w: w, flusher: flusher}, nil
}

type progressEvent struct {
	Message string `json:"message"`
	Percent int    `json:"percent"`
}

func (s *sseSink) Broadcast(message string, percent int) {
	data, err := json.Marshal(progressEvent{Message: message, Percent: percent})
	if err != nil {
		return
	}
	s.w.Write([]byte("data: "))
	s.w.Write(data)
	s.w.Write([]byte("\n\n"))
	s.flusher.Flush()
}
