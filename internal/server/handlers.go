package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hanatools/hanacli/internal/cds"
	"github.com/hanatools/hanacli/internal/database"
	"github.com/hanatools/hanacli/internal/errs"
	"github.com/hanatools/hanacli/internal/inspect"
	"github.com/hanatools/hanacli/internal/massconvert"
)

// handleTables lists tables visible through the request's profile.
//
//	GET /api/tables?profile=hybrid&schema=MYSCHEMA&table=ORD*&limit=50
func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	prompts := s.promptsFromQuery(r)

	client, err := database.NewClient(prompts, s.cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := client.Connect(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	defer client.Disconnect(r.Context())

	tables, err := client.ListTables(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tables)
}

// massConvertRequest is the POST body for /api/massconvert.
type massConvertRequest struct {
	Profile  string `json:"profile"`
	Schema   string `json:"schema"`
	Table    string `json:"table"`
	Limit    int    `json:"limit"`
	Output   string `json:"output"`
	Folder   string `json:"folder"`
	Filename string `json:"filename"`
	Zip      bool   `json:"zip"`
	Synonyms string `json:"synonyms"`

	UseHanaTypes bool `json:"useHanaTypes"`
	NoColons     bool `json:"noColons"`
	KeepPath     bool `json:"keepPath"`
	UseExists    bool `json:"useExists"`
	UseQuoted    bool `json:"useQuoted"`
}

// handleMassConvert runs a conversion batch and streams progress back as
// server-sent events. The final event carries percent 100; an error run
// ends with an "Error: ..." message at 100 instead.
func (s *Server) handleMassConvert(w http.ResponseWriter, r *http.Request) {
	var req massConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrKindInvalidInput, "decode request", err))
		return
	}
	if req.Table == "" {
		req.Table = "*"
	}
	if req.Output == "" {
		req.Output = string(massconvert.OutputCDS)
	}

	prompts := database.Prompts{
		Profile: s.orDefault(req.Profile),
		Schema:  req.Schema,
		Table:   req.Table,
		Limit:   req.Limit,
	}
	client, err := database.NewClient(prompts, s.cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := client.Connect(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	defer client.Disconnect(r.Context())

	insp := inspect.New(client.Querier(), s.log)
	conv := massconvert.New(client, insp, s.log, massconvert.Options{
		Table:    req.Table,
		Limit:    req.Limit,
		Output:   massconvert.OutputKind(req.Output),
		Folder:   req.Folder,
		Filename: req.Filename,
		Zip:      req.Zip,
		Synonyms: req.Synonyms,
		Format: cds.Options{
			UseHanaTypes: req.UseHanaTypes,
			NoColons:     req.NoColons,
			KeepPath:     req.KeepPath,
			UseExists:    req.UseExists,
			UseQuoted:    req.UseQuoted,
		},
	})

	sink, err := newSSESink(w)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Errors were already broadcast to the stream; the HTTP status is
	// committed by now, so there is nothing more to send.
	_ = conv.Convert(r.Context(), sink)
}

// promptsFromQuery reads the listing parameters from the query string.
func (s *Server) promptsFromQuery(r *http.Request) database.Prompts {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	table := q.Get("table")
	if table == "" {
		table = "*"
	}
	return database.Prompts{
		Profile: s.orDefault(q.Get("profile")),
		Schema:  q.Get("schema"),
		Table:   table,
		Limit:   limit,
	}
}

func (s *Server) orDefault(profile string) string {
	if profile != "" {
		return profile
	}
	return s.profile
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Debugf("write response: %v", err)
	}
}

// writeError maps the error taxonomy onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsNotFound(err):
		status = http.StatusNotFound
	case errs.IsUnsupportedConfig(err), errs.IsInvalidInput(err):
		status = http.StatusBadRequest
	case errs.IsConnectionFailed(err):
		status = http.StatusBadGateway
	case errs.IsTimeout(err):
		status = http.StatusGatewayTimeout
	}
	s.log.ErrorWith("request failed", err, nil)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
