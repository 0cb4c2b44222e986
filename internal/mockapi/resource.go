// Package mockapi is an in-memory CRUD backend that speaks the resource
// protocol the remote client consumes:
//
//	GET    /        list, filtered by query (e.g. ?name=per)
//	GET    /{id}    fetch one
//	POST   /        create, 201
//	PUT    /        replace by body id, 200
//	DELETE /{id}    remove, 204
package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vango-dev/rstore/internal/logging"
)

// Record is one stored JSON object. Its "id" field is the key.
type Record map[string]any

// ID returns the record's id as a string, or "".
func (r Record) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%g", v)
	}
	return ""
}

var (
	ErrNotFound  = errors.New("mockapi: record not found")
	ErrMissingID = errors.New("mockapi: record has no id")
	ErrConflict  = errors.New("mockapi: record already exists")
)

// Resource is one named in-memory collection.
type Resource struct {
	name   string
	logger *slog.Logger

	mu      sync.RWMutex
	records map[string]Record
	order   []string

	onChange func()
}

// NewResource creates an empty collection.
func NewResource(name string, logger *slog.Logger) *Resource {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Resource{
		name:    name,
		logger:  logger.With("resource", name),
		records: make(map[string]Record),
	}
}

func (res *Resource) Name() string {
	return res.name
}

// OnChange registers fn to run after every successful write made over HTTP.
func (res *Resource) OnChange(fn func()) {
	res.mu.Lock()
	res.onChange = fn
	res.mu.Unlock()
}

func (res *Resource) changed() {
	res.mu.RLock()
	fn := res.onChange
	res.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// List returns the records matching query in insertion order. Each query
// key is a case-insensitive substring match against the field of the same
// name; records whose field is missing or not a string don't match.
func (res *Resource) List(query url.Values) []Record {
	res.mu.RLock()
	defer res.mu.RUnlock()

	out := make([]Record, 0, len(res.order))
	for _, id := range res.order {
		rec := res.records[id]
		if matches(rec, query) {
			out = append(out, clone(rec))
		}
	}
	return out
}

// Get returns the record with id.
func (res *Resource) Get(id string) (Record, error) {
	res.mu.RLock()
	defer res.mu.RUnlock()

	rec, ok := res.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(rec), nil
}

// Create stores rec, assigning a UUID when it has no id.
func (res *Resource) Create(rec Record) (Record, error) {
	rec = clone(rec)
	if rec.ID() == "" {
		rec["id"] = uuid.NewString()
	}
	id := rec.ID()

	res.mu.Lock()
	defer res.mu.Unlock()

	if _, ok := res.records[id]; ok {
		return nil, ErrConflict
	}
	res.records[id] = rec
	res.order = append(res.order, id)
	return clone(rec), nil
}

// Replace overwrites the stored record with rec's id.
func (res *Resource) Replace(rec Record) (Record, error) {
	id := rec.ID()
	if id == "" {
		return nil, ErrMissingID
	}

	res.mu.Lock()
	defer res.mu.Unlock()

	if _, ok := res.records[id]; !ok {
		return nil, ErrNotFound
	}
	res.records[id] = clone(rec)
	return clone(rec), nil
}

// Delete removes the record with id.
func (res *Resource) Delete(id string) error {
	res.mu.Lock()
	defer res.mu.Unlock()

	if _, ok := res.records[id]; !ok {
		return ErrNotFound
	}
	delete(res.records, id)
	for i, cur := range res.order {
		if cur == id {
			res.order = append(res.order[:i], res.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored records.
func (res *Resource) Len() int {
	res.mu.RLock()
	defer res.mu.RUnlock()
	return len(res.records)
}

// Routes returns the HTTP surface for the collection.
func (res *Resource) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", res.handleList)
	r.Post("/", res.handleCreate)
	r.Put("/", res.handleReplace)
	r.Get("/{id}", res.handleGet)
	r.Delete("/{id}", res.handleDelete)
	return r
}

func (res *Resource) handleList(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, res.List(r.URL.Query()))
}

func (res *Resource) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := res.Get(chi.URLParam(r, "id"))
	if err != nil {
		res.respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (res *Resource) handleCreate(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil || rec == nil {
		respondProblem(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := res.Create(rec)
	if err != nil {
		res.respondError(w, err)
		return
	}
	res.logger.Debug("record created", "id", created.ID())
	res.changed()
	w.Header().Set("Location", r.URL.Path+"/"+url.PathEscape(created.ID()))
	respondJSON(w, http.StatusCreated, created)
}

func (res *Resource) handleReplace(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil || rec == nil {
		respondProblem(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := res.Replace(rec)
	if err != nil {
		res.respondError(w, err)
		return
	}
	res.logger.Debug("record replaced", "id", updated.ID())
	res.changed()
	respondJSON(w, http.StatusOK, updated)
}

func (res *Resource) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := res.Delete(id); err != nil {
		res.respondError(w, err)
		return
	}
	res.logger.Debug("record deleted", "id", id)
	res.changed()
	w.WriteHeader(http.StatusNoContent)
}

func (res *Resource) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respondProblem(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrMissingID):
		respondProblem(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		respondProblem(w, http.StatusConflict, err.Error())
	default:
		res.logger.Error("unexpected error", "error", err)
		respondProblem(w, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func matches(rec Record, query url.Values) bool {
	for key, vals := range query {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		field, ok := rec[key].(string)
		if !ok || !strings.Contains(strings.ToLower(field), strings.ToLower(vals[0])) {
			return false
		}
	}
	return true
}

func clone(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

type problem struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

func respondProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{
		Status: status,
		Title:  http.StatusText(status),
		Detail: detail,
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
