package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Request is one request received by a TaskServer.
type Request struct {
	Method string
	Path   string
	Body   string
	Header http.Header
}

// String formats the request as "METHOD /path".
func (r Request) String() string {
	return r.Method + " " + r.Path
}

type serverTask struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskServer is an in-memory task REST backend served over httptest.
// It answers the same routes and status codes as the Flask task backend.
type TaskServer struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int
	tasks    map[int]*serverTask
	requests []Request

	failNext map[string]int
	rawList  string
}

// NewTaskServer starts a TaskServer. Close it when done.
func NewTaskServer() *TaskServer {
	s := &TaskServer{
		nextID:   1,
		tasks:    make(map[int]*serverTask),
		failNext: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Seed adds a task directly, bypassing the request log.
func (s *TaskServer) Seed(title string, completed bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.tasks[id] = &serverTask{ID: id, Title: title, Completed: completed}
	return id
}

// FailNext makes the next request matching "METHOD /path" return the given
// status code instead of being handled.
func (s *TaskServer) FailNext(request string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[request] = code
}

// SetRawList makes GET /tasks return raw verbatim. An empty string restores
// normal behaviour.
func (s *TaskServer) SetRawList(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawList = raw
}

// Requests returns the requests received so far.
func (s *TaskServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestLines returns the requests as "METHOD /path" strings.
func (s *TaskServer) RequestLines() []string {
	reqs := s.Requests()
	lines := make([]string, len(reqs))
	for i, r := range reqs {
		lines[i] = r.String()
	}
	return lines
}

// ResetRequests clears the request log.
func (s *TaskServer) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *TaskServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	req := Request{Method: r.Method, Path: r.URL.Path, Body: string(body), Header: r.Header.Clone()}
	s.requests = append(s.requests, req)

	if code, ok := s.failNext[req.String()]; ok {
		delete(s.failNext, req.String())
		writeJSON(w, code, map[string]string{"error": http.StatusText(code)})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "tasks" && r.Method == http.MethodGet:
		s.list(w)
	case len(parts) == 1 && parts[0] == "tasks" && r.Method == http.MethodPost:
		s.create(w, req.Body)
	case len(parts) == 2 && parts[0] == "tasks" && r.Method == http.MethodPut:
		s.withTask(w, parts[1], func(t *serverTask) {
			var in struct {
				Title string `json:"title"`
			}
			_ = json.Unmarshal([]byte(req.Body), &in)
			t.Title = in.Title
			writeJSON(w, http.StatusOK, t)
		})
	case len(parts) == 3 && parts[0] == "tasks" && parts[2] == "complete" && r.Method == http.MethodPut:
		s.withTask(w, parts[1], func(t *serverTask) {
			t.Completed = true
			writeJSON(w, http.StatusOK, t)
		})
	case len(parts) == 2 && parts[0] == "tasks" && r.Method == http.MethodDelete:
		s.withTask(w, parts[1], func(t *serverTask) {
			delete(s.tasks, t.ID)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
	}
}

func (s *TaskServer) list(w http.ResponseWriter) {
	if s.rawList != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s.rawList))
		return
	}
	ids := make([]int, 0, len(s.tasks))
	for id := range s.tasks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*serverTask, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.tasks[id])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *TaskServer) create(w http.ResponseWriter, body string) {
	var in struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}
	t := &serverTask{ID: s.nextID, Title: in.Title}
	s.nextID++
	s.tasks[t.ID] = t
	writeJSON(w, http.StatusCreated, t)
}

func (s *TaskServer) withTask(w http.ResponseWriter, rawID string, fn func(*serverTask)) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	t, ok := s.tasks[id]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Task not found"})
		return
	}
	fn(t)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
