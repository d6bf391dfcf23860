// cspd serves interactive trace sessions over HTTP and WebSockets.
//
// POST a script to /api/sessions to create a session; then talk to
// /api/sessions/ID/ws: send an event as a text message, get back the
// resulting state as JSON.
//
// Usage:
//
//	cspd [-l :8356] [-seed n]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/Comcast/csp/core"
	"github.com/Comcast/csp/parser"
	"github.com/Comcast/csp/sio"
	"github.com/Comcast/csp/util"

	"github.com/gorilla/websocket"
)

// Session is one trace being driven remotely.
type Session struct {
	sync.Mutex

	Id     string
	Script string
	Trace  *sio.Trace
}

// State is what the service reports about a session.
type State struct {
	Id         string   `json:"id"`
	Process    string   `json:"process"`
	Alphabet   []string `json:"alphabet,omitempty"`
	Acceptable []string `json:"acceptable"`
	Outcome    string   `json:"outcome,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Service holds the sessions.
type Service struct {
	sync.RWMutex

	seed     int64
	sessions map[string]*Session
}

func NewService(seed int64) *Service {
	return &Service{
		seed:     seed,
		sessions: make(map[string]*Session, 8),
	}
}

func (s *Service) state(session *Session) *State {
	session.Lock()
	defer session.Unlock()
	return &State{
		Id:         session.Id,
		Process:    session.Trace.Process.String(),
		Acceptable: session.Trace.Acceptable().Events(),
	}
}

// create parses the posted script and makes a session.  The script
// may be given inline or as a URL to fetch.
func (s *Service) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Script string `json:"script,omitempty"`
		URL    string `json:"url,omitempty"`
		Seed   int64  `json:"seed,omitempty"`
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		// Not JSON?  Then the body is the script itself.
		req.Script = string(body)
	}

	name := "script.csp"
	if req.URL != "" {
		src, err := FetchScript(r.Context(), req.URL)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		name = req.URL
		req.Script = src
	}

	var diags strings.Builder
	process, _, err := parser.Parse(name, req.Script, &diags)
	if err != nil {
		http.Error(w, diags.String(), http.StatusBadRequest)
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.seed
	}

	session := &Session{
		Id:     core.Gensym(16),
		Script: req.Script,
		Trace:  sio.NewTrace(process, seed),
	}

	s.Lock()
	s.sessions[session.Id] = session
	s.Unlock()

	js, _ := json.Marshal(s.state(session))
	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

func (s *Service) find(id string) *Session {
	s.RLock()
	defer s.RUnlock()
	return s.sessions[id]
}

// step offers one event to the session and reports the result.
func (s *Service) step(session *Session, event string) *State {
	session.Lock()
	defer session.Unlock()

	state := &State{Id: session.Id}

	if !session.Trace.Process.Alphabet().Contains(event) {
		state.Error = "not in alphabet: " + event
		state.Process = session.Trace.Process.String()
		state.Acceptable = session.Trace.Acceptable().Events()
		return state
	}
	if !session.Trace.Step(event) {
		state.Outcome = sio.Refused.String()
		state.Error = "cannot accept " + event
		return state
	}
	state.Process = session.Trace.Process.String()
	state.Acceptable = session.Trace.Acceptable().Events()
	if session.Trace.Done() {
		state.Outcome = sio.Terminated.String()
	}
	return state
}

func (s *Service) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request, session *Session) {
	var upgrader = websocket.Upgrader{} // use default options

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}
	defer c.Close()

	// Say hello with the current state.
	js, _ := json.Marshal(s.state(session))
	if err := c.WriteMessage(websocket.TextMessage, js); err != nil {
		log.Println("write:", err)
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}
		_, message, err := c.ReadMessage()
		if err != nil {
			log.Println("read error", err)
			return
		}
		event := strings.TrimSpace(string(message))
		if event == "" {
			continue
		}
		util.Logf("session %s event %q", session.Id, event)

		state := s.step(session, event)
		js, _ := json.Marshal(state)
		if err := c.WriteMessage(websocket.TextMessage, js); err != nil {
			log.Println("write:", err)
			return
		}
	}
}

func (s *Service) routes(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST a script", http.StatusMethodNotAllowed)
			return
		}
		s.create(w, r)
	})

	mux.HandleFunc("/api/sessions/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
		parts := strings.SplitN(rest, "/", 2)
		session := s.find(parts[0])
		if session == nil {
			http.Error(w, "no such session", http.StatusNotFound)
			return
		}
		if len(parts) == 2 && parts[1] == "ws" {
			s.serveWS(ctx, w, r, session)
			return
		}
		js, _ := json.Marshal(s.state(session))
		w.Header().Set("Content-Type", "application/json")
		w.Write(js)
	})
}

func main() {
	var (
		listen = flag.String("l", ":8356", "listen address")
		seed   = flag.Int64("seed", 1, "default seed for session generators")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewService(*seed)
	mux := http.NewServeMux()
	s.routes(ctx, mux)

	log.Printf("cspd listening on %s", *listen)
	if err := http.ListenAndServe(*listen, mux); err != nil {
		log.Fatal(err)
	}
}
