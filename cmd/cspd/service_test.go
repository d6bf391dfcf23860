package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/Comcast/csp/util/testutil"
)

func TestServiceCreateAndStep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewService(1)
	mux := http.NewServeMux()
	s.routes(ctx, mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	script := `VM = coin -> (choc -> VM | toffee -> VM)`
	resp, err := http.Post(server.URL+"/api/sessions", "text/plain", strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var state State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}
	if state.Id == "" {
		t.Fatal("no session id")
	}
	if len(state.Acceptable) != 1 || state.Acceptable[0] != "coin" {
		t.Fatalf("acceptable: %v", state.Acceptable)
	}

	session := s.find(state.Id)
	if session == nil {
		t.Fatal("session not found")
	}

	next := s.step(session, "coin")
	if next.Error != "" {
		t.Fatal(next.Error)
	}
	if len(next.Acceptable) != 2 {
		t.Fatalf("acceptable: %s", JS(next.Acceptable))
	}

	bad := s.step(session, "tea")
	if bad.Error == "" {
		t.Fatal("tea should not be in the alphabet")
	}

	// The state endpoint agrees.
	resp2, err := http.Get(server.URL + "/api/sessions/" + state.Id)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	var state2 State
	if err := json.NewDecoder(resp2.Body).Decode(&state2); err != nil {
		t.Fatal(err)
	}
	if len(state2.Acceptable) != 2 {
		t.Fatalf("acceptable: %v", state2.Acceptable)
	}
}

func TestServiceBadScript(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewService(1)
	mux := http.NewServeMux()
	s.routes(ctx, mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Post(server.URL+"/api/sessions", "text/plain", strings.NewReader("P = ->"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
