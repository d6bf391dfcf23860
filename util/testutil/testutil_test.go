package testutil

import (
	"testing"
)

func TestJS(t *testing.T) {
	if got := JS(map[string]int{"n": 1}); got != `{"n":1}` {
		t.Fatalf("got %s", got)
	}
}

func TestJSUnmarshalable(t *testing.T) {
	if got := JS(func() {}); got == "" {
		t.Fatal("expected some rendering")
	}
}
