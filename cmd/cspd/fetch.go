package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// FetchScript resolves a script reference into source text.
//
// Supported protocols: "file", "http", and "https".  The HTTP client
// carries a real cookie jar; some script hosts insist on one.
func FetchScript(ctx context.Context, name string) (string, error) {
	parts := strings.SplitN(name, "://", 2)
	if 2 != len(parts) {
		return "", fmt.Errorf("bad link '%s'", name)
	}
	switch parts[0] {
	case "file":
		bs, err := os.ReadFile(parts[1])
		if err != nil {
			return "", err
		}
		return string(bs), nil
	case "http", "https":
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return "", err
		}
		client := http.Client{
			Jar:     jar,
			Timeout: time.Minute,
		}
		req, err := http.NewRequest("GET", name, nil)
		if err != nil {
			return "", err
		}
		req = req.WithContext(ctx)
		resp, err := client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusOK:
			bs, err := io.ReadAll(resp.Body)
			if err != nil {
				return "", err
			}
			return string(bs), nil
		default:
			return "", fmt.Errorf("script fetch status %s %d",
				resp.Status, resp.StatusCode)
		}
	default:
		return "", fmt.Errorf("unknown protocol '%s'", parts[0])
	}
}
