package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testChecker(handler http.HandlerFunc) (*Checker, func()) {
	srv := httptest.NewServer(handler)
	c := NewChecker()
	c.baseURL = srv.URL
	return c, srv.Close
}

func TestLatest_NewerRelease(t *testing.T) {
	c, done := testChecker(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.2.0"}`))
	})
	defer done()

	got, err := c.Latest(context.Background(), "v1.1.0")
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if got != "v1.2.0" {
		t.Errorf("Latest = %q, want v1.2.0", got)
	}
}

func TestLatest_UpToDate(t *testing.T) {
	c, done := testChecker(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name": "v1.2.0"}`))
	})
	defer done()

	got, err := c.Latest(context.Background(), "v1.2.0")
	if err != nil {
		t.Fatalf("Latest returned error: %v", err)
	}
	if got != "" {
		t.Errorf("Latest = %q, want empty for up-to-date version", got)
	}
}

func TestLatest_APIError(t *testing.T) {
	c, done := testChecker(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer done()

	if _, err := c.Latest(context.Background(), "v1.0.0"); err == nil {
		t.Error("Latest should fail on non-200 response")
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		latest  string
		current string
		want    bool
	}{
		{"1.2.0", "1.1.0", true},
		{"1.2.0", "1.2.0", false},
		{"1.1.0", "1.2.0", false},
		{"1.10.0", "1.9.0", true}, // numeric, not lexicographic
		{"1.2.1", "1.2", true},
		{"2.0.0", "dev", true},
		{"2.0.0", "", true},
	}

	for _, tt := range tests {
		if got := isNewer(tt.latest, tt.current); got != tt.want {
			t.Errorf("isNewer(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
		}
	}
}
