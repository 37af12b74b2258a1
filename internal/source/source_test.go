package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/budgetring/internal/model"
)

const foodRentDoc = `{"myBudget":[{"title":"Food","budget":300},{"title":"Rent","budget":700}]}`

// writeDoc creates a temp budget document and returns its path.
func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget_data.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecode(t *testing.T) {
	got, err := Decode([]byte(foodRentDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []model.CategoryDatum{{Title: "Food", Budget: 300}, {Title: "Rent", Budget: 700}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDecode_EmptyList(t *testing.T) {
	got, err := Decode([]byte(`{"myBudget":[]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestDecode_StringBudgets(t *testing.T) {
	got, err := Decode([]byte(`{"myBudget":[{"title":"Gym","budget":"$1,250.50"},{"title":"Bus","budget":" 40 "}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].Budget != 1250.5 || got[1].Budget != 40 {
		t.Errorf("budgets = %v, %v, want 1250.5, 40", got[0].Budget, got[1].Budget)
	}
}

func TestDecode_NegativeBudgetPassesThrough(t *testing.T) {
	got, err := Decode([]byte(`{"myBudget":[{"title":"Refund","budget":-5}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got[0].Budget != -5 {
		t.Errorf("Budget = %v, want -5", got[0].Budget)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing field", `{"budget":[]}`},
		{"wrong type", `{"myBudget":{"title":"Food"}}`},
		{"empty title", `{"myBudget":[{"title":"  ","budget":1}]}`},
		{"missing budget", `{"myBudget":[{"title":"Food"}]}`},
		{"bad budget", `{"myBudget":[{"title":"Food","budget":"lots"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			if !errors.Is(err, ErrFetch) {
				t.Fatalf("err = %v, want ErrFetch", err)
			}
			if got != nil {
				t.Errorf("got %v, want nil on error", got)
			}
		})
	}
}

func TestNew_PicksSourceKind(t *testing.T) {
	l, err := New("https://example.com", Options{})
	if err != nil {
		t.Fatal(err)
	}
	hs, ok := l.(*HTTPSource)
	if !ok {
		t.Fatalf("New(https) = %T, want *HTTPSource", l)
	}
	if hs.URL() != "https://example.com/budget_data.json" {
		t.Errorf("URL() = %q", hs.URL())
	}

	l, err = New("/tmp/budget.json", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := l.(*FileSource); !ok {
		t.Fatalf("New(path) = %T, want *FileSource", l)
	}

	if _, err := New("  ", Options{}); !errors.Is(err, ErrFetch) {
		t.Errorf("New(blank) err = %v, want ErrFetch", err)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		location, path, want string
	}{
		{"http://localhost:3000", "", "http://localhost:3000/budget_data.json"},
		{"http://localhost:3000/", "", "http://localhost:3000/budget_data.json"},
		{"http://localhost:3000", "/api/budget", "http://localhost:3000/api/budget"},
		{"http://localhost:3000/data/b.json", "", "http://localhost:3000/data/b.json"},
	}
	for _, tt := range tests {
		if got := resolveURL(tt.location, tt.path); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.location, tt.path, got, tt.want)
		}
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(foodRentDoc))
	}))
	defer srv.Close()

	got, err := NewHTTPSource(srv.URL, Options{}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotPath != DefaultPath {
		t.Errorf("requested %q, want %q", gotPath, DefaultPath)
	}
	if len(got) != 2 || got[1].Title != "Rent" {
		t.Errorf("got %+v", got)
	}
}

func TestHTTPSource_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"malformed", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"myBudget":`))
		}},
		{"oversized", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat(" ", maxBodySize+10)))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got, err := NewHTTPSource(srv.URL, Options{}).Fetch(context.Background())
			if !errors.Is(err, ErrFetch) {
				t.Fatalf("err = %v, want ErrFetch", err)
			}
			if got != nil {
				t.Errorf("got %v, want nil", got)
			}
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewHTTPSource(url, Options{}).Fetch(context.Background()); !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
}

func TestHTTPSource_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	s := NewHTTPSource(srv.URL, Options{})
	s.Timeout = 50 * time.Millisecond
	if _, err := s.Fetch(context.Background()); !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
}

func TestFileSource_Fetch(t *testing.T) {
	path := writeDoc(t, foodRentDoc)

	got, err := NewFileSource(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Food" || got[0].Budget != 300 {
		t.Errorf("got %+v", got)
	}
}

func TestFileSource_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")
	if _, err := NewFileSource(path).Fetch(context.Background()); !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
}

func TestFileSource_CancelledContext(t *testing.T) {
	path := writeDoc(t, foodRentDoc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFileSource(path).Fetch(ctx); !errors.Is(err, ErrFetch) {
		t.Fatalf("err = %v, want ErrFetch", err)
	}
}

func TestFileSource_Watch(t *testing.T) {
	path := writeDoc(t, foodRentDoc)
	fs := NewFileSource(path)

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := fs.Watch(ctx, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"myBudget":[]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal after write")
	}

	cancel()
	select {
	case _, ok := <-changes:
		if ok {
			// a late signal may still be buffered; the next receive must see the close
			<-changes
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
