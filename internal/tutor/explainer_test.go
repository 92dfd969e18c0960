package tutor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubWiki serves canned action-API responses keyed by the list/prop
// query parameter.
func stubWiki(t *testing.T, searchBody, extractBody string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("missing user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Query().Get("list") == "search":
			io.WriteString(w, searchBody)
		case r.URL.Query().Get("prop") == "extracts":
			io.WriteString(w, extractBody)
		default:
			http.Error(w, "unexpected query", http.StatusBadRequest)
		}
	}))
}

const searchHit = `{"query":{"search":[{"title":"Calculus","pageid":5176}]}}`
const searchMiss = `{"query":{"search":[]}}`
const extractOK = `{"query":{"pages":{"5176":{"extract":"Calculus is the mathematical study of continuous change."}}}}`

func TestExplain_Basic(t *testing.T) {
	srv := stubWiki(t, searchHit, extractOK)
	defer srv.Close()

	e := NewExplainer(NewWikiClient(srv.URL), testLogger())
	exp, err := e.Explain(context.Background(), "calculus", LevelBasic)
	if err != nil {
		t.Fatalf("Explain returned error: %v", err)
	}

	if exp.Title != "Calculus (Basic)" {
		t.Errorf("title = %q", exp.Title)
	}
	if !strings.Contains(exp.Overview, "continuous change") {
		t.Errorf("overview = %q", exp.Overview)
	}
	if exp.ArticleURL != "" {
		t.Errorf("basic level must not include the article url, got %q", exp.ArticleURL)
	}
	if exp.Source != "wikipedia" {
		t.Errorf("source = %q", exp.Source)
	}
	if len(exp.Resources) == 0 {
		t.Error("expected resource recommendations")
	}
}

func TestExplain_AdvancedIncludesArticleURL(t *testing.T) {
	srv := stubWiki(t, searchHit, extractOK)
	defer srv.Close()

	e := NewExplainer(NewWikiClient(srv.URL), testLogger())
	exp, err := e.Explain(context.Background(), "calculus", LevelAdvanced)
	if err != nil {
		t.Fatalf("Explain returned error: %v", err)
	}
	if exp.ArticleURL != "https://en.wikipedia.org/?curid=5176" {
		t.Errorf("article url = %q", exp.ArticleURL)
	}
}

func TestExplain_TopicNotFound(t *testing.T) {
	srv := stubWiki(t, searchMiss, extractOK)
	defer srv.Close()

	e := NewExplainer(NewWikiClient(srv.URL), testLogger())
	_, err := e.Explain(context.Background(), "xyzzyplugh", LevelBasic)
	if !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestExplain_FallbackWhenUnreachable(t *testing.T) {
	srv := stubWiki(t, searchHit, extractOK)
	srv.Close() // immediately unreachable

	e := NewExplainer(NewWikiClient(srv.URL), testLogger())

	exp, err := e.Explain(context.Background(), "Python", LevelBasic)
	if err != nil {
		t.Fatalf("expected fallback content, got error: %v", err)
	}
	if exp.Source != "fallback" {
		t.Errorf("source = %q, want fallback", exp.Source)
	}
	if !strings.Contains(exp.Overview, "programming language") {
		t.Errorf("overview = %q", exp.Overview)
	}

	// Unknown topic with no fallback entry surfaces the network error.
	if _, err := e.Explain(context.Background(), "obscure topic", LevelBasic); err == nil {
		t.Error("expected error for unreachable wiki and unknown topic")
	}
}

func TestSentencesFor(t *testing.T) {
	tests := []struct {
		level Level
		want  int
	}{
		{LevelBasic, 2},
		{LevelIntermediate, 5},
		{LevelAdvanced, 10},
		{Level("Unknown"), 2},
	}
	for _, tt := range tests {
		if got := sentencesFor(tt.level); got != tt.want {
			t.Errorf("sentencesFor(%s) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestRecommendResources(t *testing.T) {
	tests := []struct {
		name      string
		topic     string
		wantName  string
		wantCount int
	}{
		{"programming", "python decorators", "Codecademy", 3},
		{"math", "calculus limits", "Khan Academy", 2},
		{"history", "french revolution", "CrashCourse History", 2},
		{"ml", "neural networks", "Coursera (Andrew Ng)", 3},
		{"generic fallback", "photosynthesis", "YouTube Search", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendResources(tt.topic)
			if len(got) != tt.wantCount {
				t.Fatalf("got %d resources, want %d", len(got), tt.wantCount)
			}
			if got[0].Name != tt.wantName {
				t.Errorf("first resource = %q, want %q", got[0].Name, tt.wantName)
			}
		})
	}
}

func TestRecommendResources_MultipleFamilies(t *testing.T) {
	got := RecommendResources("python for machine learning")
	if len(got) != 6 {
		t.Errorf("expected programming + ml families (6 resources), got %d", len(got))
	}
}

func TestRecommendResources_EscapesQuery(t *testing.T) {
	got := RecommendResources("ottoman empire trade routes")
	for _, r := range got {
		if strings.Contains(r.URL, " ") {
			t.Errorf("unescaped query in %q", r.URL)
		}
	}
}
