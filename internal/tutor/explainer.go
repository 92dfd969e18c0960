package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Level controls how much of the article intro is returned.
type Level string

const (
	LevelBasic        Level = "Basic"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// ErrTopicNotFound means Wikipedia has nothing for the topic and no
// offline fallback exists either.
var ErrTopicNotFound = errors.New("topic not found")

// Explanation is the structured answer for a topic at a level.
type Explanation struct {
	Title      string     `json:"title"`
	Overview   string     `json:"overview"`
	ArticleURL string     `json:"article_url,omitempty"`
	Resources  []Resource `json:"resources"`
	Source     string     `json:"source"`
}

// fallbackKnowledge covers a handful of topics when Wikipedia is
// unreachable.
var fallbackKnowledge = map[string]string{
	"python":         "Python is a high-level general-purpose programming language.",
	"photosynthesis": "The process by which green plants and some other organisms use sunlight to synthesize foods.",
}

type Explainer struct {
	wiki   *WikiClient
	logger *slog.Logger
}

func NewExplainer(wiki *WikiClient, logger *slog.Logger) *Explainer {
	return &Explainer{wiki: wiki, logger: logger}
}

// Explain answers a topic question: search for the best page, then fetch
// its intro, sized by level. When Wikipedia is unreachable it falls back
// to the embedded knowledge base; when the topic simply doesn't exist it
// returns ErrTopicNotFound.
func (e *Explainer) Explain(ctx context.Context, topic string, level Level) (Explanation, error) {
	title, pageID, err := e.wiki.Search(ctx, topic)
	if errors.Is(err, ErrNoResult) {
		return Explanation{}, fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
	}
	if err != nil {
		e.logger.Warn("wikipedia unreachable, trying fallback", "topic", topic, "error", err)
		return e.fallback(topic, level, err)
	}

	extract, err := e.wiki.Extract(ctx, title, sentencesFor(level))
	if err != nil {
		e.logger.Warn("wikipedia extract failed, trying fallback", "title", title, "error", err)
		return e.fallback(topic, level, err)
	}

	exp := Explanation{
		Title:     fmt.Sprintf("%s (%s)", title, level),
		Overview:  extract,
		Resources: RecommendResources(topic),
		Source:    "wikipedia",
	}
	if level != LevelBasic {
		exp.ArticleURL = fmt.Sprintf("https://en.wikipedia.org/?curid=%d", pageID)
	}
	return exp, nil
}

func (e *Explainer) fallback(topic string, level Level, cause error) (Explanation, error) {
	definition, ok := fallbackKnowledge[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		return Explanation{}, fmt.Errorf("explain %q: %w", topic, cause)
	}
	return Explanation{
		Title:     fmt.Sprintf("%s (%s)", topic, level),
		Overview:  definition,
		Resources: RecommendResources(topic),
		Source:    "fallback",
	}, nil
}

// sentencesFor sizes the extract: 2 for Basic, 5 for Intermediate, 10 for
// Advanced. Unknown levels get the Basic size.
func sentencesFor(level Level) int {
	switch level {
	case LevelIntermediate:
		return 5
	case LevelAdvanced:
		return 10
	default:
		return 2
	}
}
