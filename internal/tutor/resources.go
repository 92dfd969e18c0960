package tutor

import (
	"net/url"
	"strings"
)

// Resource is one curated external study link.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type resourceFamily struct {
	keywords  []string
	resources []Resource
}

// Curated families, matched by substring against the lowercased topic.
// A topic can match several families; unknown topics get generic search
// links instead.
var resourceFamilies = []resourceFamily{
	{
		keywords: []string{"python", "java", "code", "programming", "c++"},
		resources: []Resource{
			{Name: "Codecademy", URL: "https://www.codecademy.com/", Type: "Interactive Course"},
			{Name: "LeetCode", URL: "https://leetcode.com/", Type: "Practice Problems"},
			{Name: "GeeksforGeeks", URL: "https://www.geeksforgeeks.org/", Type: "Tutorials"},
		},
	},
	{
		keywords: []string{"math", "calculus", "algebra", "geometry", "physics"},
		resources: []Resource{
			{Name: "Khan Academy", URL: "https://www.khanacademy.org/", Type: "Video Lessons"},
			{Name: "Desmos", URL: "https://www.desmos.com/", Type: "Graphing Tool"},
		},
	},
	{
		keywords: []string{"history", "revolution", "war", "ancient"},
		resources: []Resource{
			{Name: "CrashCourse History", URL: "https://thecrashcourse.com/topic/history/", Type: "Video Series"},
			{Name: "History.com", URL: "https://www.history.com/", Type: "Articles"},
		},
	},
	{
		keywords: []string{"ml", "ai", "machine learning", "neural"},
		resources: []Resource{
			{Name: "Coursera (Andrew Ng)", URL: "https://www.coursera.org/", Type: "Online Course"},
			{Name: "Hugging Face", URL: "https://huggingface.co/", Type: "Models & Datasets"},
			{Name: "Kaggle", URL: "https://www.kaggle.com/", Type: "Data Science Community"},
		},
	},
}

// RecommendResources maps a topic to curated study links.
func RecommendResources(topic string) []Resource {
	lower := strings.ToLower(topic)

	var out []Resource
	for _, family := range resourceFamilies {
		for _, word := range family.keywords {
			if strings.Contains(lower, word) {
				out = append(out, family.resources...)
				break
			}
		}
	}

	if len(out) == 0 {
		q := url.QueryEscape(topic)
		out = []Resource{
			{Name: "YouTube Search", URL: "https://www.youtube.com/results?search_query=" + q, Type: "Videos"},
			{Name: "Google Scholar", URL: "https://scholar.google.com/scholar?q=" + q, Type: "Academic Papers"},
		}
	}
	return out
}
