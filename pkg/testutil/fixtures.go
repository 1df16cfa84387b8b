package testutil

import "github.com/vanderheijden86/podgraph/pkg/model"

// MockItems returns the five-segment demo catalogue. Every connection is
// declared on both endpoints.
func MockItems() []model.Item {
	return []model.Item{
		{
			ID:          "1",
			Title:       "The Future of AI in Creative Industries",
			Podcast:     "Tech Talk Daily",
			Duration:    "8:45",
			Tags:        []string{"AI", "creativity", "technology", "future"},
			Relevance:   0.95,
			Connections: []string{"2", "4"},
			Description: "Exploring how artificial intelligence is revolutionizing creative fields like design, music, and writing.",
			Episode:     "342",
			PublishDate: "Dec 15, 2024",
			Transcript:  "Welcome to Tech Talk Daily. Today we're diving deep into how AI is transforming creative industries.",
		},
		{
			ID:          "2",
			Title:       "Machine Learning Ethics and Society",
			Podcast:     "AI Ethics Podcast",
			Duration:    "12:30",
			Tags:        []string{"ML", "ethics", "society", "technology"},
			Relevance:   0.87,
			Connections: []string{"1", "3"},
			Description: "A deep dive into the ethical implications of machine learning systems in modern society.",
			Episode:     "89",
			PublishDate: "Dec 12, 2024",
		},
		{
			ID:          "3",
			Title:       "Building Sustainable Tech Companies",
			Podcast:     "Startup Stories",
			Duration:    "15:20",
			Tags:        []string{"startup", "sustainability", "business", "technology"},
			Relevance:   0.76,
			Connections: []string{"2", "5"},
			Description: "How modern tech companies are integrating sustainability into their core business models.",
			Episode:     "156",
			PublishDate: "Dec 10, 2024",
		},
		{
			ID:          "4",
			Title:       "The Psychology of Innovation",
			Podcast:     "Mind Matters",
			Duration:    "9:15",
			Tags:        []string{"psychology", "innovation", "creativity", "mindset"},
			Relevance:   0.82,
			Connections: []string{"1", "5"},
			Description: "Understanding the psychological factors that drive breakthrough innovations.",
			Episode:     "234",
			PublishDate: "Dec 8, 2024",
		},
		{
			ID:          "5",
			Title:       "Remote Work Culture Evolution",
			Podcast:     "Workplace Revolution",
			Duration:    "11:40",
			Tags:        []string{"remote work", "culture", "productivity", "future"},
			Relevance:   0.69,
			Connections: []string{"3", "4"},
			Description: "How remote work is changing company culture and team dynamics.",
			Episode:     "67",
			PublishDate: "Dec 5, 2024",
		},
	}
}

// MockSuggestions returns the demo suggestion chips.
func MockSuggestions() model.Suggestions {
	return model.Suggestions{
		Top:    []string{"artificial intelligence", "innovation", "future trends"},
		Bottom: []string{"startup ecosystem", "digital transformation", "remote collaboration"},
		Left:   []string{"creative technology", "ethical AI", "sustainable business"},
		Right:  []string{"workplace culture", "productivity tools", "technology adoption"},
	}
}
