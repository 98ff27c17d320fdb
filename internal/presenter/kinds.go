package presenter

import (
	"strconv"
	"time"

	"recordhub/internal/model"
)

func GameOptions(timeout time.Duration) Options[model.Game] {
	return Options[model.Game]{
		Kind:     "games",
		Title:    "Games List",
		Singular: "Game",
		Form: []FieldSpec{
			{Name: "name", Label: "Name", Type: "text", Placeholder: "Game Name - Required"},
			{Name: "studio", Label: "Studio", Type: "text", Placeholder: "Studio - Required"},
			{Name: "genre", Label: "Genre", Type: "text", Placeholder: "Genre - Required"},
			{Name: "review", Label: "Review", Type: "select", Placeholder: "Review - Required",
				Choices: []string{model.ReviewPositive, model.ReviewNegative}},
		},
		Columns: []Column[model.Game]{
			{Label: "Name", Value: func(g model.Game) string { return g.Name }},
			{Label: "Studio", Value: func(g model.Game) string { return g.Studio }},
			{Label: "Genre", Value: func(g model.Game) string { return g.Genre }},
			{Label: "Review", Value: func(g model.Game) string { return g.Review }},
		},
		IDOf: func(g model.Game) uint { return g.ID },
		DraftOf: func(g model.Game) map[string]string {
			return map[string]string{"name": g.Name, "studio": g.Studio, "genre": g.Genre, "review": g.Review}
		},
		PreValidateClientSide: true,
		RequiredMessages: map[string]string{
			"name":   "The game name is required",
			"studio": "The studio is required",
			"genre":  "The genre is required",
			"review": "The review is required",
		},
		Timeout: timeout,
	}
}

// MayorOptions leaves all checking to the server.
func MayorOptions(timeout time.Duration) Options[model.Mayor] {
	return Options[model.Mayor]{
		Kind:     "mayors",
		Title:    "Mayors List",
		Singular: "Mayor",
		Form: []FieldSpec{
			{Name: "name", Label: "Name", Type: "text", Placeholder: "Mayor Name"},
			{Name: "age", Label: "Age", Type: "number", Placeholder: "Age"},
			{Name: "address", Label: "Address", Type: "text", Placeholder: "Address"},
			{Name: "city", Label: "City", Type: "text", Placeholder: "City"},
		},
		Columns: []Column[model.Mayor]{
			{Label: "Name", Value: func(m model.Mayor) string { return m.Name }},
			{Label: "Age", Value: func(m model.Mayor) string { return strconv.Itoa(m.Age) }},
			{Label: "Address", Value: func(m model.Mayor) string { return m.Address }},
			{Label: "City", Value: func(m model.Mayor) string { return m.City }},
		},
		IDOf: func(m model.Mayor) uint { return m.ID },
		DraftOf: func(m model.Mayor) map[string]string {
			return map[string]string{"name": m.Name, "age": strconv.Itoa(m.Age), "address": m.Address, "city": m.City}
		},
		Timeout: timeout,
	}
}

// ChirpOptions lets only the author edit or delete a chirp.
func ChirpOptions(timeout time.Duration, viewerID uint) Options[model.Chirp] {
	return Options[model.Chirp]{
		Kind:     "chirps",
		Title:    "Chirps",
		Singular: "Chirp",
		Form: []FieldSpec{
			{Name: "message", Label: "Message", Type: "textarea", Placeholder: "What's on your mind?"},
		},
		Columns: []Column[model.Chirp]{
			{Label: "Author", Value: func(c model.Chirp) string {
				if c.User == nil {
					return ""
				}
				return c.User.Name
			}},
			{Label: "Message", Value: func(c model.Chirp) string { return c.Message }},
			{Label: "Posted", Value: func(c model.Chirp) string { return c.CreatedAt.Format("02 Jan 2006 15:04") }},
		},
		IDOf: func(c model.Chirp) uint { return c.ID },
		DraftOf: func(c model.Chirp) map[string]string {
			return map[string]string{"message": c.Message}
		},
		CanModify: func(c model.Chirp) bool { return viewerID != 0 && c.UserID == viewerID },
		Timeout:   timeout,
	}
}
