// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

// Kata is one exercise from the catalog: a deliberately broken piece of Rust
// code, the corrected version, and the prose around them.
//
// The JSON tags use snake_case because that is the wire format the frontend
// already speaks (the catalog API predates this server).
type Kata struct {
	ID         string `json:"id"`
	Phase      int    `json:"phase"`
	PhaseTitle string `json:"phase_title"`
	Sequence   int    `json:"sequence"`
	Title      string `json:"title"`

	Hints       []string `json:"hints"`
	Description string   `json:"description"`
	BrokenCode  string   `json:"broken_code"`
	CorrectCode string   `json:"correct_code"`
	Explanation string   `json:"explanation"`

	// CompilerErrorInterpretation walks the learner through the diagnostics
	// rustc emits for the broken code.
	CompilerErrorInterpretation string `json:"compiler_error_interpretation"`
}

// KataSummary is the trimmed form used in list responses — just enough to
// render a table of contents without shipping every kata body.
type KataSummary struct {
	ID       string `json:"id"`
	Sequence int    `json:"sequence"`
	Title    string `json:"title"`
}

// PhaseGroup is one phase of the curriculum with its katas in sequence order.
type PhaseGroup struct {
	Phase int           `json:"phase"`
	Title string        `json:"title"`
	Katas []KataSummary `json:"katas"`
}

// KataListResponse is the body of GET /api/katas.
type KataListResponse struct {
	Phases []PhaseGroup `json:"phases"`
}
