package llm

import "context"

// CardFields is the normalized shape we ask the model for. It is a hint, not
// a result: every numeric field is re-validated before anything is kept.
type CardFields struct {
	Name        string `json:"name,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	IDNumber    string `json:"id_number,omitempty"`
	VIDNumber   string `json:"vid_number,omitempty"`
	Address     string `json:"address,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
}

// Extractor is the optional language-model collaborator. Infer returns the
// raw model text, which may wrap the JSON object in prose or code fencing.
// A nil Extractor is a valid configuration; the engine then runs on the
// heuristic output alone.
type Extractor interface {
	Infer(ctx context.Context, prompt string) (string, error)
}
