package model

// Artifact is a normalized technical or documentary artifact with its anchor
type Artifact struct {
	ID            string    `json:"id"`
	Type          string    `json:"type,omitempty"`
	Value         string    `json:"value,omitempty"`
	Location      *Location `json:"location"`
	ExtractedFrom string    `json:"extracted_from,omitempty"`
	Confidence    float64   `json:"confidence"`
}

// HasAnchor reports whether the artifact carries a usable location
func (a *Artifact) HasAnchor() bool {
	return a.Location != nil && a.Location.Page > 0
}
