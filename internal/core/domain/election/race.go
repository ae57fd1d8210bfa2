package election

// Race mirrors the per-race JSON documents in the election data repository.
//
// RaceFilter is the canonical exact-match identifier for one contest and is
// unique across all races. RaceTags are broader many-to-many classification
// labels shared across category views.
type Race struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	OpenSeat          bool           `json:"openSeat"`
	Subtitle          string         `json:"subtitle"`
	AboutContent      string         `json:"aboutContent"`
	CandidatesContent string         `json:"candidatesContent,omitempty"`
	NewsTitle         string         `json:"newsTitle"`
	RaceFilter        string         `json:"raceFilter"`
	RaceTags          []string       `json:"raceTags"`
	ExternalIDs       ExternalIDs    `json:"externalIds,omitempty"`
	ElectionInfo      map[string]any `json:"electionInfo"` // open key set: primary, general, termLength, district, ...
}

type RacesResponse struct {
	Races       map[string]Race `json:"races"`
	LastUpdated string          `json:"lastUpdated"`
}

// Category is a high-level grouping of races (e.g. "State Senate") used for
// aggregate pages; matching against races happens through RaceTags.
type Category struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Subtitle           string   `json:"subtitle"`
	DescriptionHeading string   `json:"descriptionHeading"`
	Description        string   `json:"description"`
	NewsTitle          string   `json:"newsTitle"`
	RaceTags           []string `json:"raceTags"`
}

type CategoriesResponse struct {
	Categories  map[string]Category `json:"categories"`
	LastUpdated string              `json:"lastUpdated,omitempty"`
}

// Metadata tracks upstream dataset versioning.
type Metadata struct {
	LastUpdated string            `json:"lastUpdated"`
	UpdatedBy   string            `json:"updatedBy"`
	Version     string            `json:"version"`
	DataVersion map[string]string `json:"dataVersion"`
	Notes       string            `json:"notes"`
}
