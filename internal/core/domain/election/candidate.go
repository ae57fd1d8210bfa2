package election

// Candidate mirrors the per-candidate JSON documents published in the
// election data repository. The service treats candidates as immutable
// snapshots; they are only ever replaced wholesale by a refresh.
type Candidate struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Party        string      `json:"party"`
	Race         string      `json:"race"` // raceFilter value, e.g. "ga_governor"
	IsIncumbent  bool        `json:"isIncumbent"`
	Background   string      `json:"background"`
	Experience   []string    `json:"experience"`
	KeyIssues    []string    `json:"keyIssues"`
	Website      string      `json:"website,omitempty"`
	PhotoURL     string      `json:"photoUrl,omitempty"`
	Endorsements []string    `json:"endorsements"`
	SocialMedia  SocialMedia `json:"socialMedia"`
	Sources      []string    `json:"sources"`
	ExternalIDs  ExternalIDs `json:"externalIds,omitempty"`
}

type SocialMedia struct {
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// ExternalIDs links a candidate or race to third-party systems.
type ExternalIDs struct {
	OpenFEC         string `json:"openFEC,omitempty"`
	TransparencyUSA string `json:"transparencyUSA,omitempty"`
	Ballotpedia     string `json:"ballotpedia,omitempty"`
}

// CandidatesResponse is the assembled collection returned by the dataset
// service; LastUpdated is stamped at assembly time, not fetch time.
type CandidatesResponse struct {
	Candidates  []Candidate `json:"candidates"`
	LastUpdated string      `json:"lastUpdated"`
}

// IndexEntry is one row of an index.json document.
type IndexEntry struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}
