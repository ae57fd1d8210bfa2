package finance

// Source identifies which campaign-finance system a summary was derived from.
type Source string

const (
	SourceOpenFEC         Source = "openFEC"
	SourceTransparencyUSA Source = "transparencyUSA"
)

// Summary is the normalized shape both finance sources are reduced to.
// It is derived fresh from each source's native format on every cache miss
// and never stored upstream in this form. Monetary fields are non-negative
// after normalization.
type Summary struct {
	CandidateID   string  `json:"candidateId"`
	CandidateName string  `json:"candidateName"`
	TotalRaised   float64 `json:"totalRaised"`
	TotalSpent    float64 `json:"totalSpent"`
	CashOnHand    float64 `json:"cashOnHand"`
	LastUpdated   string  `json:"lastUpdated"`
	Source        Source  `json:"source"`
	CycleYear     int     `json:"cycleYear,omitempty"`
	FilingPeriod  string  `json:"filingPeriod,omitempty"`
}

// RaceSummary aggregates the summaries of every candidate in one race.
// IsUnopposed is true when at most one candidate shows positive fundraising:
// fundraising activity, not ballot presence, is what signals real competition.
type RaceSummary struct {
	RaceID      string    `json:"raceId"`
	RaceName    string    `json:"raceName"`
	Candidates  []Summary `json:"candidates"`
	IsUnopposed bool      `json:"isUnopposed"`
	LastUpdated string    `json:"lastUpdated"`
}

// FECCandidate is a raw candidate record from the FEC search API.
type FECCandidate struct {
	CandidateID        string `json:"candidate_id"`
	Name               string `json:"name"`
	Party              string `json:"party"`
	Office             string `json:"office"`
	State              string `json:"state"`
	District           string `json:"district,omitempty"`
	IncumbentChallenge string `json:"incumbent_challenge,omitempty"`
	Cycles             []int  `json:"cycles"`
}

// FECTotals is a raw totals-by-cycle record from the FEC API.
type FECTotals struct {
	CandidateID         string  `json:"candidate_id"`
	Cycle               int     `json:"cycle"`
	Receipts            float64 `json:"receipts"`
	Disbursements       float64 `json:"disbursements"`
	CashOnHandEndPeriod float64 `json:"cash_on_hand_end_period"`
	CoverageEndDate     string  `json:"coverage_end_date"`
	LastUpdated         string  `json:"last_updated"`
}

// StateFiling is one candidate's entry in the consolidated state-financials
// document. Currency fields arrive as display strings ("$1,234,567.89")
// scraped from the state disclosure site.
type StateFiling struct {
	Name          string `json:"name"`
	Race          string `json:"race"`
	Party         string `json:"party"`
	Contributions string `json:"contributions"`
	Loans         string `json:"loans"`
	Expenditures  string `json:"expenditures"`
	Status        string `json:"status"`
}

// StateFinancials is the /financials/state-financials.json document,
// keyed by candidate id.
type StateFinancials struct {
	LastUpdated string                 `json:"lastUpdated"`
	Candidates  map[string]StateFiling `json:"candidates"`
}
