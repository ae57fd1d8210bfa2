package ports

import (
	"context"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/election"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/finance"
)

// FederalFinance wraps the FEC API for federal races. A nil summary with a
// nil error means no filing exists yet, which is an expected steady state
// for unannounced candidates, not a failure.
type FederalFinance interface {
	SearchCandidates(ctx context.Context, name, state, office string) ([]finance.FECCandidate, error)
	GetFinancialSummary(ctx context.Context, candidateID, candidateName string, cycle int) (*finance.Summary, error)
	ClearCache(ctx context.Context)
}

// StateFinance reads the consolidated state campaign-finance document for
// non-federal races. Same nil/nil convention as FederalFinance.
type StateFinance interface {
	GetFinancialSummary(ctx context.Context, candidateID, candidateName string) (*finance.Summary, error)
	ClearCache(ctx context.Context)
}

// FinanceService routes a candidate to the right finance source and
// aggregates race-level views.
type FinanceService interface {
	GetCandidateFinancials(ctx context.Context, candidate election.Candidate) (*finance.Summary, error)
	GetRaceFinancials(ctx context.Context, raceFilter string, candidates []election.Candidate) (*finance.RaceSummary, error)
	IsRaceUnopposed(ctx context.Context, raceFilter string, candidates []election.Candidate) (bool, error)
	ClearCache(ctx context.Context)
}
