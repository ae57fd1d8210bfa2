package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/peachstatevotes/election-data-api/internal/core/domain/election"
	"github.com/peachstatevotes/election-data-api/internal/core/domain/finance"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Race-filter prefixes identifying federal contests. Everything else is a
// state race reported through the state disclosure scrape.
const (
	federalSenatePrefix = "us_senate"
	federalHousePrefix  = "us_house"
)

// FinanceService routes candidates to the right finance source and
// aggregates race-level summaries.
type FinanceService struct {
	federal ports.FederalFinance
	state   ports.StateFinance
	// electionState/cycle scope FEC searches for candidates without a
	// stored FEC id.
	electionState string
	cycle         int
	logger        *logrus.Logger
}

func NewFinanceService(federal ports.FederalFinance, state ports.StateFinance, electionState string, cycle int, logger *logrus.Logger) *FinanceService {
	return &FinanceService{
		federal:       federal,
		state:         state,
		electionState: electionState,
		cycle:         cycle,
		logger:        logger,
	}
}

var _ ports.FinanceService = (*FinanceService)(nil)

func isFederalRace(raceFilter string) bool {
	return strings.HasPrefix(raceFilter, federalSenatePrefix) || strings.HasPrefix(raceFilter, federalHousePrefix)
}

// GetCandidateFinancials returns the normalized summary for one candidate,
// or nil when no filing data is resolvable — an expected steady state for
// unannounced candidates, not an error.
func (s *FinanceService) GetCandidateFinancials(ctx context.Context, candidate election.Candidate) (*finance.Summary, error) {
	if !isFederalRace(candidate.Race) {
		return s.state.GetFinancialSummary(ctx, candidate.ID, candidate.Name)
	}

	fecID := candidate.ExternalIDs.OpenFEC
	if fecID == "" {
		office := "H"
		if strings.Contains(candidate.Race, "senate") {
			office = "S"
		}
		results, err := s.federal.SearchCandidates(ctx, candidate.Name, s.electionState, office)
		if err != nil {
			return nil, fmt.Errorf("searching FEC for %s: %w", candidate.Name, err)
		}
		if len(results) == 0 {
			s.logger.WithField("candidate", candidate.Name).Debug("no FEC registration found")
			return nil, nil
		}
		fecID = results[0].CandidateID
	}

	return s.federal.GetFinancialSummary(ctx, fecID, candidate.Name, s.cycle)
}

// GetRaceFinancials fetches every candidate's summary concurrently, drops
// the ones with no data, and flags the race unopposed when at most one
// candidate shows positive fundraising. Fundraising activity, not ballot
// presence, is the competition signal: a race with many filed candidates but
// one fundraiser is still effectively unopposed.
func (s *FinanceService) GetRaceFinancials(ctx context.Context, raceFilter string, candidates []election.Candidate) (*finance.RaceSummary, error) {
	summaries := make([]*finance.Summary, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			summary, err := s.GetCandidateFinancials(gctx, c)
			if err != nil {
				return err
			}
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	valid := make([]finance.Summary, 0, len(summaries))
	funded := 0
	for _, summary := range summaries {
		if summary == nil {
			continue
		}
		valid = append(valid, *summary)
		if summary.TotalRaised > 0 {
			funded++
		}
	}

	return &finance.RaceSummary{
		RaceID:      raceFilter,
		RaceName:    raceFilter,
		Candidates:  valid,
		IsUnopposed: funded <= 1,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// IsRaceUnopposed reports whether at most one candidate has raised money.
func (s *FinanceService) IsRaceUnopposed(ctx context.Context, raceFilter string, candidates []election.Candidate) (bool, error) {
	summary, err := s.GetRaceFinancials(ctx, raceFilter, candidates)
	if err != nil {
		return false, err
	}
	return summary.IsUnopposed, nil
}

// ClearCache drops both finance sources' cached responses.
func (s *FinanceService) ClearCache(ctx context.Context) {
	s.federal.ClearCache(ctx)
	s.state.ClearCache(ctx)
}

// FormatCurrency renders amounts for display: millions with one decimal,
// thousands rounded to the nearest whole thousand, small amounts as-is.
func FormatCurrency(amount float64) string {
	if amount >= 1_000_000 {
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	}
	if amount >= 1_000 {
		return fmt.Sprintf("$%dK", int64(math.Round(amount/1_000)))
	}
	return fmt.Sprintf("$%d", int64(math.Round(amount)))
}

// FinancialSummaryText is the one-line display string for a summary.
func FinancialSummaryText(summary *finance.Summary) string {
	if summary == nil {
		return "No financial data available"
	}
	if summary.TotalRaised == 0 {
		return "No funds reported"
	}
	return fmt.Sprintf("Raised %s | Spent %s | Cash %s",
		FormatCurrency(summary.TotalRaised),
		FormatCurrency(summary.TotalSpent),
		FormatCurrency(summary.CashOnHand))
}
