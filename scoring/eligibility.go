package scoring

import (
	"fmt"

	"golf-tournament-system/models"
)

// ParticipantRound is the annotated per-participant record the winner pipeline
// works on. Stages return updated copies instead of mutating shared state, so
// a reassignment or disqualification is visible to later stages without any
// in-place mutation of the participant.
type ParticipantRound struct {
	Participant models.Participant
	Division    *models.Division
	Totals      RoundTotals

	// ComputedHandicap is the System 36 round handicap; nil unless 18 holes
	// were recorded.
	ComputedHandicap *int

	Eligible         bool
	IneligibleReason string

	Disqualified       bool
	DisqualifiedReason string

	// ReassignedFrom records the original division when System 36 Modified
	// validation moved the participant to a different one.
	ReassignedFrom *models.Division
}

// BuildRound aggregates a participant's stored scores into an unannotated
// record. Eligibility and division validation run as separate stages.
func BuildRound(p models.Participant, division *models.Division, scores []models.HoleScore) ParticipantRound {
	totals := AggregateRound(scores)
	return ParticipantRound{
		Participant:      p,
		Division:         division,
		Totals:           totals,
		ComputedHandicap: totals.System36Handicap(),
	}
}

// CheckEligibility decides whether the round counts toward ranking.
// Ineligibility is a classification, not an error: the record is returned
// with a reason and the participant stays visible on the leaderboard.
func CheckEligibility(rec ParticipantRound, cfg models.WinnerConfiguration, strategy Strategy) ParticipantRound {
	rec.Eligible = true
	rec.IneligibleReason = ""

	switch {
	case strategy.FullRoundRequired() && rec.Totals.HolesCompleted != 18:
		// Overrides configuration: the System 36 handicap is undefined on a
		// partial round.
		rec.Eligible = false
		rec.IneligibleReason = fmt.Sprintf("System 36 requires a full 18-hole round (%d recorded)", rec.Totals.HolesCompleted)
	case cfg.ExcludeIncompleteRounds && rec.Totals.HolesCompleted < cfg.MinimumHolesForRanking:
		rec.Eligible = false
		rec.IneligibleReason = fmt.Sprintf("round incomplete: %d of %d required holes", rec.Totals.HolesCompleted, cfg.MinimumHolesForRanking)
	case rec.Totals.HolesCompleted == 0:
		rec.Eligible = false
		rec.IneligibleReason = "no holes recorded"
	}
	return rec
}

// ValidateDivision applies the System 36 Modified handicap-range rules and
// returns an updated copy. It only acts on men's divisions with a defined
// range, and only when the computed handicap exists (18 holes recorded).
//
// A player whose computed handicap falls below the division minimum performed
// better than the band allows; they are moved to the active men's division
// whose range contains the handicap, or disqualified when none exists. A
// handicap above the maximum disqualifies unconditionally: the player
// performed worse than the division allows, and there is no division to fall
// back to.
func ValidateDivision(rec ParticipantRound, divisions []models.Division) ParticipantRound {
	if rec.Disqualified || !rec.Eligible || rec.ComputedHandicap == nil {
		return rec
	}
	div := rec.Division
	if div == nil || div.Type != models.DivisionMen || !div.HasRange() {
		return rec
	}

	h := float64(*rec.ComputedHandicap)
	switch {
	case h < *div.MinHandicap:
		for i := range divisions {
			d := &divisions[i]
			if !d.Active || d.ID == div.ID || d.Type != models.DivisionMen {
				continue
			}
			if d.HasRange() && d.Contains(h) {
				rec.ReassignedFrom = div
				rec.Division = d
				return rec
			}
		}
		rec.Disqualified = true
		rec.DisqualifiedReason = fmt.Sprintf(
			"computed handicap %d below division %q minimum %.1f and no matching division found",
			*rec.ComputedHandicap, div.Name, *div.MinHandicap)
	case h > *div.MaxHandicap:
		rec.Disqualified = true
		rec.DisqualifiedReason = fmt.Sprintf(
			"computed handicap %d above division %q maximum %.1f",
			*rec.ComputedHandicap, div.Name, *div.MaxHandicap)
	}
	return rec
}
