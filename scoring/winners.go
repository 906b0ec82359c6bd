package scoring

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"golf-tournament-system/models"
)

// Reassignment is a division pointer update the persistence layer must apply
// alongside the winner results. The pipeline never writes; it reports.
type Reassignment struct {
	ParticipantID  string
	FromDivisionID string
	ToDivisionID   string
	Reason         string
}

// CalculateWinners runs the full winner pipeline over rounds already
// materialized in memory: eligibility and division validation, special awards
// with cascading exclusion, overall ranking, per-division ranking with tie
// extension, and disqualification rows. It is a pure function of its inputs
// except under the "random" tie-break method, where rng separates tied
// participants.
//
// The returned results carry no row IDs or event references; the caller stamps
// those when persisting the replacement set.
func CalculateWinners(
	strategy Strategy,
	cfg models.WinnerConfiguration,
	divisions []models.Division,
	rounds []ParticipantRound,
	rng *rand.Rand,
) ([]models.WinnerResult, []Reassignment) {
	modified := ModifiedDivisionRules(strategy.Type())

	// Stage 1: annotate every record. Copies, never in-place mutation.
	annotated := make([]ParticipantRound, 0, len(rounds))
	for _, rec := range rounds {
		rec = CheckEligibility(rec, cfg, strategy)
		if modified {
			rec = ValidateDivision(rec, divisions)
		}
		annotated = append(annotated, rec)
	}

	var (
		results       []models.WinnerResult
		reassignments []Reassignment
	)
	for _, rec := range annotated {
		if rec.ReassignedFrom == nil || rec.Division == nil {
			continue
		}
		reassignments = append(reassignments, Reassignment{
			ParticipantID:  rec.Participant.ID,
			FromDivisionID: rec.ReassignedFrom.ID,
			ToDivisionID:   rec.Division.ID,
			Reason: fmt.Sprintf("computed handicap %d below division %q minimum; moved to %q",
				derefInt(rec.ComputedHandicap), rec.ReassignedFrom.Name, rec.Division.Name),
		})
	}

	// Stage 2: special awards consume the pool and hand the remainder on, so
	// one person wins at most one category.
	pool := eligiblePool(annotated)

	if cfg.BestGrossAward {
		winner, remaining := SelectSpecialAward(pool, grossAwardKey(cfg.TieBreakMethod), cfg.TieBreakMethod, rng)
		if winner != nil {
			results = append(results, buildResult(*winner, models.AwardBestGross, 1, false, ""))
		}
		pool = remaining
	}
	if cfg.BestNetAward && strategy.Type() != models.ScoringTypeStroke {
		winner, remaining := SelectSpecialAward(pool, netAwardKey(strategy, cfg.TieBreakMethod), cfg.TieBreakMethod, rng)
		if winner != nil {
			results = append(results, buildResult(*winner, models.AwardBestNet, 1, false, ""))
		}
		pool = remaining
	}

	keyFn := func(rec ParticipantRound) []int {
		return strategy.SortKey(rec.Totals, rec.Participant.DeclaredHandicap, cfg.TieBreakMethod)
	}

	// Stage 3: overall winners, then excluded from division pools like the
	// special awards.
	if cfg.OverallWinners > 0 {
		ranked := rankPool(pool, keyFn, cfg.TieBreakMethod, cfg.OverallWinners, rng)
		taken := make(map[string]bool, len(ranked))
		for _, e := range ranked {
			results = append(results, buildResult(e.rec, models.AwardOverall, e.rank, e.tied, e.tiedWith))
			taken[e.rec.Participant.ID] = true
		}
		pool = without(pool, taken)
	}

	// Stage 4: per-division ranking with tie extension past the cutoff.
	for i := range divisions {
		div := &divisions[i]
		if !div.Active {
			continue
		}
		var divPool []ParticipantRound
		for _, rec := range pool {
			if rec.Division != nil && rec.Division.ID == div.ID {
				divPool = append(divPool, rec)
			}
		}
		ranked := rankPool(divPool, keyFn, cfg.TieBreakMethod, cfg.DivisionWinners, rng)
		for _, e := range ranked {
			results = append(results, buildResult(e.rec, models.AwardDivision, e.rank, e.tied, e.tiedWith))
		}
	}

	// Stage 5: disqualified participants stay in the persisted set with their
	// reason, excluded from every pool above.
	for _, rec := range annotated {
		if rec.Disqualified {
			results = append(results, buildResult(rec, models.AwardDisqualified, 0, false, ""))
		}
	}

	return results, reassignments
}

// SelectSpecialAward picks the single best participant under keyFn and returns
// the remaining pool with the winner removed. Ties the key cannot separate are
// broken by participant id so repeated runs stay byte-for-byte identical; the
// random method draws instead.
func SelectSpecialAward(pool []ParticipantRound, keyFn func(ParticipantRound) []int, method models.TieBreakMethod, rng *rand.Rand) (*ParticipantRound, []ParticipantRound) {
	if len(pool) == 0 {
		return nil, pool
	}

	leaders := []int{0}
	bestKey := keyFn(pool[0])
	for i := 1; i < len(pool); i++ {
		key := keyFn(pool[i])
		switch compareKeys(key, bestKey) {
		case -1:
			bestKey = key
			leaders = leaders[:0]
			leaders = append(leaders, i)
		case 0:
			leaders = append(leaders, i)
		}
	}

	best := leaders[0]
	if len(leaders) > 1 {
		if method == models.TieBreakRandom && rng != nil {
			best = leaders[rng.Intn(len(leaders))]
		} else {
			for _, i := range leaders[1:] {
				if pool[i].Participant.ID < pool[best].Participant.ID {
					best = i
				}
			}
		}
	}

	winner := pool[best]
	remaining := make([]ParticipantRound, 0, len(pool)-1)
	remaining = append(remaining, pool[:best]...)
	remaining = append(remaining, pool[best+1:]...)
	return &winner, remaining
}

// rankedEntry pairs a record with its assigned competition rank.
type rankedEntry struct {
	rec      ParticipantRound
	rank     int
	tied     bool
	tiedWith string
}

type standing struct {
	rec ParticipantRound
	key []int
}

// rankPool sorts a pool by sort key and assigns competition ranks ("1224":
// equal keys share a rank, the next distinct key ranks at its ordinal
// position) up to limit winners. A tie group straddling the cutoff is
// included whole, never cut mid-tie. Groups sharing a key are flagged tied
// and cross-referenced by participant id.
//
// Under the random method tied keys are separated by a draw and every
// included entry holds a distinct rank.
func rankPool(pool []ParticipantRound, keyFn func(ParticipantRound) []int, method models.TieBreakMethod, limit int, rng *rand.Rand) []rankedEntry {
	if len(pool) == 0 || limit <= 0 {
		return nil
	}

	standings := make([]standing, 0, len(pool))
	for _, rec := range pool {
		standings = append(standings, standing{rec: rec, key: keyFn(rec)})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if c := compareKeys(standings[i].key, standings[j].key); c != 0 {
			return c < 0
		}
		return standings[i].rec.Participant.ID < standings[j].rec.Participant.ID
	})

	if method == models.TieBreakRandom && rng != nil {
		shuffleTiedRuns(standings, rng)
		n := limit
		if n > len(standings) {
			n = len(standings)
		}
		out := make([]rankedEntry, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, rankedEntry{rec: standings[i].rec, rank: i + 1})
		}
		return out
	}

	var out []rankedEntry
	rank := 1
	for i, s := range standings {
		if i > 0 && !keysEqual(s.key, standings[i-1].key) {
			rank = i + 1
		}
		if rank > limit {
			break
		}
		out = append(out, rankedEntry{rec: s.rec, rank: rank})
	}

	markTies(out)
	return out
}

// shuffleTiedRuns shuffles each run of equal-key standings in place. The
// slice must already be sorted so equal keys are adjacent.
func shuffleTiedRuns(standings []standing, rng *rand.Rand) {
	for i := 0; i < len(standings); {
		j := i + 1
		for j < len(standings) && keysEqual(standings[j].key, standings[i].key) {
			j++
		}
		rng.Shuffle(j-i, func(a, b int) {
			standings[i+a], standings[i+b] = standings[i+b], standings[i+a]
		})
		i = j
	}
}

// markTies flags every group sharing a rank and cross-references the group
// members through TiedWith.
func markTies(out []rankedEntry) {
	for i := 0; i < len(out); {
		j := i + 1
		for j < len(out) && out[j].rank == out[i].rank {
			j++
		}
		if j-i > 1 {
			ids := make([]string, 0, j-i)
			for k := i; k < j; k++ {
				ids = append(ids, out[k].rec.Participant.ID)
			}
			for k := i; k < j; k++ {
				others := make([]string, 0, len(ids)-1)
				for _, id := range ids {
					if id != out[k].rec.Participant.ID {
						others = append(others, id)
					}
				}
				out[k].tied = true
				out[k].tiedWith = strings.Join(others, ",")
			}
		}
		i = j
	}
}

func eligiblePool(rounds []ParticipantRound) []ParticipantRound {
	pool := make([]ParticipantRound, 0, len(rounds))
	for _, rec := range rounds {
		if rec.Eligible && !rec.Disqualified {
			pool = append(pool, rec)
		}
	}
	return pool
}

func without(pool []ParticipantRound, taken map[string]bool) []ParticipantRound {
	remaining := make([]ParticipantRound, 0, len(pool))
	for _, rec := range pool {
		if !taken[rec.Participant.ID] {
			remaining = append(remaining, rec)
		}
	}
	return remaining
}

// grossAwardKey ranks by lowest gross with gross countback.
func grossAwardKey(method models.TieBreakMethod) func(ParticipantRound) []int {
	return func(rec ParticipantRound) []int {
		return buildSortKey(rec.Totals.Gross, false, rec.Totals.grossCountback(), rec.Participant.DeclaredHandicap, method)
	}
}

// netAwardKey ranks by the strategy's net metric. Net stroke counts back on
// net sub-totals; System 36 uses its primary metric with gross countback,
// matching the division ranking.
func netAwardKey(strategy Strategy, method models.TieBreakMethod) func(ParticipantRound) []int {
	return func(rec ParticipantRound) []int {
		if strategy.Type() == models.ScoringTypeNetStroke {
			return buildSortKey(rec.Totals.Net, false, rec.Totals.netCountback(), rec.Participant.DeclaredHandicap, method)
		}
		return strategy.SortKey(rec.Totals, rec.Participant.DeclaredHandicap, method)
	}
}

func buildResult(rec ParticipantRound, category models.AwardCategory, rank int, tied bool, tiedWith string) models.WinnerResult {
	r := models.WinnerResult{
		ParticipantID:    rec.Participant.ID,
		PlayerName:       rec.Participant.PlayerName,
		Category:         category,
		Rank:             rank,
		GrossScore:       rec.Totals.Gross,
		NetScore:         rec.Totals.Net,
		TotalPoints:      rec.Totals.Points,
		HolesCompleted:   rec.Totals.HolesCompleted,
		ComputedHandicap: rec.ComputedHandicap,
		Tied:             tied,
		TiedWith:         tiedWith,
	}
	if rec.Division != nil {
		id := rec.Division.ID
		r.DivisionID = &id
		r.DivisionName = rec.Division.Name
	}
	if rec.ReassignedFrom != nil {
		id := rec.ReassignedFrom.ID
		r.OriginalDivisionID = &id
		r.Reason = fmt.Sprintf("reassigned from %q by computed handicap", rec.ReassignedFrom.Name)
	}
	if rec.Disqualified {
		r.Reason = rec.DisqualifiedReason
	}
	return r
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
