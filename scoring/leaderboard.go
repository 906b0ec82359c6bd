package scoring

import (
	"sort"

	"golf-tournament-system/models"
)

// LeaderboardEntry is one display row. Unlike winner results it is never
// persisted; the assembler recomputes rows from stored scores on demand.
type LeaderboardEntry struct {
	Rank             int     `json:"rank"` // 0 when the participant has no holes recorded
	ParticipantID    string  `json:"participant_id"`
	PlayerName       string  `json:"player_name"`
	DivisionID       *string `json:"division_id,omitempty"`
	DivisionName     string  `json:"division_name,omitempty"`
	GrossScore       int     `json:"gross_score"`
	NetScore         int     `json:"net_score"`
	TotalPoints      int     `json:"total_points"`
	HolesCompleted   int     `json:"holes_completed"`
	ComputedHandicap *int    `json:"computed_handicap,omitempty"`
	Tied             bool    `json:"tied"`
}

// LeaderboardFilter narrows the assembled board. Filters apply after ranking,
// so a division view shows each player's event-wide rank, not a renumbered one.
type LeaderboardFilter struct {
	DivisionID string
	MinHoles   int
	MaxRank    int
}

// AssembleLeaderboard ranks every participant with at least one recorded hole
// under the event's strategy and tie-break method, appends zero-hole
// participants unranked at the bottom, then applies the filter.
//
// Eligibility rules do not apply here: a player excluded from winner
// calculation by an incomplete round still appears, ranked by what they
// recorded. The random tie-break method is treated like share on the board so
// repeated reads do not reorder tied players between refreshes.
func AssembleLeaderboard(strategy Strategy, method models.TieBreakMethod, rounds []ParticipantRound, filter LeaderboardFilter) []LeaderboardEntry {
	boardMethod := method
	if boardMethod == models.TieBreakRandom {
		boardMethod = models.TieBreakShare
	}

	var played, unplayed []ParticipantRound
	for _, rec := range rounds {
		if rec.Totals.HolesCompleted > 0 {
			played = append(played, rec)
		} else {
			unplayed = append(unplayed, rec)
		}
	}

	keyFn := func(rec ParticipantRound) []int {
		return strategy.SortKey(rec.Totals, rec.Participant.DeclaredHandicap, boardMethod)
	}
	ranked := rankPool(played, keyFn, boardMethod, len(played), nil)

	entries := make([]LeaderboardEntry, 0, len(rounds))
	for _, e := range ranked {
		entries = append(entries, buildEntry(e.rec, e.rank, e.tied))
	}

	sort.SliceStable(unplayed, func(i, j int) bool {
		return unplayed[i].Participant.PlayerName < unplayed[j].Participant.PlayerName
	})
	for _, rec := range unplayed {
		entries = append(entries, buildEntry(rec, 0, false))
	}

	return applyFilter(entries, filter)
}

func buildEntry(rec ParticipantRound, rank int, tied bool) LeaderboardEntry {
	e := LeaderboardEntry{
		Rank:             rank,
		ParticipantID:    rec.Participant.ID,
		PlayerName:       rec.Participant.PlayerName,
		GrossScore:       rec.Totals.Gross,
		NetScore:         rec.Totals.Net,
		TotalPoints:      rec.Totals.Points,
		HolesCompleted:   rec.Totals.HolesCompleted,
		ComputedHandicap: rec.ComputedHandicap,
		Tied:             tied,
	}
	if rec.Division != nil {
		id := rec.Division.ID
		e.DivisionID = &id
		e.DivisionName = rec.Division.Name
	}
	return e
}

func applyFilter(entries []LeaderboardEntry, filter LeaderboardFilter) []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		if filter.DivisionID != "" && (e.DivisionID == nil || *e.DivisionID != filter.DivisionID) {
			continue
		}
		if filter.MinHoles > 0 && e.HolesCompleted < filter.MinHoles {
			continue
		}
		if filter.MaxRank > 0 && (e.Rank == 0 || e.Rank > filter.MaxRank) {
			continue
		}
		out = append(out, e)
	}
	return out
}
