package escrutinio

import "sort"

// RankingEntry pairs a candidate with its accumulated vote count across all
// processed stations.
type RankingEntry struct {
	Candidate Candidate `json:"candidate"`
	Votes     int       `json:"votes"`
}

// Stats is the aggregate view derived from a snapshot: per-candidate totals
// and ranking, ballot totals, participation and station progress. The
// trailing fields pass the snapshot's contents through for collaborators
// building detail views.
type Stats struct {
	Ranking           []RankingEntry `json:"ranking"`
	TotalValid        int            `json:"totalValid"`
	TotalBlank        int            `json:"totalBlank"`
	TotalNull         int            `json:"totalNull"`
	TotalCast         int            `json:"totalCast"`
	TotalEligibleSum  int            `json:"totalEligibleSum"`
	ParticipationPct  float64        `json:"participationPct"`
	StationsProcessed int            `json:"stationsProcessed"`
	StationsPending   int            `json:"stationsPending"`

	Candidates []Candidate              `json:"candidates"`
	Stations   []Station                `json:"anforas"`
	Results    map[string]StationResult `json:"results"`
}

// ComputeStats is a pure computation over a snapshot. It mutates nothing and
// returns identical output for an unchanged snapshot. Votes recorded against
// a candidate id that no longer exists are skipped; purging on delete is the
// real cleanup, this is just a guard against stale stored data.
func ComputeStats(snap *Snapshot) Stats {
	stats := Stats{
		Ranking:    make([]RankingEntry, 0, len(snap.Candidates)),
		Candidates: snap.Candidates,
		Stations:   snap.Stations,
		Results:    snap.Results,
	}

	for _, station := range snap.Stations {
		stats.TotalEligibleSum += station.TotalEligible
	}

	accumulated := make(map[string]int, len(snap.Candidates))
	for _, station := range snap.Stations {
		result, processed := snap.Results[station.ID]
		if !processed {
			continue
		}
		stats.StationsProcessed++
		stats.TotalBlank += result.Blank
		stats.TotalNull += result.Null
		for _, candidate := range snap.Candidates {
			accumulated[candidate.ID] += result.VotesFor(candidate.ID)
		}
	}

	for _, candidate := range snap.Candidates {
		votes := accumulated[candidate.ID]
		stats.TotalValid += votes
		stats.Ranking = append(stats.Ranking, RankingEntry{Candidate: candidate, Votes: votes})
	}

	// Ties keep insertion order, so the sort must be stable.
	sort.SliceStable(stats.Ranking, func(i, j int) bool {
		return stats.Ranking[i].Votes > stats.Ranking[j].Votes
	})

	stats.TotalCast = stats.TotalValid + stats.TotalBlank + stats.TotalNull
	if stats.TotalEligibleSum > 0 {
		stats.ParticipationPct = float64(stats.TotalCast) / float64(stats.TotalEligibleSum) * 100
	}
	stats.StationsPending = len(snap.Stations) - stats.StationsProcessed

	return stats
}
