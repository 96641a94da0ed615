package escrutinio

import (
	"encoding/json"
	"fmt"
)

// Candidate is a person votes can be cast for.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

// Station represents a physical ballot box ("anfora") with a fixed count of
// eligible voters assigned to it.
type Station struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	TotalEligible int    `json:"totalEligible"`
}

// StationResult is the tally submitted for a single station: vote counts
// keyed by candidate id, plus blank and null (spoiled) ballot counts. A
// station has at most one result; the latest write wins.
type StationResult struct {
	Votes map[string]int
	Blank int
	Null  int
}

// The persisted layout flattens a result into one JSON object whose keys are
// candidate ids plus these two reserved names. They predate this
// implementation and must not change.
const (
	blankKey = "blancos"
	nullKey  = "nulos"
)

func (r StationResult) MarshalJSON() ([]byte, error) {
	flat := make(map[string]int, len(r.Votes)+2)
	for id, count := range r.Votes {
		flat[id] = count
	}
	flat[blankKey] = r.Blank
	flat[nullKey] = r.Null
	return json.Marshal(flat)
}

func (r *StationResult) UnmarshalJSON(data []byte) error {
	var flat map[string]int
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	r.Votes = make(map[string]int, len(flat))
	r.Blank, r.Null = 0, 0
	for key, count := range flat {
		switch key {
		case blankKey:
			r.Blank = count
		case nullKey:
			r.Null = count
		default:
			r.Votes[key] = count
		}
	}
	return nil
}

// VotesFor returns the recorded count for a candidate id, or 0 when the
// result has no entry for it.
func (r StationResult) VotesFor(candidateID string) int {
	return r.Votes[candidateID]
}

// Total is the number of ballots in this result, valid plus blank plus null.
func (r StationResult) Total() int {
	total := r.Blank + r.Null
	for _, count := range r.Votes {
		total += count
	}
	return total
}

// Snapshot is the complete current state of candidates, stations and
// results, persisted as a single unit. Candidate and station order is
// insertion order and survives persistence round-trips. The JSON field names
// are the persisted wire names and are kept for compatibility with
// previously stored data.
type Snapshot struct {
	Candidates []Candidate              `json:"candidates"`
	Stations   []Station                `json:"anforas"`
	Results    map[string]StationResult `json:"results"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Results: make(map[string]StationResult)}
}

// decodeSnapshot unmarshals a stored snapshot, defaulting any top-level
// container missing from older persisted layouts.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	snap := NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Results == nil {
		snap.Results = make(map[string]StationResult)
	}
	return snap, nil
}
