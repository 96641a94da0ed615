package escrutinio

// SnapshotBuilder exposes a simple builder-pattern DSL for assembling a
// Snapshot progressively. Mostly useful in tests and seed scripts, where
// spelling out the struct literals gets noisy.
type SnapshotBuilder struct {
	snapshot *Snapshot
}

func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{snapshot: NewSnapshot()}
}

// Candidate appends a candidate with an explicit id.
func (b *SnapshotBuilder) Candidate(id, name, party string) *SnapshotBuilder {
	b.snapshot.Candidates = append(b.snapshot.Candidates, Candidate{ID: id, Name: name, Party: party})
	return b
}

// Station appends a station with an explicit id.
func (b *SnapshotBuilder) Station(id, name string, totalEligible int) *SnapshotBuilder {
	b.snapshot.Stations = append(b.snapshot.Stations, Station{ID: id, Name: name, TotalEligible: totalEligible})
	return b
}

// Result records a tally for a station. Votes are keyed by candidate id.
func (b *SnapshotBuilder) Result(stationID string, votes map[string]int, blank, null int) *SnapshotBuilder {
	if votes == nil {
		votes = make(map[string]int)
	}
	b.snapshot.Results[stationID] = StationResult{Votes: votes, Blank: blank, Null: null}
	return b
}

// Snapshot returns the snapshot built so far.
func (b *SnapshotBuilder) Snapshot() *Snapshot {
	return b.snapshot
}

// Stats is shorthand for ComputeStats(b.Snapshot()).
func (b *SnapshotBuilder) Stats() Stats {
	return ComputeStats(b.snapshot)
}
