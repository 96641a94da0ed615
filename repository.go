package escrutinio

import (
	"errors"
	"log/slog"
	"strings"

	"escrutinio/internal"
)

// Repository owns the canonical in-memory snapshot of candidates, stations
// and results. Every mutator validates its input, applies the change in
// memory, then writes the whole snapshot back to the store. Persistence is
// advisory: a failing store is logged and the in-memory snapshot remains the
// source of truth for the rest of the process lifetime.
//
// The repository assumes single-threaded callers; it takes no locks.
type Repository struct {
	snapshot *Snapshot
	store    SnapshotStore
	log      *slog.Logger
}

// NewRepository returns a repository with an empty snapshot backed by store.
// Call Load to restore previously persisted state.
func NewRepository(store SnapshotStore, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		snapshot: NewSnapshot(),
		store:    store,
		log:      logger,
	}
}

// Load replaces the in-memory snapshot with the stored one. A missing,
// corrupt or unreadable store leaves the empty default in place; only the
// corrupt/unreadable case is worth a log line.
func (r *Repository) Load() {
	snap, err := r.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			r.log.Warn("could not restore snapshot, starting empty", "error", err)
		}
		return
	}
	r.snapshot = snap
}

func (r *Repository) persist() {
	if err := r.store.Save(r.snapshot); err != nil {
		r.log.Warn("snapshot not persisted", "error", err)
	}
}

// Snapshot exposes the current state for reading. Callers must not mutate it.
func (r *Repository) Snapshot() *Snapshot {
	return r.snapshot
}

func (r *Repository) Candidates() []Candidate {
	return r.snapshot.Candidates
}

func (r *Repository) Stations() []Station {
	return r.snapshot.Stations
}

// StationResult returns the tally recorded for a station, if any. A missing
// result means the station has not been processed yet.
func (r *Repository) StationResult(stationID string) (StationResult, bool) {
	result, ok := r.snapshot.Results[stationID]
	return result, ok
}

// AddCandidate registers a new candidate. The name is trimmed and must be
// non-empty and unique among candidates, compared case-insensitively.
func (r *Repository) AddCandidate(name, party string) (Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Candidate{}, errEmptyName()
	}
	if r.candidateNameTaken(name, "") {
		return Candidate{}, errDuplicateName(name)
	}
	candidate := Candidate{ID: NewID(), Name: name, Party: party}
	r.snapshot.Candidates = append(r.snapshot.Candidates, candidate)
	r.persist()
	return candidate, nil
}

// EditCandidate renames a candidate in place, keeping its id and position.
func (r *Repository) EditCandidate(id, name, party string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errEmptyName()
	}
	if r.candidateNameTaken(name, id) {
		return errDuplicateName(name)
	}
	for i := range r.snapshot.Candidates {
		if r.snapshot.Candidates[i].ID == id {
			r.snapshot.Candidates[i].Name = name
			r.snapshot.Candidates[i].Party = party
			r.persist()
			return nil
		}
	}
	return &NotFoundError{Kind: "candidate", ID: id}
}

// DeleteCandidate removes a candidate and purges its id from every recorded
// result, so its votes stop contributing to any total. Deleting an unknown
// id still runs the purge, which keeps the results clean should a stale key
// ever be reintroduced by an old stored layout.
func (r *Repository) DeleteCandidate(id string) {
	for i, candidate := range r.snapshot.Candidates {
		if candidate.ID == id {
			r.snapshot.Candidates = append(r.snapshot.Candidates[:i], r.snapshot.Candidates[i+1:]...)
			break
		}
	}
	for _, result := range r.snapshot.Results {
		delete(result.Votes, id)
	}
	r.persist()
}

// AddStation registers a new ballot station. Name validation mirrors
// AddCandidate in its own namespace. totalEligible is coerced leniently:
// anything that does not parse as a non-negative integer becomes 0.
func (r *Repository) AddStation(name, location, totalEligible string) (Station, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Station{}, errEmptyName()
	}
	if r.stationNameTaken(name, "") {
		return Station{}, errDuplicateName(name)
	}
	station := Station{
		ID:            NewID(),
		Name:          name,
		Location:      location,
		TotalEligible: internal.ParseNonNegativeInt(totalEligible),
	}
	r.snapshot.Stations = append(r.snapshot.Stations, station)
	r.persist()
	return station, nil
}

func (r *Repository) EditStation(id, name, location, totalEligible string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errEmptyName()
	}
	if r.stationNameTaken(name, id) {
		return errDuplicateName(name)
	}
	for i := range r.snapshot.Stations {
		if r.snapshot.Stations[i].ID == id {
			r.snapshot.Stations[i].Name = name
			r.snapshot.Stations[i].Location = location
			r.snapshot.Stations[i].TotalEligible = internal.ParseNonNegativeInt(totalEligible)
			r.persist()
			return nil
		}
	}
	return &NotFoundError{Kind: "anfora", ID: id}
}

// DeleteStation removes a station along with its result, if one was
// recorded. Idempotent.
func (r *Repository) DeleteStation(id string) {
	for i, station := range r.snapshot.Stations {
		if station.ID == id {
			r.snapshot.Stations = append(r.snapshot.Stations[:i], r.snapshot.Stations[i+1:]...)
			break
		}
	}
	delete(r.snapshot.Results, id)
	r.persist()
}

// SaveStationResult overwrites (or creates) the result for a station. No
// validation happens here: vote counts are expected to arrive already
// checked as non-negative integers by the caller.
func (r *Repository) SaveStationResult(stationID string, result StationResult) {
	if result.Votes == nil {
		result.Votes = make(map[string]int)
	}
	r.snapshot.Results[stationID] = result
	r.persist()
}

// ClearStationResult marks a station as not yet processed.
func (r *Repository) ClearStationResult(stationID string) {
	delete(r.snapshot.Results, stationID)
	r.persist()
}

// Reset replaces the snapshot with an empty one and clears the store.
func (r *Repository) Reset() {
	r.snapshot = NewSnapshot()
	if err := r.store.Clear(); err != nil {
		r.log.Warn("stored snapshot not cleared", "error", err)
	}
}

// Duplicate-name checks are case-insensitive but only leading and trailing
// whitespace is normalized: "Ana  Maria" and "Ana Maria" are distinct names.
func (r *Repository) candidateNameTaken(name, excludeID string) bool {
	for _, candidate := range r.snapshot.Candidates {
		if candidate.ID != excludeID && strings.EqualFold(candidate.Name, name) {
			return true
		}
	}
	return false
}

func (r *Repository) stationNameTaken(name, excludeID string) bool {
	for _, station := range r.snapshot.Stations {
		if station.ID != excludeID && strings.EqualFold(station.Name, name) {
			return true
		}
	}
	return false
}
