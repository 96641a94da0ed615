package escrutinio

import (
	"encoding/json"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func sampleSnapshot() *Snapshot {
	return NewSnapshotBuilder().
		Candidate("ana", "Ana", "Partido A").
		Candidate("luis", "Luis", "Partido B").
		Station("centro", "Centro", 100).
		Station("norte", "Norte", 50).
		Result("centro", map[string]int{"ana": 40, "luis": 35}, 5, 2).
		Snapshot()
}

var _ = Describe("MemoryStore", func() {

	var store *MemoryStore

	BeforeEach(func() {
		store = NewMemoryStore()
	})

	It("implements the SnapshotStore interface", func() {
		var _ = SnapshotStore(store)
	})

	It("returns ErrNoSnapshot before anything was saved", func() {
		_, err := store.Load()
		Expect(err).To(MatchError(ErrNoSnapshot))
	})

	It("round-trips a snapshot", func() {
		snapshot := sampleSnapshot()
		Expect(store.Save(snapshot)).To(Succeed())
		loaded, err := store.Load()
		Expect(err).To(Succeed())
		Expect(loaded).To(Equal(snapshot))
	})

	It("returns ErrNoSnapshot after Clear", func() {
		Expect(store.Save(sampleSnapshot())).To(Succeed())
		Expect(store.Clear()).To(Succeed())
		_, err := store.Load()
		Expect(err).To(MatchError(ErrNoSnapshot))
	})
})

var _ = Describe("BoltStore", func() {

	var dir string
	var store *BoltStore

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "escrutinio")
		Expect(err).To(Succeed())
		store, err = OpenBoltStore(filepath.Join(dir, "test.db"))
		Expect(err).To(Succeed())
	})

	AfterEach(func() {
		store.Close()
		os.RemoveAll(dir)
	})

	It("implements the SnapshotStore interface", func() {
		var _ = SnapshotStore(store)
	})

	It("returns ErrNoSnapshot for a fresh database", func() {
		_, err := store.Load()
		Expect(err).To(MatchError(ErrNoSnapshot))
	})

	It("round-trips a snapshot across reopen", func() {
		path := filepath.Join(dir, "reopen.db")
		first, err := OpenBoltStore(path)
		Expect(err).To(Succeed())

		snapshot := sampleSnapshot()
		Expect(first.Save(snapshot)).To(Succeed())
		Expect(first.Close()).To(Succeed())

		second, err := OpenBoltStore(path)
		Expect(err).To(Succeed())
		defer second.Close()

		loaded, err := second.Load()
		Expect(err).To(Succeed())
		Expect(loaded).To(Equal(snapshot))
	})

	It("returns ErrNoSnapshot after Clear", func() {
		Expect(store.Save(sampleSnapshot())).To(Succeed())
		Expect(store.Clear()).To(Succeed())
		_, err := store.Load()
		Expect(err).To(MatchError(ErrNoSnapshot))
	})
})

var _ = Describe("Snapshot wire format", func() {

	It("serializes with the historical field names", func() {
		data, err := json.Marshal(sampleSnapshot())
		Expect(err).To(Succeed())

		var raw map[string]json.RawMessage
		Expect(json.Unmarshal(data, &raw)).To(Succeed())
		Expect(raw).To(HaveKey("candidates"))
		Expect(raw).To(HaveKey("anforas"))
		Expect(raw).To(HaveKey("results"))

		var results map[string]map[string]int
		Expect(json.Unmarshal(raw["results"], &results)).To(Succeed())
		Expect(results["centro"]).To(HaveKeyWithValue("blancos", 5))
		Expect(results["centro"]).To(HaveKeyWithValue("nulos", 2))
		Expect(results["centro"]).To(HaveKeyWithValue("ana", 40))
	})

	It("loads older layouts with missing top-level keys", func() {
		snap, err := decodeSnapshot([]byte(`{"candidates":[{"id":"ana","name":"Ana","party":""}]}`))
		Expect(err).To(Succeed())
		Expect(snap.Candidates).To(HaveLen(1))
		Expect(snap.Stations).To(BeEmpty())
		Expect(snap.Results).NotTo(BeNil())
	})

	It("defaults blank and null counts missing from a stored result", func() {
		var result StationResult
		Expect(json.Unmarshal([]byte(`{"ana":12}`), &result)).To(Succeed())
		Expect(result.Votes).To(HaveKeyWithValue("ana", 12))
		Expect(result.Blank).To(Equal(0))
		Expect(result.Null).To(Equal(0))
	})
})
