package store

import (
	"sync"
	"testing"

	"github.com/encryptedtouhid/SmartZone/model"
)

func driver(id, status string) model.Driver {
	return model.Driver{ID: id, Status: status}
}

func TestStore_UpsertLastWriteWins(t *testing.T) {
	s := New[model.Driver]()

	// Duplicate and repeated upserts: the final payload must equal the
	// last one applied, however many duplicates preceded it.
	s.Upsert(driver("d1", "available"))
	s.Upsert(driver("d1", "available"))
	s.Upsert(driver("d1", "busy"))
	s.Upsert(driver("d1", "busy"))

	if s.Len() != 1 {
		t.Fatalf("expected 1 entity, got %d", s.Len())
	}
	got, ok := s.Get("d1")
	if !ok {
		t.Fatal("d1 should exist")
	}
	if got.Status != "busy" {
		t.Errorf("expected last payload to win, got status %q", got.Status)
	}
	t.Logf("✓ upsert is idempotent and last-write-wins")
}

func TestStore_UpsertKeepsInsertionOrder(t *testing.T) {
	s := New[model.Driver]()
	s.Upsert(driver("a", "available"))
	s.Upsert(driver("b", "available"))
	s.Upsert(driver("c", "available"))

	// Updating an existing identity must not move it.
	s.Upsert(driver("a", "busy"))

	snap := s.Snapshot()
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if snap[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, snap[i].ID)
		}
	}
	t.Logf("✓ insertion order survives updates")
}

func TestStore_RemoveAbsentIsNoOp(t *testing.T) {
	s := New[model.Driver]()
	s.Upsert(driver("d1", "available"))

	s.Remove("nope")
	s.Remove("nope")

	if s.Len() != 1 {
		t.Errorf("expected 1 entity after removing absent key, got %d", s.Len())
	}

	s.Remove("d1")
	s.Remove("d1")
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	if _, ok := s.Get("d1"); ok {
		t.Error("d1 should be gone, no tombstone retained")
	}
	t.Logf("✓ remove is idempotent")
}

func TestStore_ReplaceAll(t *testing.T) {
	s := New[model.Zone]()
	s.Upsert(model.Zone{ZoneID: "old1"})
	s.Upsert(model.Zone{ZoneID: "old2"})

	s.ReplaceAll([]model.Zone{
		{ZoneID: "z3", DemandLevel: 3},
		{ZoneID: "z1", DemandLevel: 1},
	})

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(snap))
	}
	if snap[0].ZoneID != "z3" || snap[1].ZoneID != "z1" {
		t.Errorf("order should follow the replacement sequence, got %s,%s", snap[0].ZoneID, snap[1].ZoneID)
	}
	if _, ok := s.Get("old1"); ok {
		t.Error("entities absent from the full set must vanish")
	}
	t.Logf("✓ ReplaceAll clears then inserts in order")
}

func TestStore_ReplaceAllDuplicateKeys(t *testing.T) {
	s := New[model.Zone]()
	s.ReplaceAll([]model.Zone{
		{ZoneID: "z1", DemandLevel: 1},
		{ZoneID: "z1", DemandLevel: 9},
	})

	if s.Len() != 1 {
		t.Fatalf("expected 1 zone, got %d", s.Len())
	}
	z, _ := s.Get("z1")
	if z.DemandLevel != 9 {
		t.Errorf("later duplicate must win, got demand %d", z.DemandLevel)
	}
}

func TestStore_SnapshotIsCallersCopy(t *testing.T) {
	s := New[model.Driver]()
	s.Upsert(driver("d1", "available"))

	snap := s.Snapshot()
	s.Upsert(driver("d2", "busy"))
	s.Remove("d1")

	if len(snap) != 1 || snap[0].ID != "d1" {
		t.Error("snapshot must not observe later mutations")
	}
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := New[model.Driver]()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.ReplaceAll([]model.Driver{driver("d1", "available"), driver("d2", "busy")})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = s.Snapshot()
			s.Len()
		}
	}()
	wg.Wait()
	t.Logf("✓ writer and readers coexist")
}
