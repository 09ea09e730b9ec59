package projection

import (
	"testing"

	"github.com/encryptedtouhid/SmartZone/model"
)

func TestTopZonesByDemand_TiesKeepOriginalOrder(t *testing.T) {
	zones := []model.Zone{
		{ZoneID: "A", DemandLevel: 3},
		{ZoneID: "B", DemandLevel: 9},
		{ZoneID: "C", DemandLevel: 9},
	}

	top := TopZonesByDemand(zones, 2)

	if len(top) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(top))
	}
	// B and C tie on demand; B was first in the snapshot so it stays first.
	if top[0].ZoneID != "B" || top[1].ZoneID != "C" {
		t.Errorf("expected [B C], got [%s %s]", top[0].ZoneID, top[1].ZoneID)
	}
	t.Logf("✓ top-N is stable on ties")
}

func TestTopNBy_DoesNotMutateInput(t *testing.T) {
	zones := []model.Zone{
		{ZoneID: "A", DemandLevel: 1},
		{ZoneID: "B", DemandLevel: 5},
	}
	_ = TopZonesByDemand(zones, 1)

	if zones[0].ZoneID != "A" {
		t.Error("input snapshot must not be reordered")
	}
}

func TestTopNBy_NSmallerThanZeroOrLargerThanInput(t *testing.T) {
	zones := []model.Zone{{ZoneID: "A", DemandLevel: 1}}
	if got := TopZonesByDemand(zones, 10); len(got) != 1 {
		t.Errorf("n beyond input length returns everything, got %d", len(got))
	}
	if got := TopZonesByDemand(zones, -1); len(got) != 0 {
		t.Errorf("negative n returns nothing, got %d", len(got))
	}
}

func TestActiveRequests_FiltersTerminalStatuses(t *testing.T) {
	requests := []model.RideRequest{
		{ID: "r1", Status: model.RequestPending},
		{ID: "r2", Status: model.RequestCompleted},
		{ID: "r3", Status: model.RequestAccepted},
		{ID: "r4", Status: model.RequestCancelled},
		{ID: "r5", Status: model.RequestInProgress},
	}

	active := ActiveRequests(requests)

	want := []string{"r1", "r3", "r5"}
	if len(active) != len(want) {
		t.Fatalf("expected %d active requests, got %d", len(want), len(active))
	}
	for i, id := range want {
		if active[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, active[i].ID)
		}
	}
	t.Logf("✓ terminal requests hidden, relative order kept")
}

func TestPendingFirst_StablePartitions(t *testing.T) {
	requests := []model.RideRequest{
		{ID: "r1", Status: model.RequestAccepted},
		{ID: "r2", Status: model.RequestPending},
		{ID: "r3", Status: model.RequestInProgress},
		{ID: "r4", Status: model.RequestPending},
	}

	ordered := PendingFirst(requests)

	want := []string{"r2", "r4", "r1", "r3"}
	for i, id := range want {
		if ordered[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, ordered[i].ID)
		}
	}
	t.Logf("✓ priority partition preserves order within each side")
}

func TestRecentRequests_OrdersByCreatedAtDesc(t *testing.T) {
	requests := []model.RideRequest{
		{ID: "old", CreatedAt: "2026-08-30T10:00:00Z"},
		{ID: "newest", CreatedAt: "2026-08-30T12:00:00Z"},
		{ID: "mid", CreatedAt: "2026-08-30T11:00:00Z"},
	}

	recent := RecentRequests(requests, 2)

	if len(recent) != 2 {
		t.Fatalf("expected 2, got %d", len(recent))
	}
	if recent[0].ID != "newest" || recent[1].ID != "mid" {
		t.Errorf("expected [newest mid], got [%s %s]", recent[0].ID, recent[1].ID)
	}
}

func TestRecentRequests_NaiveTimestampsParse(t *testing.T) {
	// The service emits datetime.utcnow().isoformat(): no zone suffix.
	requests := []model.RideRequest{
		{ID: "a", CreatedAt: "2026-08-30T10:00:00.123456"},
		{ID: "b", CreatedAt: "2026-08-30T11:00:00.500000"},
	}

	recent := RecentRequests(requests, 10)
	if recent[0].ID != "b" {
		t.Errorf("expected b first, got %s", recent[0].ID)
	}
	t.Logf("✓ zone-less service timestamps order correctly")
}

func TestRecentN_UnparseableTimestampsSortLast(t *testing.T) {
	requests := []model.RideRequest{
		{ID: "bad1", CreatedAt: "not-a-time"},
		{ID: "good", CreatedAt: "2026-08-30T10:00:00Z"},
		{ID: "bad2", CreatedAt: ""},
	}

	recent := RecentRequests(requests, 3)
	if recent[0].ID != "good" {
		t.Fatalf("parseable timestamps first, got %s", recent[0].ID)
	}
	if recent[1].ID != "bad1" || recent[2].ID != "bad2" {
		t.Errorf("unparseable entries keep original order, got [%s %s]", recent[1].ID, recent[2].ID)
	}
}

func TestSurgeZones(t *testing.T) {
	zones := []model.Zone{
		{ZoneID: "a", IsSurge: true},
		{ZoneID: "b"},
		{ZoneID: "c", IsSurge: true},
	}
	surge := SurgeZones(zones)
	if len(surge) != 2 || surge[0].ZoneID != "a" || surge[1].ZoneID != "c" {
		t.Errorf("unexpected surge set: %+v", surge)
	}
}

func TestAvailableDrivers(t *testing.T) {
	drivers := []model.Driver{
		{ID: "d1", Status: model.DriverAvailable},
		{ID: "d2", Status: model.DriverBusy},
		{ID: "d3", Status: model.DriverOffline},
	}
	avail := AvailableDrivers(drivers)
	if len(avail) != 1 || avail[0].ID != "d1" {
		t.Errorf("unexpected available set: %+v", avail)
	}
}

func TestProjection_DeterministicForSameInput(t *testing.T) {
	zones := []model.Zone{
		{ZoneID: "A", DemandLevel: 4},
		{ZoneID: "B", DemandLevel: 4},
		{ZoneID: "C", DemandLevel: 7},
	}
	first := TopZonesByDemand(zones, 3)
	second := TopZonesByDemand(zones, 3)
	for i := range first {
		if first[i].ZoneID != second[i].ZoneID {
			t.Fatalf("projection must be deterministic, diverged at %d", i)
		}
	}
	t.Logf("✓ identical store state yields identical projection")
}
