package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	mu       sync.Mutex
	created  []Fields
	updated  map[string]Fields
	pickedUp map[string]pickupWrite
	config   *Config
	failIDs  map[string]error
}

type pickupWrite struct {
	receiver   string
	signature  string
	pickedUpAt time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		updated:  make(map[string]Fields),
		pickedUp: make(map[string]pickupWrite),
		failIDs:  make(map[string]error),
	}
}

func (f *fakeStore) CreatePackage(_ context.Context, fields Fields) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, fields)
	return fmt.Sprintf("pkg-%d", len(f.created)), nil
}

func (f *fakeStore) UpdatePackage(_ context.Context, id string, fields Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated[id] = fields
	return nil
}

func (f *fakeStore) MarkPickedUp(_ context.Context, id, receiver, signature string, pickedUpAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failIDs[id]; ok {
		return err
	}
	f.pickedUp[id] = pickupWrite{receiver: receiver, signature: signature, pickedUpAt: pickedUpAt}
	return nil
}

func (f *fakeStore) ReplaceConfig(_ context.Context, cfg Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.config = &cfg
	return nil
}

var fixedNow = time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	eng := New(store, zap.NewNop()).WithClock(func() time.Time { return fixedNow })
	return eng, store
}

func pendingPkg(id, building, room, tracking string, age time.Duration) Package {
	return Package{
		ID:        id,
		Building:  building,
		Room:      room,
		Tracking:  tracking,
		Carrier:   "Kerry",
		Type:      "Box",
		Status:    StatusPending,
		CreatedAt: fixedNow.Add(-age),
	}
}

func pickedPkg(id, room, tracking string, age time.Duration) Package {
	at := fixedNow.Add(-age / 2)
	return Package{
		ID:         id,
		Room:       room,
		Tracking:   tracking,
		Status:     StatusPickedUp,
		Receiver:   "Som",
		CreatedAt:  fixedNow.Add(-age),
		PickedUpAt: &at,
	}
}

func TestIngest_SortsNewestFirstAndNormalizesTimestamps(t *testing.T) {
	eng, _ := newTestEngine(t)

	old := pendingPkg("a", "", "101", "T1", 48*time.Hour)
	newer := pendingPkg("b", "", "102", "T2", time.Hour)
	unstamped := Package{ID: "c", Room: "103", Tracking: "T3", Status: StatusPending}

	eng.Ingest([]Package{old, unstamped, newer})

	pending, err := eng.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 3)
	// The unstamped record gets the observation time, which is the newest.
	assert.Equal(t, "c", pending[0].ID)
	assert.Equal(t, fixedNow, pending[0].CreatedAt)
	assert.Equal(t, "b", pending[1].ID)
	assert.Equal(t, "a", pending[2].ID)
}

func TestIngest_IsIdempotent(t *testing.T) {
	eng, _ := newTestEngine(t)
	snapshot := []Package{
		pendingPkg("a", "A", "304", "TH123", time.Hour),
		pendingPkg("b", "B", "101", "TH456", 2*time.Hour),
		pickedPkg("c", "202", "TH789", 24*time.Hour),
	}

	eng.Ingest(snapshot)
	first, err := eng.Pending()
	require.NoError(t, err)
	firstHist, err := eng.History("")
	require.NoError(t, err)
	firstGroups, err := eng.GroupPending(AllBuildings, "")
	require.NoError(t, err)

	eng.Ingest(snapshot)
	second, err := eng.Pending()
	require.NoError(t, err)
	secondHist, err := eng.History("")
	require.NoError(t, err)
	secondGroups, err := eng.GroupPending(AllBuildings, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstHist, secondHist)
	assert.Equal(t, firstGroups, secondGroups)
}

func TestPartition_ExhaustiveAndDisjoint(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Ingest([]Package{
		pendingPkg("a", "A", "304", "T1", time.Hour),
		pickedPkg("b", "101", "T2", 24*time.Hour),
		pickedPkg("c", "102", "T3", 24*31*2*time.Hour), // beyond the window: in neither
	})

	pending, err := eng.Pending()
	require.NoError(t, err)
	history, err := eng.History("")
	require.NoError(t, err)

	ids := func(items []Package) map[string]bool {
		m := make(map[string]bool)
		for _, p := range items {
			m[p.ID] = true
		}
		return m
	}
	pendingIDs, historyIDs := ids(pending), ids(history)

	assert.True(t, pendingIDs["a"])
	assert.True(t, historyIDs["b"])
	assert.False(t, pendingIDs["c"])
	assert.False(t, historyIDs["c"])
	for id := range pendingIDs {
		assert.False(t, historyIDs[id], "id %s in both partitions", id)
	}
}

func TestHistory_CalendarMonthWindow(t *testing.T) {
	eng, _ := newTestEngine(t)

	// fixedNow is 2024-03-31; one calendar month back rolls through the
	// short February and normalizes to March 2.
	cutoff := fixedNow.AddDate(0, -1, 0)

	inside := pickedPkg("in", "101", "T1", 0)
	inside.CreatedAt = cutoff.Add(24 * time.Hour)
	outside := pickedPkg("out", "102", "T2", 0)
	outside.CreatedAt = cutoff.Add(-24 * time.Hour)

	eng.Ingest([]Package{inside, outside})

	history, err := eng.History("")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "in", history[0].ID)
}

func TestHistory_SearchFiltersRoomAndTracking(t *testing.T) {
	eng, _ := newTestEngine(t)
	a := pickedPkg("a", "304", "TH123XYZ", 24*time.Hour)
	b := pickedPkg("b", "101", "ZZZ", 24*time.Hour)
	eng.Ingest([]Package{a, b})

	byTracking, err := eng.History("th123")
	require.NoError(t, err)
	require.Len(t, byTracking, 1)
	assert.Equal(t, "a", byTracking[0].ID)

	byRoom, err := eng.History("10")
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, "b", byRoom[0].ID)
}

func TestGroupPending_BucketsAndSorts(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Ingest([]Package{
		pendingPkg("1", "A", "304", "T1", time.Hour),
		pendingPkg("2", "A", "304", "T2", 2*time.Hour),
		pendingPkg("3", "B", "101", "T3", 3*time.Hour),
	})

	groups, err := eng.GroupPending(AllBuildings, "")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "A", groups[0].Building)
	assert.Equal(t, "304", groups[0].Room)
	assert.Len(t, groups[0].Packages, 2)
	// Canonical newest-first order inside the bucket.
	assert.Equal(t, "1", groups[0].Packages[0].ID)

	assert.Equal(t, "B", groups[1].Building)
	assert.Len(t, groups[1].Packages, 1)
}

func TestGroupPending_RoomSortCaseInsensitive(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Ingest([]Package{
		pendingPkg("1", "A", "b2", "T1", time.Hour),
		pendingPkg("2", "A", "A1", "T2", 2*time.Hour),
		pendingPkg("3", "", "Z9", "T3", 3*time.Hour),
	})

	groups, err := eng.GroupPending(AllBuildings, "")
	require.NoError(t, err)
	require.Len(t, groups, 3)
	// The empty building sorts first; rooms compare case-insensitively.
	assert.Equal(t, "", groups[0].Building)
	assert.Equal(t, "A1", groups[1].Room)
	assert.Equal(t, "b2", groups[2].Room)
}

func TestGroupPending_BuildingFilterAndSearch(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Ingest([]Package{
		pendingPkg("1", "A", "304", "TH123XYZ", time.Hour),
		pendingPkg("2", "B", "304", "T2", 2*time.Hour),
	})

	tests := []struct {
		name     string
		building string
		term     string
		wantIDs  []string
	}{
		{name: "all buildings", building: AllBuildings, term: "", wantIDs: []string{"1", "2"}},
		{name: "single building", building: "A", term: "", wantIDs: []string{"1"}},
		{name: "lowercase tracking term", building: AllBuildings, term: "th123", wantIDs: []string{"1"}},
		{name: "term misses everything", building: AllBuildings, term: "nope", wantIDs: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			groups, err := eng.GroupPending(tc.building, tc.term)
			require.NoError(t, err)
			var got []string
			for _, g := range groups {
				for _, p := range g.Packages {
					got = append(got, p.ID)
				}
			}
			assert.ElementsMatch(t, tc.wantIDs, got)
		})
	}
}

func TestFindByBuildingAndRoom_ExactButForgiving(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Ingest([]Package{pendingPkg("1", "B", "A1", "T1", time.Hour)})

	found, err := eng.FindByBuildingAndRoom("B", " a1 ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0].ID)

	miss, err := eng.FindByBuildingAndRoom("B", "A1X")
	require.NoError(t, err)
	assert.Empty(t, miss)

	wrongBuilding, err := eng.FindByBuildingAndRoom("C", "A1")
	require.NoError(t, err)
	assert.Empty(t, wrongBuilding)
}

func TestReceive_RequiresProof(t *testing.T) {
	eng, store := newTestEngine(t)
	eng.Ingest([]Package{pendingPkg("a", "A", "304", "T1", time.Hour)})

	_, err := eng.Receive(context.Background(), []string{"a"}, "", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, store.pickedUp)

	pending, err := eng.Pending()
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestReceive_RequiresTargets(t *testing.T) {
	eng, store := newTestEngine(t)
	eng.Ingest([]Package{pickedPkg("done", "101", "T1", time.Hour)})

	tests := []struct {
		name    string
		targets []string
	}{
		{name: "empty set", targets: nil},
		{name: "unknown ids", targets: []string{"ghost"}},
		{name: "already picked up", targets: []string{"done"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.Receive(context.Background(), tc.targets, "Som", "")
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
	assert.Empty(t, store.pickedUp)
}

func TestReceive_BatchAppliesOneSigningEvent(t *testing.T) {
	eng, store := newTestEngine(t)
	eng.Ingest([]Package{
		pendingPkg("A", "A", "304", "T1", time.Hour),
		pendingPkg("B", "A", "304", "T2", 2*time.Hour),
		pendingPkg("C", "A", "304", "T3", 3*time.Hour),
	})

	count, err := eng.Receive(context.Background(), []string{"A", "B", "C"}, "Som", "")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.Len(t, store.pickedUp, 3)
	for _, id := range []string{"A", "B", "C"} {
		w := store.pickedUp[id]
		assert.Equal(t, "Som", w.receiver)
		assert.Equal(t, fixedNow.UTC(), w.pickedUpAt)
	}

	pending, err := eng.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	history, err := eng.History("")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, p := range history {
		assert.Equal(t, StatusPickedUp, p.Status)
		assert.Equal(t, "Som", p.Receiver)
		require.NotNil(t, p.PickedUpAt)
		assert.Equal(t, fixedNow.UTC(), *p.PickedUpAt)
	}
}

func TestReceive_DropsInvalidTargetsFromBatch(t *testing.T) {
	eng, store := newTestEngine(t)
	eng.Ingest([]Package{
		pendingPkg("a", "A", "304", "T1", time.Hour),
		pickedPkg("b", "101", "T2", time.Hour),
	})

	count, err := eng.Receive(context.Background(), []string{"a", "b", "ghost", "a"}, "", "data:image/png;base64,sig")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, store.pickedUp, "a")
	assert.NotContains(t, store.pickedUp, "b")
}

func TestReceive_PartialFailureSurfacesError(t *testing.T) {
	eng, store := newTestEngine(t)
	store.failIDs["B"] = errors.New("write refused")
	eng.Ingest([]Package{
		pendingPkg("A", "A", "304", "T1", time.Hour),
		pendingPkg("B", "A", "304", "T2", 2*time.Hour),
	})

	_, err := eng.Receive(context.Background(), []string{"A", "B"}, "Som", "")
	require.Error(t, err)
	assert.False(t, IsValidation(err))

	// No local rollback and no local apply: the snapshot stays last-known-good.
	pending, err := eng.Pending()
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestCreatePackage_Validation(t *testing.T) {
	eng, store := newTestEngine(t)

	tests := []struct {
		name   string
		fields Fields
	}{
		{name: "missing room", fields: Fields{Room: "", Tracking: "X"}},
		{name: "missing tracking", fields: Fields{Room: "1", Tracking: ""}},
		{name: "whitespace room", fields: Fields{Room: "   ", Tracking: "X"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := eng.CreatePackage(context.Background(), tc.fields)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
	assert.Empty(t, store.created)
}

func TestCreatePackage_ForcesPendingStatus(t *testing.T) {
	eng, store := newTestEngine(t)

	id, err := eng.CreatePackage(context.Background(), Fields{
		Building: "A",
		Room:     "304",
		Tracking: "TH123",
		Status:   StatusPickedUp, // must be ignored
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, store.created, 1)
	assert.Equal(t, StatusPending, store.created[0].Status)
}

func TestUpdatePackage_FullOverwrite(t *testing.T) {
	eng, store := newTestEngine(t)
	eng.Ingest([]Package{pendingPkg("a", "A", "304", "T1", time.Hour)})

	err := eng.UpdatePackage(context.Background(), "a", Fields{
		Room:     "305",
		Tracking: "T1",
	})
	require.NoError(t, err)

	got := store.updated["a"]
	assert.Equal(t, "305", got.Room)
	// Fields not supplied are written as empty, not left over.
	assert.Equal(t, "", got.Building)
	assert.Equal(t, "", got.Sender)
	assert.Equal(t, StatusPending, got.Status)
}

func TestUpdatePackage_StatusOverride(t *testing.T) {
	eng, store := newTestEngine(t)
	eng.Ingest([]Package{pickedPkg("a", "304", "T1", time.Hour)})

	err := eng.UpdatePackage(context.Background(), "a", Fields{
		Room:     "304",
		Tracking: "T1",
		Status:   StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, store.updated["a"].Status)

	err = eng.UpdatePackage(context.Background(), "a", Fields{Room: "304", Tracking: "T1", Status: "lost"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTaxonomy_AddRemoveRoundTrip(t *testing.T) {
	eng, store := newTestEngine(t)
	original, err := eng.Config()
	require.NoError(t, err)

	require.NoError(t, eng.AddTaxonomyItem(context.Background(), ListCarriers, "DHL"))
	cfg, err := eng.Config()
	require.NoError(t, err)
	assert.Contains(t, cfg.Carriers, "DHL")
	require.NotNil(t, store.config)

	require.NoError(t, eng.RemoveTaxonomyItem(context.Background(), ListCarriers, "DHL"))
	cfg, err = eng.Config()
	require.NoError(t, err)
	assert.Equal(t, original.Carriers, cfg.Carriers)
}

func TestTaxonomy_Validation(t *testing.T) {
	eng, _ := newTestEngine(t)

	err := eng.AddTaxonomyItem(context.Background(), ListCarriers, "   ")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	err = eng.AddTaxonomyItem(context.Background(), "colors", "Blue")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestBuildings_AddRemove(t *testing.T) {
	eng, _ := newTestEngine(t)

	require.NoError(t, eng.AddBuilding(context.Background(), "A", "Blue"))
	cfg, err := eng.Config()
	require.NoError(t, err)
	require.Len(t, cfg.Buildings, 1)
	assert.Equal(t, Building{Name: "A", Color: "Blue"}, cfg.Buildings[0])

	err = eng.AddBuilding(context.Background(), "B", "Chartreuse")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	require.NoError(t, eng.RemoveBuilding(context.Background(), "A"))
	cfg, err = eng.Config()
	require.NoError(t, err)
	assert.Empty(t, cfg.Buildings)
}

func TestFail_LatchesEverything(t *testing.T) {
	eng, _ := newTestEngine(t)
	eng.Ingest([]Package{pendingPkg("a", "A", "304", "T1", time.Hour)})
	eng.Fail(errors.New("permission denied"))

	_, err := eng.Pending()
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = eng.History("")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = eng.GroupPending(AllBuildings, "")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = eng.Receive(context.Background(), []string{"a"}, "Som", "")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = eng.CreatePackage(context.Background(), Fields{Room: "1", Tracking: "X"})
	assert.ErrorIs(t, err, ErrUnavailable)
}
