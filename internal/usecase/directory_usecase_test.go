package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xrnode/internal/domain/connection"
	"xrnode/internal/domain/matching"
)

func newDirectory(f *fixture) *DirectoryService {
	return NewDirectoryUsecase(f.profiles, f.connections, f.matcher, 3, nil, discardLogger())
}

func TestDirectory_ExcludesViewerAndSortsByScore(t *testing.T) {
	f := newFixture()
	d, err := newDirectory(f).List(context.Background(), "p003", DirectoryParams{})
	require.NoError(t, err)

	require.Len(t, d.Entries, 7)
	assert.Equal(t, DirectoryFilterAll, d.Filter)
	assert.Equal(t, DirectorySortMatch, d.Sort)
	for i, e := range d.Entries {
		assert.NotEqual(t, "p003", e.Profile.ID)
		assert.Equal(t, e.Match.Level.AuraColor(), e.AuraColor)
		if i > 0 {
			assert.GreaterOrEqual(t, d.Entries[i-1].Match.Score, e.Match.Score)
		}
	}
	assert.Equal(t, 7, d.Summary.Total)
	assert.Equal(t, 7, d.Summary.Excellent+d.Summary.Good+d.Summary.Potential)
}

func TestDirectory_FilterByTier(t *testing.T) {
	f := newFixture()
	dir := newDirectory(f)
	ctx := context.Background()

	all, err := dir.List(ctx, "p003", DirectoryParams{})
	require.NoError(t, err)

	for filter, tier := range map[string]matching.Tier{
		"excellent": matching.TierExcellent,
		"good":      matching.TierGood,
		"low":       matching.TierPotential,
	} {
		d, err := dir.List(ctx, "p003", DirectoryParams{Filter: filter})
		require.NoError(t, err)
		want := 0
		for _, e := range all.Entries {
			if e.Match.Level == tier {
				want++
			}
		}
		assert.Len(t, d.Entries, want, filter)
		for _, e := range d.Entries {
			assert.Equal(t, tier, e.Match.Level)
		}
		assert.Equal(t, all.Summary, d.Summary)
	}
}

func TestDirectory_SortByNameAndCompany(t *testing.T) {
	f := newFixture()
	dir := newDirectory(f)
	ctx := context.Background()

	d, err := dir.List(ctx, "p003", DirectoryParams{Sort: "name"})
	require.NoError(t, err)
	names := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		names = append(names, e.Profile.Name)
	}
	assert.Equal(t, []string{
		"Alex Kim", "Deepak Sharma", "Jordan Taylor", "Marcus Johnson",
		"Sabina Chen", "Serena Williams", "Vong Patel",
	}, names)

	d, err = dir.List(ctx, "p003", DirectoryParams{Sort: "company"})
	require.NoError(t, err)
	assert.Equal(t, "AI Labs", d.Entries[0].Profile.Company)
	assert.Equal(t, "TechVentures", d.Entries[len(d.Entries)-1].Profile.Company)
}

func TestDirectory_QueryAndConnectedFlag(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	target, _ := f.profiles.GetByID(ctx, "p004")
	_, _, err := f.connections.Upsert(ctx, connection.New("p003", target, 40, time.Now()))
	require.NoError(t, err)

	d, err := newDirectory(f).List(ctx, "p003", DirectoryParams{Query: "alex"})
	require.NoError(t, err)
	require.Len(t, d.Entries, 1)
	assert.Equal(t, "p004", d.Entries[0].Profile.ID)
	assert.True(t, d.Entries[0].Connected)
	assert.Equal(t, 1, d.Summary.Total)
}

func TestDirectory_InvalidParams(t *testing.T) {
	f := newFixture()
	dir := newDirectory(f)
	ctx := context.Background()

	_, err := dir.List(ctx, "p003", DirectoryParams{Filter: "great"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = dir.List(ctx, "p003", DirectoryParams{Sort: "age"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = dir.List(ctx, "p404", DirectoryParams{})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestDirectory_ConcurrentCallersGetIndependentSlices(t *testing.T) {
	f := newFixture()
	dir := newDirectory(f)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]Directory, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := dir.List(ctx, "p003", DirectoryParams{Sort: "name"})
			assert.NoError(t, err)
			results[i] = d
		}()
	}
	wg.Wait()

	results[0].Entries[0].Label = "mutated"
	for _, r := range results[1:] {
		require.Len(t, r.Entries, 7)
		assert.NotEqual(t, "mutated", r.Entries[0].Label)
	}
}
