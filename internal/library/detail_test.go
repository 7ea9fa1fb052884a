package library

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/dex/internal/adapter/source/pokeapi"
	"github.com/mmcdole/dex/internal/domain"
)

var bulbasaur = domain.CatalogEntry{ID: 1, Name: "bulbasaur", ImageURL: "https://sprites.test/1.png"}

func TestDetailView_loadsDetailThenEncounters(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		detail: &domain.Detail{ID: 1, Name: "bulbasaur", EncountersURL: "https://api.test/pokemon/1/encounters"},
		encounters: []domain.Encounter{
			{LocationArea: domain.NamedResource{Name: "viridian-forest"}},
		},
	}
	v := NewDetailView(repo, bulbasaur, quietLogger())
	v.Load(context.Background())

	require.NotNil(t, v.Detail())
	assert.Equal(t, "bulbasaur", v.Detail().Name)
	assert.Len(t, v.Encounters(), 1)
	assert.Equal(t, "https://api.test/pokemon/1/encounters", repo.encountersURL)
	assert.False(t, v.IsLoading())
	assert.False(t, v.IsLoadingEncounters())
	assert.Empty(t, v.ErrorMessage())
	assert.Equal(t, bulbasaur.ImageURL, v.ImageURL())

	v.Load(context.Background())
	assert.Equal(t, 1, repo.detailCalls, "second Load is a no-op")
}

func TestDetailView_detailFailureSkipsEncounters(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{detailErr: fmt.Errorf("%w: 500", domain.ErrNetwork)}
	v := NewDetailView(repo, bulbasaur, quietLogger())
	v.Load(context.Background())

	assert.Nil(t, v.Detail())
	assert.Equal(t, MessageNetwork, v.ErrorMessage())
	assert.Zero(t, repo.encountersCalls)
	assert.Empty(t, v.Encounters())
}

func TestDetailView_encounterFailureIsSilent(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		detail:        &domain.Detail{ID: 1, EncountersURL: "https://api.test/e"},
		encountersErr: fmt.Errorf("%w: bad", domain.ErrDecoding),
	}
	v := NewDetailView(repo, bulbasaur, quietLogger())
	v.Load(context.Background())

	require.NotNil(t, v.Detail())
	assert.Empty(t, v.ErrorMessage())
	assert.Empty(t, v.Encounters())
	assert.False(t, v.IsLoadingEncounters())
}

func TestDetailView_retry(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{detailErr: domain.ErrDecoding}
	v := NewDetailView(repo, bulbasaur, quietLogger())
	v.Load(context.Background())
	require.Equal(t, MessageDecoding, v.ErrorMessage())

	repo.detailErr = nil
	repo.detail = &domain.Detail{ID: 1, EncountersURL: "https://api.test/e"}
	v.Retry(context.Background())

	assert.NotNil(t, v.Detail())
	assert.Empty(t, v.ErrorMessage())
	assert.Equal(t, 2, repo.detailCalls)
}

func TestDetailView_splitAPI(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{detail: &domain.Detail{ID: 1, EncountersURL: "https://api.test/e"}}
	v := NewDetailView(repo, bulbasaur, quietLogger())

	require.True(t, v.Begin())
	assert.True(t, v.IsLoading())
	assert.False(t, v.Begin())

	res := v.FetchDetail(context.Background())
	rawURL, ok := v.ApplyDetail(res)
	require.True(t, ok)
	assert.Equal(t, "https://api.test/e", rawURL)
	assert.True(t, v.IsLoadingEncounters())

	v.ApplyEncounters(v.FetchEncounters(context.Background(), rawURL))
	assert.False(t, v.IsLoadingEncounters())
}

func TestDetailView_canceled(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{detail: &domain.Detail{ID: 1}}
	v := NewDetailView(repo, bulbasaur, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v.Load(ctx)

	assert.Nil(t, v.Detail())
	assert.Empty(t, v.ErrorMessage())
	assert.False(t, v.IsLoading())
	assert.Zero(t, repo.encountersCalls)
}

func TestDetailView_withFixtureRepository(t *testing.T) {
	t.Parallel()

	repo := pokeapi.NewFixtureRepository("", "")
	entries, err := repo.FetchCatalog(context.Background())
	require.NoError(t, err)

	v := NewDetailView(repo, entries[24], quietLogger())
	v.Load(context.Background())

	require.NotNil(t, v.Detail())
	assert.Equal(t, 25, v.Detail().ID)
	assert.Equal(t, []string{"grass"}, v.Detail().TypeNames())
	require.Len(t, v.Encounters(), 1)
	assert.Equal(t, "3-5", v.Encounters()[0].VersionDetails[0].EncounterDetails[0].LevelRange())
}
