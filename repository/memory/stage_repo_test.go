package memory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

func newSeededStages(t *testing.T, opts ...StageOption) repository.StageRepository {
	t.Helper()
	seq := 0
	base := []StageOption{
		WithStages(domain.DefaultStages()),
		WithColorPicker(func() string { return "red" }),
		WithStageIDs(func() string {
			seq++
			return fmt.Sprintf("stage-%d", seq)
		}),
	}
	return NewStageRepository(append(base, opts...)...)
}

func stageIDs(t *testing.T, repo repository.StageRepository) []string {
	t.Helper()
	stages, err := repo.List(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(stages))
	for _, s := range stages {
		ids = append(ids, s.ID)
	}
	return ids
}

func assertDenseOrder(t *testing.T, repo repository.StageRepository) {
	t.Helper()
	stages, err := repo.List(context.Background())
	require.NoError(t, err)
	for i, s := range stages {
		assert.Equal(t, i+1, s.Order, "stage %s", s.ID)
	}
}

func TestStageRepositoryCreateAppends(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStages(t)

	stage, err := repo.Create(ctx, "  Negotiation  ")
	require.NoError(t, err)
	assert.Equal(t, domain.Stage{ID: "stage-1", Title: "Negotiation", Order: 5, Color: "red"}, *stage)
	assert.Equal(t, []string{"new", "contacted", "proposal", "closed", "stage-1"}, stageIDs(t, repo))
	assertDenseOrder(t, repo)
}

func TestStageRepositoryCreateRejectsEmptyTitle(t *testing.T) {
	repo := newSeededStages(t)

	_, err := repo.Create(context.Background(), "   ")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
	assert.Len(t, stageIDs(t, repo), 4)
}

func TestStageRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStages(t)

	title := "Qualified"
	updated, err := repo.Update(ctx, "contacted", domain.StagePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Qualified", updated.Title)
	assert.Equal(t, 2, updated.Order)

	empty := ""
	_, err = repo.Update(ctx, "contacted", domain.StagePatch{Title: &empty})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	stored, err := repo.GetByID(ctx, "contacted")
	require.NoError(t, err)
	assert.Equal(t, "Qualified", stored.Title)

	_, err = repo.Update(ctx, "missing", domain.StagePatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrStageNotFound)
}

func TestStageRepositoryDeleteRenumbers(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStages(t)

	require.NoError(t, repo.Delete(ctx, "contacted"))
	assert.Equal(t, []string{"new", "proposal", "closed"}, stageIDs(t, repo))
	assertDenseOrder(t, repo)

	assert.ErrorIs(t, repo.Delete(ctx, "contacted"), domain.ErrStageNotFound)
}

func TestStageRepositoryDeleteGuard(t *testing.T) {
	ctx := context.Background()
	referenced := map[string]bool{"proposal": true}
	repo := newSeededStages(t, WithDeleteGuard(func(ctx context.Context, id string) (bool, error) {
		return referenced[id], nil
	}))

	err := repo.Delete(ctx, "proposal")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodePrecondition))
	assert.Len(t, stageIDs(t, repo), 4)

	require.NoError(t, repo.Delete(ctx, "new"))
	assert.Equal(t, []string{"contacted", "proposal", "closed"}, stageIDs(t, repo))
}

func TestStageRepositoryDeleteGuardFailure(t *testing.T) {
	repo := newSeededStages(t, WithDeleteGuard(func(ctx context.Context, id string) (bool, error) {
		return false, errors.New("boom")
	}))

	err := repo.Delete(context.Background(), "new")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInternal))
	assert.Len(t, stageIDs(t, repo), 4)
}

func TestStageRepositoryReorder(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStages(t)

	moved, err := repo.Reorder(ctx, 0, domain.TowardEnd)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"contacted", "new", "proposal", "closed"}, stageIDs(t, repo))
	assertDenseOrder(t, repo)

	moved, err = repo.Reorder(ctx, 2, domain.TowardStart)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"contacted", "proposal", "new", "closed"}, stageIDs(t, repo))
}

func TestStageRepositoryReorderBoundaryIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStages(t)
	before, err := repo.List(ctx)
	require.NoError(t, err)

	cases := []struct {
		index int
		dir   domain.Direction
	}{
		{0, domain.TowardStart},
		{3, domain.TowardEnd},
		{-1, domain.TowardEnd},
		{4, domain.TowardStart},
		{42, domain.TowardEnd},
	}
	for _, c := range cases {
		moved, err := repo.Reorder(ctx, c.index, c.dir)
		require.NoError(t, err)
		assert.False(t, moved, "index %d %s", c.index, c.dir)
	}

	after, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = repo.Reorder(ctx, 1, domain.Direction("sideways"))
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
}

func TestStageRepositoryOrderStaysDense(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStages(t)
	rng := rand.New(rand.NewPCG(7, 11))

	for i := range 500 {
		stages, err := repo.List(ctx)
		require.NoError(t, err)

		switch op := rng.IntN(3); {
		case op == 0 || len(stages) == 0:
			_, err = repo.Create(ctx, fmt.Sprintf("stage %d", i))
			require.NoError(t, err)
		case op == 1:
			require.NoError(t, repo.Delete(ctx, stages[rng.IntN(len(stages))].ID))
		default:
			dir := domain.TowardStart
			if rng.IntN(2) == 0 {
				dir = domain.TowardEnd
			}
			_, err = repo.Reorder(ctx, rng.IntN(len(stages)+2)-1, dir)
			require.NoError(t, err)
		}
		assertDenseOrder(t, repo)
	}
}

func TestStageRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newSeededStages(t)

	stages, err := repo.List(ctx)
	require.NoError(t, err)
	stages[0].Title = "mutated"

	stage, err := repo.GetByID(ctx, "new")
	require.NoError(t, err)
	stage.Order = 99

	fresh, err := repo.GetByID(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "New lead", fresh.Title)
	assert.Equal(t, 1, fresh.Order)
}
