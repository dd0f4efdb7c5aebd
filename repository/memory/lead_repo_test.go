package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
)

var fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func newLeadRepo(t *testing.T, opts ...LeadOption) repository.LeadRepository {
	t.Helper()
	seq := 0
	base := []LeadOption{
		WithClock(func() time.Time { return fixedNow }),
		WithLeadIDs(func() string {
			seq++
			return fmt.Sprintf("lead-%d", seq)
		}),
	}
	return NewLeadRepository(append(base, opts...)...)
}

func TestLeadRepositoryCreatePrepends(t *testing.T) {
	ctx := context.Background()
	repo := newLeadRepo(t)

	first, err := repo.Create(ctx, &domain.Lead{ID: "ignored", Name: "A", Company: "Acme", Value: 10, StageID: "new"})
	require.NoError(t, err)
	assert.Equal(t, "lead-1", first.ID)
	assert.Equal(t, fixedNow, first.CreatedAt)

	_, err = repo.Create(ctx, &domain.Lead{Name: "B", Company: "Beta", Value: 20, StageID: "new"})
	require.NoError(t, err)

	leads, err := repo.List(ctx, repository.LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "lead-2", leads[0].ID)
	assert.Equal(t, "lead-1", leads[1].ID)
}

func TestLeadRepositoryCreateValidates(t *testing.T) {
	repo := newLeadRepo(t)

	_, err := repo.Create(context.Background(), &domain.Lead{Name: "A", StageID: "new"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = repo.Create(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	leads, err := repo.List(context.Background(), repository.LeadFilter{})
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestLeadRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newLeadRepo(t, WithLeads(domain.DemoLeads()))

	stage := "closed"
	updated, err := repo.Update(ctx, "1", domain.LeadPatch{StageID: &stage})
	require.NoError(t, err)
	assert.Equal(t, "closed", updated.StageID)
	assert.Equal(t, "Sarah Ahmed", updated.Name)

	original, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC), original.CreatedAt)

	blank := ""
	_, err = repo.Update(ctx, "1", domain.LeadPatch{Company: &blank})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = repo.Update(ctx, "404", domain.LeadPatch{StageID: &stage})
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
}

func TestLeadRepositoryCountByStage(t *testing.T) {
	repo := newLeadRepo(t, WithLeads(domain.DemoLeads()))

	count, err := repo.CountByStage(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountByStage(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLeadRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	repo := newLeadRepo(t, WithLeads(domain.DemoLeads()))
	value := func(v float64) *float64 { return &v }
	day := func(d int) *time.Time {
		t := time.Date(2023, time.October, d, 15, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name   string
		filter repository.LeadFilter
		want   []string
	}{
		{name: "all", filter: repository.LeadFilter{}, want: []string{"5", "3", "2", "1", "4"}},
		{name: "search by company", filter: repository.LeadFilter{Search: "TECH"}, want: []string{"1"}},
		{name: "search by name", filter: repository.LeadFilter{Search: "omar"}, want: []string{"4"}},
		{name: "stage", filter: repository.LeadFilter{StageID: "new"}, want: []string{"5", "1"}},
		{name: "list", filter: repository.LeadFilter{ListID: "2"}, want: []string{"3", "4"}},
		{name: "value range", filter: repository.LeadFilter{MinValue: value(8200), MaxValue: value(45000)}, want: []string{"3", "2", "1"}},
		{name: "date range inclusive", filter: repository.LeadFilter{CreatedFrom: day(2), CreatedTo: day(3)}, want: []string{"3", "2"}},
		{name: "window", filter: repository.LeadFilter{Offset: 1, Limit: 2}, want: []string{"3", "2"}},
		{name: "offset past end", filter: repository.LeadFilter{Offset: 10}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leads, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(leads))
			for _, l := range leads {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListRepository(t *testing.T) {
	repo := NewListRepository(domain.DemoLists(fixedNow))

	lists, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, lists, 3)

	list, err := repo.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Website signups", list.Title)

	_, err = repo.GetByID(context.Background(), "9")
	assert.ErrorIs(t, err, domain.ErrListNotFound)
}
