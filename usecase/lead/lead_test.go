package lead

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/salesboard/domain"
	"github.com/fastygo/salesboard/repository"
	"github.com/fastygo/salesboard/repository/memory"
)

func newUseCase() *UseCase {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return New(
		memory.NewLeadRepository(memory.WithLeads(domain.DemoLeads())),
		memory.NewListRepository(domain.DemoLists(now)),
		nil,
	)
}

func TestSearch(t *testing.T) {
	uc := newUseCase()

	leads, err := uc.Search(context.Background(), repository.LeadFilter{Search: "studio"})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Layla Mahmoud", leads[0].Name)
}

func TestSearchRejectsInvertedRanges(t *testing.T) {
	uc := newUseCase()
	lo, hi := 100.0, 10.0

	_, err := uc.Search(context.Background(), repository.LeadFilter{MinValue: &lo, MaxValue: &hi})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	from := time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)
	_, err = uc.Search(context.Background(), repository.LeadFilter{CreatedFrom: &from, CreatedTo: &to})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestListsCountLeads(t *testing.T) {
	uc := newUseCase()

	lists, err := uc.Lists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 3)

	counts := map[string]int{}
	for _, l := range lists {
		counts[l.ID] = l.Count
	}
	assert.Equal(t, map[string]int{"1": 2, "2": 2, "3": 1}, counts)
}
