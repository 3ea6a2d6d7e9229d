/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"

	storeerrors "github.com/suparena/modelrepo/errors"
	"github.com/suparena/modelrepo/repository"
	"github.com/suparena/modelrepo/repository/testmodels"
)

func seed(t *testing.T, repo *Repository[testmodels.Player], players ...map[string]any) []*testmodels.Player {
	t.Helper()
	out := make([]*testmodels.Player, 0, len(players))
	for _, data := range players {
		p, err := repo.Create(context.Background(), data)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestCreateGeneratesID(t *testing.T) {
	repo := New[testmodels.Player]()

	p, err := repo.Create(context.Background(), map[string]any{"name": "Alice", "value": 100})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID, "created model should have a generated id")
	require.Equal(t, "Alice", p.Name)
	require.Equal(t, 100, p.Value)
}

func TestCreateKeepsExistingID(t *testing.T) {
	repo := New[testmodels.Player]()

	p, err := repo.Create(context.Background(), map[string]any{"id": "existing", "name": "Bob"})
	require.NoError(t, err)
	require.Equal(t, "existing", p.ID)

	found, err := repo.GetByID(context.Background(), "existing")
	require.NoError(t, err)
	require.Equal(t, p, found)
}

func TestRoundTrip(t *testing.T) {
	repo := New[testmodels.Player]()

	created, err := repo.Create(context.Background(), map[string]any{"name": "Alice", "value": 100})
	require.NoError(t, err)

	found, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, found)
}

func TestGetByIDAbsent(t *testing.T) {
	repo := New[testmodels.Player]()

	found, err := repo.GetByID(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestIsolationBetweenInstances(t *testing.T) {
	a := New[testmodels.Player]()
	b := New[testmodels.Player]()

	created := seed(t, a, map[string]any{"id": "1", "name": "Alice"})[0]

	found, err := b.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Nil(t, found, "independent repositories must not share storage")

	n, err := b.Count(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestFindOne(t *testing.T) {
	repo := New[testmodels.Player]()
	seed(t, repo,
		map[string]any{"id": "1", "name": "Alice", "value": 100},
		map[string]any{"id": "2", "name": "Bob", "value": 200},
	)

	found, err := repo.FindOne(context.Background(), repository.Predicate{"name": "Bob"})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, "2", found.ID)

	missing, err := repo.FindOne(context.Background(), repository.Predicate{"name": "David"})
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestFindOneUnknownAttribute(t *testing.T) {
	repo := New[testmodels.Player]()
	seed(t, repo, map[string]any{"id": "1", "name": "Alice"})

	// An attribute the model does not expose never matches and never errors.
	found, err := repo.FindOne(context.Background(), repository.Predicate{"nonexistent": "x"})
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestFindAllPredicateConjunction(t *testing.T) {
	repo := New[testmodels.Player]()
	seed(t, repo,
		map[string]any{"id": "1", "name": "Alice", "value": 100},
		map[string]any{"id": "2", "name": "Alice", "value": 200},
		map[string]any{"id": "3", "name": "Bob", "value": 100},
	)

	results, err := repo.FindAll(context.Background(), repository.Predicate{"name": "Alice", "value": 100}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "1", results[0].ID)
}

func TestFindAllPagination(t *testing.T) {
	repo := New[testmodels.Player]()
	for i := 0; i < 5; i++ {
		seed(t, repo, map[string]any{"name": "p"})
	}

	cases := []struct {
		skip, limit int64
		want        int
	}{
		{0, 5, 5},
		{0, 2, 2},
		{2, 2, 2},
		{4, 2, 1},
		{5, 2, 0},
		{7, 2, 0},
	}
	for _, tc := range cases {
		results, err := repo.FindAll(context.Background(), nil, &repository.FindOptions{
			Skip:  aws.Int64(tc.skip),
			Limit: aws.Int64(tc.limit),
		})
		require.NoError(t, err)
		require.Len(t, results, tc.want, "skip=%d limit=%d", tc.skip, tc.limit)
	}
}

func TestFindAllNegativeLimit(t *testing.T) {
	repo := New[testmodels.Player]()
	for i := 0; i < 3; i++ {
		seed(t, repo, map[string]any{"name": "p"})
	}

	// A negative limit means unbounded, same as SQLite's LIMIT -1.
	results, err := repo.FindAll(context.Background(), nil, &repository.FindOptions{
		Limit: aws.Int64(-1),
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	results, err = repo.FindAll(context.Background(), nil, &repository.FindOptions{
		Skip:  aws.Int64(1),
		Limit: aws.Int64(-5),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestFindAllNoPredicate(t *testing.T) {
	repo := New[testmodels.Player]()
	seed(t, repo,
		map[string]any{"id": "1", "name": "Alice"},
		map[string]any{"id": "2", "name": "Bob"},
	)

	results, err := repo.FindAll(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestUpdatePartial(t *testing.T) {
	repo := New[testmodels.Player]()
	seed(t, repo, map[string]any{"id": "1", "name": "Alice", "email": "alice@example.com", "value": 100})

	updated, err := repo.Update(context.Background(), "1", map[string]any{"value": 999})
	require.NoError(t, err)
	require.Equal(t, 999, updated.Value)
	require.Equal(t, "Alice", updated.Name, "unmentioned fields must survive a partial update")
	require.Equal(t, "alice@example.com", updated.Email)
}

func TestUpdateMissingIDFails(t *testing.T) {
	repo := New[testmodels.Player]()

	updated, err := repo.Update(context.Background(), "absent", map[string]any{"value": 1})
	require.Nil(t, updated)
	require.Error(t, err)
	require.True(t, storeerrors.IsNotFound(err), "in-memory update on a missing id must fail, not return absent")
}

func TestDeleteMissingIDFails(t *testing.T) {
	repo := New[testmodels.Player]()

	ok, err := repo.Delete(context.Background(), "absent")
	require.False(t, ok)
	require.Error(t, err)
	require.True(t, storeerrors.IsNotFound(err))
}

func TestCount(t *testing.T) {
	repo := New[testmodels.Player]()
	seed(t, repo,
		map[string]any{"id": "1", "name": "Alice"},
		map[string]any{"id": "2", "name": "Alice"},
		map[string]any{"id": "3", "name": "Bob"},
	)

	n, err := repo.Count(context.Background(), repository.Predicate{"name": "Alice"})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	n, err = repo.Count(context.Background(), nil)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestClear(t *testing.T) {
	repo := New[testmodels.Player]()
	seed(t, repo, map[string]any{"id": "1", "name": "Alice"})

	repo.Clear()

	n, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestLifecycleScenario(t *testing.T) {
	repo := New[testmodels.Player]()
	ctx := context.Background()

	created, err := repo.Create(ctx, map[string]any{"name": "Alice", "value": 100})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.FindOne(ctx, repository.Predicate{"name": "Alice"})
	require.NoError(t, err)
	require.Equal(t, created, found)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	gone, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}
