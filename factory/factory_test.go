/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	storeerrors "github.com/suparena/modelrepo/errors"
	"github.com/suparena/modelrepo/repository/memory"
	"github.com/suparena/modelrepo/repository/sqlite"
	"github.com/suparena/modelrepo/repository/testmodels"
)

func TestResolveMemoryBackend(t *testing.T) {
	p, err := New("modelrepo/repository/memory.Repository", nil)
	require.NoError(t, err)
	require.Equal(t, Memory, p.Backend())

	repo, err := NewRepository[testmodels.Player](p)
	require.NoError(t, err)
	require.IsType(t, &memory.Repository[testmodels.Player]{}, repo)
}

func TestFromConfigStripsResolutionKey(t *testing.T) {
	p, err := FromConfig(map[string]any{
		"class_path": "memory.Repository",
		"x":          1,
	})
	require.NoError(t, err)

	settings := p.Settings()
	require.NotContains(t, settings, "class_path", "resolution key must never reach backend settings")
	require.Equal(t, 1, settings["x"])
}

func TestFromConfigSQLite(t *testing.T) {
	p, err := FromConfig(map[string]any{
		"class_path":        "modelrepo/repository/sqlite.Repository",
		"connection_string": filepath.Join(t.TempDir(), "factory.db"),
	})
	require.NoError(t, err)
	require.Equal(t, SQLite, p.Backend())

	repo, err := NewRepository[testmodels.Account](p)
	require.NoError(t, err)
	require.IsType(t, &sqlite.Repository[testmodels.Account]{}, repo)

	created, err := repo.Create(context.Background(), map[string]any{"name": "Alice", "email": "f@example.com"})
	require.NoError(t, err)
	require.NotNil(t, created)
}

func TestLateModelBinding(t *testing.T) {
	// One provider serves any model type; the type is bound per call.
	p, err := New("memory.Repository", map[string]any{"x": 1})
	require.NoError(t, err)

	players, err := NewRepository[testmodels.Player](p)
	require.NoError(t, err)
	accounts, err := NewRepository[testmodels.Account](p)
	require.NoError(t, err)
	require.NotNil(t, players)
	require.NotNil(t, accounts)
}

func TestUnknownBackendFails(t *testing.T) {
	_, err := New("nosuch.Backend", nil)
	require.Error(t, err)
	require.True(t, storeerrors.IsUnknownBackend(err))
}

func TestMalformedClassPathFails(t *testing.T) {
	_, err := New("notdotted", nil)
	require.Error(t, err)

	_, err = New("", nil)
	require.Error(t, err)
}

func TestFromConfigMissingClassPathFails(t *testing.T) {
	_, err := FromConfig(map[string]any{"connection_string": "x"})
	require.Error(t, err)

	_, err = FromConfig(map[string]any{"class_path": 42})
	require.Error(t, err)
}

func TestMissingRequiredSettingFails(t *testing.T) {
	p, err := New("sqlite.Repository", nil)
	require.NoError(t, err)

	_, err = NewRepository[testmodels.Account](p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection_string")
}

func TestRegisterPathAlias(t *testing.T) {
	RegisterPath("aliases.InMemoryRepo", Memory)

	p, err := New("aliases.InMemoryRepo", nil)
	require.NoError(t, err)
	require.Equal(t, Memory, p.Backend())

	require.Panics(t, func() { RegisterPath("aliases.InMemoryRepo", Memory) })
}

func TestPathsListsBuiltins(t *testing.T) {
	require.Contains(t, Paths(), "modelrepo/repository/memory.Repository")
	require.Contains(t, Paths(), "modelrepo/repository/ddb.Repository")
}
