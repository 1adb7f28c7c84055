package adapter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	m "github.com/natepiano/brp-mutate/internal/model"
)

func TestSnapshotStore_SnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	dir := m.Path(t.TempDir())
	store := NewSnapshotStore()

	snapshot := &m.Snapshot{
		SessionID: "session-1",
		Endpoint:  "http://127.0.0.1:15702/",
		FetchedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Payload:   json.RawMessage(`{"f32": {"shortPath": "f32", "kind": "Value", "reflectTypes": ["Serialize", "Deserialize"]}}`),
	}

	require.NoError(t, store.SaveSnapshot(dir, snapshot))

	loaded, err := store.LoadSnapshot(dir)
	require.NoError(t, err)
	require.Equal(t, snapshot.SessionID, loaded.SessionID)
	require.Equal(t, snapshot.FetchedAt, loaded.FetchedAt)
	require.JSONEq(t, string(snapshot.Payload), string(loaded.Payload))

	registry, err := loaded.Decode()
	require.NoError(t, err)
	require.Equal(t, 1, registry.Len())
}

func TestSnapshotStore_LoadSnapshot_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewSnapshotStore().LoadSnapshot(m.Path(t.TempDir()))
	require.Error(t, err)
}

func TestSnapshotStore_AnalysisRoundTrip(t *testing.T) {
	t.Parallel()

	dir := m.Path(t.TempDir())
	store := NewSnapshotStore()

	paths := map[string]m.PathEntry{
		"": {
			Path:     "",
			Type:     "glam::Vec2",
			PathKind: m.RootValue("glam::Vec2"),
			Kind:     m.KindStruct,
			Status:   m.Mutable,
			Example:  []any{1.0, 2.0},
		},
	}

	require.NoError(t, store.SaveAnalysis(dir, "glam::Vec2", paths))

	analyses, err := store.LoadAnalyses(dir)
	require.NoError(t, err)
	require.Len(t, analyses, 1)

	if diff := cmp.Diff(paths, analyses["glam::Vec2"]); diff != "" {
		t.Fatalf("analysis round trip differs (-want +got):\n%s", diff)
	}
}

func TestSnapshotStore_AnalysisFilePerType(t *testing.T) {
	t.Parallel()

	dir := m.Path(t.TempDir())
	store := NewSnapshotStore()

	roots := []m.TypeName{
		"glam::Vec2",
		"core::option::Option<glam::Vec2>",
	}

	for _, root := range roots {
		require.NoError(t, store.SaveAnalysis(dir, root, map[string]m.PathEntry{}))
	}

	entries, err := os.ReadDir(filepath.Join(string(dir), "paths"))
	require.NoError(t, err)
	require.Len(t, entries, len(roots))

	analyses, err := store.LoadAnalyses(dir)
	require.NoError(t, err)

	for _, root := range roots {
		require.Contains(t, analyses, root)
	}
}

func TestSanitizeTypeName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   m.TypeName
		want string
	}{
		{"glam::Vec2", "glam.Vec2"},
		{"core::option::Option<glam::Vec2>", "core.option.Option(glam.Vec2)"},
		{"std::collections::HashMap<alloc::string::String, u32>", "std.collections.HashMap(alloc.string.String,u32)"},
	}

	for _, tc := range cases {
		if got := sanitizeTypeName(tc.in); got != tc.want {
			t.Errorf("sanitizeTypeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
