// Package testsupport loads JSON page fixtures and compares rendered output
// against golden files.
package testsupport

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notionmd/pkg/interfaces"
)

// UpdateGoldenEnv rewrites golden files instead of comparing when set to "1".
const UpdateGoldenEnv = "UPDATE_GOLDEN"

func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "read fixture %s", path)
	return data
}

// LoadPageFixture decodes a {"page": ..., "blocks": [...]} fixture.
func LoadPageFixture(t testing.TB, path string) interfaces.PageWithBlocks {
	t.Helper()
	var pair interfaces.PageWithBlocks
	require.NoError(t, json.Unmarshal(LoadFixture(t, path), &pair), "decode fixture %s", path)
	return pair
}

func AssertGolden(t testing.TB, path, got string) {
	t.Helper()
	if os.Getenv(UpdateGoldenEnv) == "1" {
		require.NoError(t, os.WriteFile(path, []byte(got), 0o644))
		return
	}
	require.Equal(t, string(LoadFixture(t, path)), got, "golden mismatch for %s", path)
}
