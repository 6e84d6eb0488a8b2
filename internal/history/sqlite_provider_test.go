package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/database"
)

func newTestSQLiteProvider(t *testing.T) *SQLiteProvider {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "lotto.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	provider, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	return provider
}

func TestSQLiteProviderRoundTrip(t *testing.T) {
	provider := newTestSQLiteProvider(t)

	archive := Archive{
		1145: {Round: 1145, Numbers: []int{5, 14, 26, 28, 35, 44}},
		1146: {Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
	}
	require.NoError(t, provider.Write(archive))

	loaded, err := provider.Read()
	require.NoError(t, err)
	assert.Equal(t, archive, loaded)
}

func TestSQLiteProviderEmptyReadsAsUnavailable(t *testing.T) {
	provider := newTestSQLiteProvider(t)

	_, err := provider.Read()
	assert.Error(t, err, "fresh database must not shadow lower tiers")
}

func TestSQLiteProviderWriteIsIdempotent(t *testing.T) {
	provider := newTestSQLiteProvider(t)

	archive := Archive{
		1146: {Round: 1146, Numbers: []int{3, 11, 18, 30, 40, 42}},
	}
	require.NoError(t, provider.Write(archive))
	require.NoError(t, provider.Write(archive))

	loaded, err := provider.Read()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
