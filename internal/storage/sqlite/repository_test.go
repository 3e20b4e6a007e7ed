package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencanada-grants-parser/internal/checksum"
	"opencanada-grants-parser/internal/observability"
	"opencanada-grants-parser/internal/scraper"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "grants.db")

	repo, err := NewRepository(dsn, 5000, observability.NewLogger("", "error"))
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, repo.commandTimeout, "configured timeout governs every statement, setup included")
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAppend(t *testing.T) {
	repo := testRepo(t)

	rec := &scraper.Record{
		Agreement:           "Grant for community programming",
		AgreementNumber:     "123456789",
		DateRange:           "Apr 1, 2024 to Mar 31, 2025",
		DateAgreed:          "Jan 5, 2024",
		Description:         "Support for youth services",
		Recipient:           "Example Community Society Inc.",
		RecipientPublicName: "Example Community Society",
		Price:               "$250,000",
		Location:            "Ottawa, Ontario",
	}

	require.NoError(t, repo.Append(rec))

	var agreement, dateAgreed, rowHash string
	row := repo.db.QueryRow(`SELECT agreement, date_agreed, row_hash FROM grants`)
	require.NoError(t, row.Scan(&agreement, &dateAgreed, &rowHash))

	assert.Equal(t, "Grant for community programming", agreement)
	assert.Equal(t, "Jan 5, 2024", dateAgreed)
	assert.Equal(t, checksum.RecordHash(rec.Fields()...), rowHash)
}

func TestAppendPreservesOrder(t *testing.T) {
	repo := testRepo(t)

	for _, agreement := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Append(&scraper.Record{Agreement: agreement}))
	}

	rows, err := repo.db.Query(`SELECT agreement FROM grants ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()

	var agreements []string
	for rows.Next() {
		var agreement string
		require.NoError(t, rows.Scan(&agreement))
		agreements = append(agreements, agreement)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []string{"first", "second", "third"}, agreements)
}

func TestNewRepositoryCreatesSchemaIdempotently(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "grants.db")
	logger := observability.NewLogger("", "error")

	repo1, err := NewRepository(dsn, 5000, logger)
	require.NoError(t, err)
	require.NoError(t, repo1.Close())

	repo2, err := NewRepository(dsn, 5000, logger)
	require.NoError(t, err)
	require.NoError(t, repo2.Close())
}
