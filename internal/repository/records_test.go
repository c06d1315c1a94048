package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://u:p@localhost/db"))
	assert.Equal(t, DialectPostgres, DialectFor("PostgreSQL://localhost/db"))
	assert.Equal(t, DialectSQLite, DialectFor("sqlite://resumes.db"))
	assert.Equal(t, DialectSQLite, DialectFor(":memory:"))
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: DialectPostgres}
	assert.Equal(t, "SELECT $1, $2", pg.rebind("SELECT ?, ?"))
	lite := &Store{dialect: DialectSQLite}
	assert.Equal(t, "SELECT ?, ?", lite.rebind("SELECT ?, ?"))
}

func TestOpen_NoDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{}, nil)
	require.ErrorIs(t, err, common.ErrDatabase)
}

func TestRecordRepository_InsertAndList(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.HealthCheck(context.Background(), time.Second))
	require.NoError(t, s.Migrate(context.Background()), "migrate is idempotent")

	repo := NewRecordRepository(s, nil).(*recordRepository)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Second) }

	runID := uuid.New()
	jane := entity.NewResumeRecord()
	jane.Name = "Jane Doe"
	jane.Skills = []string{"Go", "Rust"}
	empty := entity.NewResumeRecord()

	id1, err := repo.Insert(context.Background(), runID, "/in/jane.pdf", "regex", jane)
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), runID, "/in/blank.docx", "regex", empty)
	require.NoError(t, err)
	_, err = repo.Insert(context.Background(), uuid.New(), "/in/other.pdf", "llm:stub", jane)
	require.NoError(t, err)

	got, err := repo.ListByRun(context.Background(), runID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, id1, got[0].ID)
	assert.Equal(t, "/in/jane.pdf", got[0].SourcePath)
	assert.Equal(t, jane, got[0].Record)
	assert.Equal(t, base.Add(time.Second), got[0].CreatedAt)
	assert.Equal(t, empty, got[1].Record)

	one, err := repo.GetByID(context.Background(), id1)
	require.NoError(t, err)
	assert.Equal(t, runID, one.RunID)

	_, err = repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}
