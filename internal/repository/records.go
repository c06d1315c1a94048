package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/entity"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// StoredRecord is a ResumeRecord with its provenance.
type StoredRecord struct {
	ID         uuid.UUID
	RunID      uuid.UUID
	SourcePath string
	Strategy   string
	Record     entity.ResumeRecord
	CreatedAt  time.Time
}

type RecordRepository interface {
	Insert(ctx context.Context, runID uuid.UUID, sourcePath, strategy string, rec entity.ResumeRecord) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoredRecord, error)
	ListByRun(ctx context.Context, runID uuid.UUID) ([]*StoredRecord, error)
}

type recordRepository struct {
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

func NewRecordRepository(store *Store, logger *slog.Logger) RecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &recordRepository{store: store, logger: logger, now: time.Now}
}

const recordColumns = `id, run_id, source_path, strategy, name, phone_number, email_id, job_title, current_company, skills, location, created_at`

// Insert stores rec. Every column holds the null-marker when a field was not found.
func (r *recordRepository) Insert(ctx context.Context, runID uuid.UUID, sourcePath, strategy string, rec entity.ResumeRecord) (uuid.UUID, error) {
	id := uuid.New()
	q := r.store.rebind(`INSERT INTO resume_records (` + recordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.store.db.ExecContext(ctx, q,
		id.String(), runID.String(), sourcePath, strategy,
		rec.Value(entity.ColName),
		rec.Value(entity.ColPhoneNumber),
		rec.Value(entity.ColEmailID),
		rec.Value(entity.ColJobTitle),
		rec.Value(entity.ColCurrentCompany),
		rec.SkillsText(),
		rec.Value(entity.ColLocation),
		r.now().UTC().Format(timeLayout),
	)
	if err != nil {
		r.logger.Error("failed to insert resume record", "run_id", runID, "path", sourcePath, "error", err)
		return uuid.Nil, common.DatabaseError("insert resume record", err)
	}
	r.logger.Debug("resume record stored", "id", id, "run_id", runID, "path", sourcePath)
	return id, nil
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*StoredRecord, error) {
	q := r.store.rebind(`SELECT ` + recordColumns + ` FROM resume_records WHERE id = ?`)
	row := r.store.db.QueryRowContext(ctx, q, id.String())
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, common.DatabaseError("get resume record", err)
	}
	return rec, nil
}

// ListByRun returns a run's records in insertion order.
func (r *recordRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]*StoredRecord, error) {
	q := r.store.rebind(`SELECT ` + recordColumns + ` FROM resume_records WHERE run_id = ? ORDER BY created_at, id`)
	rows, err := r.store.db.QueryContext(ctx, q, runID.String())
	if err != nil {
		r.logger.Error("failed to list resume records", "run_id", runID, "error", err)
		return nil, common.DatabaseError("list resume records", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, common.DatabaseError("scan resume record", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.DatabaseError("list resume records", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*StoredRecord, error) {
	var (
		id, runID, created, skills string
		out                        StoredRecord
	)
	err := s.Scan(&id, &runID, &out.SourcePath, &out.Strategy,
		&out.Record.Name,
		&out.Record.PhoneNumber,
		&out.Record.EmailID,
		&out.Record.JobTitle,
		&out.Record.CurrentCompany,
		&skills,
		&out.Record.Location,
		&created,
	)
	if err != nil {
		return nil, err
	}
	if out.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if out.RunID, err = uuid.Parse(runID); err != nil {
		return nil, err
	}
	if out.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, err
	}
	if !entity.IsNull(skills) {
		out.Record.Skills = strings.Split(skills, ", ")
	}
	return &out, nil
}
