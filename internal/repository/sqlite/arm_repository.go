package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"arm-servicedesk/internal/domain"
	"arm-servicedesk/internal/repository"
)

const createARMsTable = `
CREATE TABLE IF NOT EXISTS arms (
	id TEXT PRIMARY KEY,
	inventory_number TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	assigned_user TEXT NOT NULL DEFAULT '',
	department TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	characteristics TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// armCounter names the durable counter that feeds ARM id assignment. Ids
// keep the ARM-%03d wire format but never shrink with the collection.
const armCounter = "arm"

type ARMRepository struct {
	db *sql.DB
}

func NewARMRepository(db *sql.DB) repository.ARMRepository {
	return &ARMRepository{db: db}
}

func (r *ARMRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createARMsTable); err != nil {
		return fmt.Errorf("create arms table: %w", err)
	}
	return nil
}

func (r *ARMRepository) Create(ctx context.Context, arm *domain.ARM) error {
	now := time.Now().UTC()
	arm.CreatedAt = now
	arm.UpdatedAt = now

	characteristics, err := marshalCharacteristics(arm.Characteristics)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextCounter(ctx, tx, armCounter)
	if err != nil {
		return err
	}
	arm.ID = fmt.Sprintf("ARM-%03d", seq)

	if _, err := tx.ExecContext(ctx, `
INSERT INTO arms (id, inventory_number, name, location, assigned_user, department, status, characteristics, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arm.ID,
		arm.InventoryNumber,
		arm.Name,
		arm.Location,
		arm.User,
		arm.Department,
		arm.Status,
		characteristics,
		arm.CreatedAt,
		arm.UpdatedAt,
	); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("inventory number %s: %w", arm.InventoryNumber, repository.ErrDuplicate)
		}
		return fmt.Errorf("insert arm: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit arm insert: %w", err)
	}
	return nil
}

func (r *ARMRepository) Get(ctx context.Context, id string) (*domain.ARM, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, inventory_number, name, location, assigned_user, department, status, characteristics, created_at, updated_at
FROM arms
WHERE id = ?`,
		id,
	)
	return scanARM(row)
}

func (r *ARMRepository) List(ctx context.Context) ([]domain.ARM, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, inventory_number, name, location, assigned_user, department, status, characteristics, created_at, updated_at
FROM arms
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query arms: %w", err)
	}
	defer rows.Close()

	arms := []domain.ARM{}
	for rows.Next() {
		arm, err := scanARM(rows)
		if err != nil {
			return nil, err
		}
		arms = append(arms, *arm)
	}

	return arms, rows.Err()
}

func (r *ARMRepository) Update(ctx context.Context, arm *domain.ARM) error {
	arm.UpdatedAt = time.Now().UTC()

	characteristics, err := marshalCharacteristics(arm.Characteristics)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE arms
SET inventory_number=?, name=?, location=?, assigned_user=?, department=?, status=?, characteristics=?, updated_at=?
WHERE id=?`,
		arm.InventoryNumber,
		arm.Name,
		arm.Location,
		arm.User,
		arm.Department,
		arm.Status,
		characteristics,
		arm.UpdatedAt,
		arm.ID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("inventory number %s: %w", arm.InventoryNumber, repository.ErrDuplicate)
		}
		return fmt.Errorf("update arm: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("arm update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("arm %s: %w", arm.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *ARMRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM arms WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete arm: %w", err)
	}

	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("arm delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("arm %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *ARMRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM arms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count arms: %w", err)
	}
	return count, nil
}

func (r *ARMRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM arms WHERE status=?`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count arms by status: %w", err)
	}
	return count, nil
}

func scanARM(scanner interface {
	Scan(dest ...any) error
}) (*domain.ARM, error) {
	var (
		arm             domain.ARM
		characteristics string
		createdAt       time.Time
		updatedAt       time.Time
	)

	if err := scanner.Scan(
		&arm.ID,
		&arm.InventoryNumber,
		&arm.Name,
		&arm.Location,
		&arm.User,
		&arm.Department,
		&arm.Status,
		&characteristics,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("arm: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan arm: %w", err)
	}

	arm.Characteristics = map[string]string{}
	if characteristics != "" {
		if err := json.Unmarshal([]byte(characteristics), &arm.Characteristics); err != nil {
			return nil, fmt.Errorf("decode characteristics: %w", err)
		}
	}
	arm.CreatedAt = createdAt.UTC()
	arm.UpdatedAt = updatedAt.UTC()

	return &arm, nil
}

func marshalCharacteristics(characteristics map[string]string) (string, error) {
	if characteristics == nil {
		characteristics = map[string]string{}
	}
	encoded, err := json.Marshal(characteristics)
	if err != nil {
		return "", fmt.Errorf("encode characteristics: %w", err)
	}
	return string(encoded), nil
}
