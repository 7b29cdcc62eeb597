package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/idx"
)

type principalsRepo struct {
	db *sql.DB
}

func (r *principalsRepo) GetByUsername(ctx context.Context, username string) (domain.Principal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, verified, created_at, updated_at
		FROM principals
		WHERE username = ?`, username)
	return scanPrincipal(row)
}

func (r *principalsRepo) Create(ctx context.Context, p domain.Principal) (domain.Principal, error) {
	if p.ID == "" {
		p.ID = idx.New().String()
	}
	now := utc(time.Now())
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO principals (id, username, password_hash, verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Username, p.PasswordHash, p.Verified, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return domain.Principal{}, mapConstraint(err)
	}
	return p, nil
}

func (r *principalsRepo) Update(ctx context.Context, p domain.Principal) (domain.Principal, error) {
	p.UpdatedAt = utc(time.Now())

	res, err := r.db.ExecContext(ctx, `
		UPDATE principals
		SET password_hash = ?, verified = ?, updated_at = ?
		WHERE username = ?`,
		p.PasswordHash, p.Verified, p.UpdatedAt, p.Username)
	if err != nil {
		return domain.Principal{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Principal{}, err
	}
	if affected == 0 {
		return domain.Principal{}, store.ErrNotFound
	}

	return r.GetByUsername(ctx, p.Username)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrincipal(row rowScanner) (domain.Principal, error) {
	var p domain.Principal
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.Verified, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Principal{}, mapNotFound(err)
	}
	return p, nil
}
