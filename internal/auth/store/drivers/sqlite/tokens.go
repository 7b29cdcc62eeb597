package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gatekit/gatekit/internal/auth/domain"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/pkg/idx"
)

type tokensRepo struct {
	db *sql.DB
}

func (r *tokensRepo) GetByKey(ctx context.Context, key string) (domain.TokenRecord, error) {
	// Single query: the record joins its principal so authentication needs
	// exactly one store call.
	row := r.db.QueryRowContext(ctx, `
		SELECT t.key, t.secret_hash, t.kind, t.created_at, t.expires_at,
		       p.id, p.username, p.password_hash, p.verified, p.created_at, p.updated_at
		FROM tokens t
		JOIN principals p ON p.id = t.principal_id
		WHERE t.key = ?`, key)

	var rec domain.TokenRecord
	var kind string
	err := row.Scan(
		&rec.Key, &rec.SecretHash, &kind, &rec.CreatedAt, &rec.ExpiresAt,
		&rec.Principal.ID, &rec.Principal.Username, &rec.Principal.PasswordHash,
		&rec.Principal.Verified, &rec.Principal.CreatedAt, &rec.Principal.UpdatedAt,
	)
	if err != nil {
		return domain.TokenRecord{}, mapNotFound(err)
	}
	rec.Kind = domain.Kind(kind)
	return rec, nil
}

func (r *tokensRepo) Save(ctx context.Context, t domain.TokenRecord) (domain.TokenRecord, error) {
	if t.Key == "" {
		t.Key = idx.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = utc(time.Now())
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tokens (key, secret_hash, kind, principal_id, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Key, t.SecretHash, string(t.Kind), t.Principal.ID, t.CreatedAt, t.ExpiresAt)
	if errors.Is(mapConstraint(err), store.ErrAlreadyExists) {
		// Key collision: retry once with a store-assigned key.
		t.Key = idx.New().String()
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO tokens (key, secret_hash, kind, principal_id, created_at, expires_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.Key, t.SecretHash, string(t.Kind), t.Principal.ID, t.CreatedAt, t.ExpiresAt)
	}
	if err != nil {
		return domain.TokenRecord{}, mapConstraint(err)
	}
	return t, nil
}

func (r *tokensRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE key = ?`, key)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tokensRepo) DeletePrincipalTokens(ctx context.Context, principalID string, kind domain.Kind) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM tokens WHERE principal_id = ? AND kind = ?`,
		principalID, string(kind))
	return err
}

func (r *tokensRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at <= ?`, utc(now))
	return err
}
