package identity

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/danuprasetya/hr-management/internal/identity"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*identity.Credential, error) {
	query := `SELECT id, email, display_name, password_hash, email_verified, verification_sent_at, created_at, last_sign_in_at
	          FROM credentials WHERE email = ?`
	return r.scanOne(ctx, query, email)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*identity.Credential, error) {
	query := `SELECT id, email, display_name, password_hash, email_verified, verification_sent_at, created_at, last_sign_in_at
	          FROM credentials WHERE id = ?`
	return r.scanOne(ctx, query, id)
}

func (r *Repository) scanOne(ctx context.Context, query string, arg any) (*identity.Credential, error) {
	var cred identity.Credential
	var displayName sql.NullString

	row := r.db.WithContext(ctx).Raw(query, arg).Row()
	err := row.Scan(&cred.ID, &cred.Email, &displayName, &cred.PasswordHash,
		&cred.EmailVerified, &cred.VerificationSentAt, &cred.CreatedAt, &cred.LastSignInAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identity.ErrPrincipalNotFound
		}
		return nil, err
	}
	cred.DisplayName = displayName.String

	return &cred, nil
}

func (r *Repository) Create(ctx context.Context, cred *identity.Credential) error {
	query := `INSERT INTO credentials (id, email, display_name, password_hash, email_verified, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`
	return r.db.WithContext(ctx).Exec(query,
		cred.ID, cred.Email, cred.DisplayName, cred.PasswordHash, cred.EmailVerified, cred.CreatedAt).Error
}

func (r *Repository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE credentials SET email_verified = ? WHERE id = ?`, verified, id).Error
}

func (r *Repository) MarkVerificationSent(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE credentials SET verification_sent_at = ? WHERE id = ?`, at, id).Error
}

func (r *Repository) SetLastSignIn(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Exec(`UPDATE credentials SET last_sign_in_at = ? WHERE id = ?`, at, id).Error
}
