package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kiosco-pos-api/internal/domain"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `id, username, email, full_name, password_hash, role, created_at, updated_at, last_sign_in_at`

// ProfileRepo implementación de ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador.
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// Create persiste un perfil nuevo. Username duplicado devuelve ErrUsernameTaken.
func (r *ProfileRepo) Create(p *entity.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Username, p.Email, p.FullName, p.PasswordHash, p.Role,
		p.CreatedAt, p.UpdatedAt, p.LastSignInAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID. Devuelve nil si no existe.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByUsername obtiene un perfil por username. Devuelve nil si no existe.
func (r *ProfileRepo) GetByUsername(username string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	return r.scanOne(query, username)
}

// List devuelve todos los perfiles ordenados por username.
func (r *ProfileRepo) List() ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY username ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del perfil.
func (r *ProfileRepo) Update(p *entity.Profile) error {
	query := `
		UPDATE profiles
		SET username = $2, email = $3, full_name = $4, password_hash = $5, role = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Username, p.Email, p.FullName, p.PasswordHash, p.Role, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateLastSignIn registra el último inicio de sesión.
func (r *ProfileRepo) UpdateLastSignIn(id string, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE profiles SET last_sign_in_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last sign in: %w", err)
	}
	return nil
}

// Delete elimina un perfil.
func (r *ProfileRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ExistsAdmin indica si ya existe al menos un administrador.
func (r *ProfileRepo) ExistsAdmin() (bool, error) {
	var found int
	err := r.q.QueryRow(context.Background(),
		`SELECT 1 FROM profiles WHERE role = $1 LIMIT 1`, entity.RoleAdmin,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists admin: %w", err)
	}
	return true, nil
}

// ExistsUsernameOther indica si otro perfil (distinto de excludeID) usa el username.
func (r *ProfileRepo) ExistsUsernameOther(username, excludeID string) (bool, error) {
	var found int
	err := r.q.QueryRow(context.Background(),
		`SELECT 1 FROM profiles WHERE username = $1 AND id <> $2 LIMIT 1`,
		username, excludeID,
	).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists username: %w", err)
	}
	return true, nil
}

func (r *ProfileRepo) scanOne(query string, arg any) (*entity.Profile, error) {
	p, err := scanProfile(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	err := row.Scan(&p.ID, &p.Username, &p.Email, &p.FullName, &p.PasswordHash,
		&p.Role, &p.CreatedAt, &p.UpdatedAt, &p.LastSignInAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
