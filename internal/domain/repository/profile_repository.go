package repository

import (
	"time"

	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para Profile.
// Los getters devuelven (nil, nil) cuando el perfil no existe.
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	GetByUsername(username string) (*entity.Profile, error)
	List() ([]*entity.Profile, error)
	Update(profile *entity.Profile) error
	UpdateLastSignIn(id string, at time.Time) error
	Delete(id string) error

	// ExistsAdmin indica si ya hay algún perfil con rol admin (bootstrap).
	ExistsAdmin() (bool, error)
	// ExistsUsernameOther indica si otro perfil distinto a excludeID ya usa
	// el username (chequeo de unicidad en updates).
	ExistsUsernameOther(username, excludeID string) (bool, error)
}
