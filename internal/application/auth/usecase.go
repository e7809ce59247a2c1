package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kiosco-pos-api/internal/application/dto"
	"github.com/jhoicas/kiosco-pos-api/internal/domain"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/entity"
	"github.com/jhoicas/kiosco-pos-api/internal/domain/repository"
	"github.com/jhoicas/kiosco-pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación y administración de usuarios.
type UseCase struct {
	profileRepo    repository.ProfileRepository
	saleRepo       repository.SaleRepository
	jwtCfg         JWTConfig
	bootstrapToken string
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	profileRepo repository.ProfileRepository,
	saleRepo repository.SaleRepository,
	jwtCfg JWTConfig,
	bootstrapToken string,
) *UseCase {
	return &UseCase{
		profileRepo:    profileRepo,
		saleRepo:       saleRepo,
		jwtCfg:         jwtCfg,
		bootstrapToken: bootstrapToken,
	}
}

// Login verifica username/password, genera JWT y registra el último acceso.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profileRepo.GetByUsername(NormalizeUsername(in.Username))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUnauthorized // no filtrar si el usuario existe
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := uc.profileRepo.UpdateLastSignIn(profile.ID, now); err != nil {
		return nil, err
	}
	profile.LastSignInAt = &now
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(profile),
	}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(userID string) (*dto.UserResponse, error) {
	profile, err := uc.profileRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(profile), nil
}

// Bootstrap crea el primer admin. Requiere el token compartido de despliegue
// y falla si ya existe algún admin.
func (uc *UseCase) Bootstrap(token string, in dto.BootstrapRequest) (*dto.UserResponse, error) {
	if uc.bootstrapToken == "" || token != uc.bootstrapToken {
		return nil, domain.ErrUnauthorized
	}
	hasAdmin, err := uc.profileRepo.ExistsAdmin()
	if err != nil {
		return nil, err
	}
	if hasAdmin {
		return nil, domain.ErrAdminExists
	}
	fullName := in.FullName
	if fullName == "" {
		fullName = in.Username
	}
	return uc.createProfile(in.Username, in.Password, fullName, entity.RoleAdmin)
}

// ListUsers devuelve todos los perfiles (solo admin, vía RequireRole).
func (uc *UseCase) ListUsers() (*dto.UserListResponse, error) {
	profiles, err := uc.profileRepo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(profiles))}
	for _, p := range profiles {
		out.Items = append(out.Items, *toUserResponse(p))
	}
	return out, nil
}

// CreateUser da de alta un usuario con el rol indicado (seller por defecto).
func (uc *UseCase) CreateUser(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleSeller
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	return uc.createProfile(in.Username, in.Password, in.FullName, role)
}

// UpdateUser edita username, nombre y rol. El username debe seguir único
// entre los demás perfiles.
func (uc *UseCase) UpdateUser(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	profile, err := uc.profileRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}

	username := NormalizeUsername(in.Username)
	taken, err := uc.profileRepo.ExistsUsernameOther(username, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	profile.Username = username
	profile.Email = InternalEmailFromUsername(username)
	profile.FullName = in.FullName
	profile.Role = in.Role
	profile.UpdatedAt = time.Now()
	if err := uc.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	return toUserResponse(profile), nil
}

// DeleteUser elimina un perfil. Bloqueado si es el propio admin autenticado
// o si el usuario tiene ventas registradas (el historial referencia al creador).
func (uc *UseCase) DeleteUser(callerID, id string) error {
	if id == callerID {
		return domain.ErrSelfDelete
	}
	profile, err := uc.profileRepo.GetByID(id)
	if err != nil {
		return err
	}
	if profile == nil {
		return domain.ErrUserNotFound
	}
	count, err := uc.saleRepo.CountByCreator(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrUserHasSales
	}
	return uc.profileRepo.Delete(id)
}

func (uc *UseCase) createProfile(rawUsername, password, fullName, role string) (*dto.UserResponse, error) {
	username := NormalizeUsername(rawUsername)
	if username == "" || len(password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.profileRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        InternalEmailFromUsername(username),
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return toUserResponse(profile), nil
}

func toUserResponse(p *entity.Profile) *dto.UserResponse {
	if p == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           p.ID,
		Username:     p.Username,
		Email:        p.Email,
		FullName:     p.FullName,
		Role:         p.Role,
		CreatedAt:    p.CreatedAt,
		LastSignInAt: p.LastSignInAt,
	}
}
