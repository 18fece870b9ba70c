package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Gimnasio-api/internal/application/auth"
	"github.com/jhoicas/Gimnasio-api/internal/application/dto"
	"github.com/jhoicas/Gimnasio-api/internal/domain"
	"github.com/jhoicas/Gimnasio-api/internal/domain/entity"
	"github.com/jhoicas/Gimnasio-api/internal/infrastructure/memory"
	"github.com/jhoicas/Gimnasio-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepo(memory.NewStore())
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"}), repo
}

func TestRegisterUser_RolPorDefectoYHash(t *testing.T) {
	uc, repo := newAuth(t)
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: " Ana@Gym.Test ", Password: "password-123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@gym.test", out.Email)
	assert.Equal(t, entity.RoleStaff, out.Role)
	assert.Equal(t, "ana@gym.test", out.Name, "sin nombre se usa el email")

	stored, err := repo.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password-123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password-123")))

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "ANA@gym.test", Password: "password-456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "b@gym.test", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "c@gym.test", Password: "password-123", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	created, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "admin@gym.test", Password: "password-123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ADMIN@gym.test", Password: "password-123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "admin@gym.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@gym.test", Password: "password-123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, repo := newAuth(t)
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("password-123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &entity.User{
		ID: "u-1", Email: "baja@gym.test", PasswordHash: string(hash), Name: "Baja",
		Role: entity.RoleStaff, Status: entity.UserStatusInactive, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@gym.test", Password: "password-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEnsureAdmin_SoloConTablaVacia(t *testing.T) {
	uc, repo := newAuth(t)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "", "", "Admin"), "sin credenciales no hace nada")
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, uc.EnsureAdmin(ctx, "admin@gym.test", "password-123", "Admin"))
	admin, err := repo.GetByEmail(ctx, "admin@gym.test")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	require.NoError(t, uc.EnsureAdmin(ctx, "otro@gym.test", "password-123", "Otro"))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "con usuarios existentes no se crea otro admin")
}
