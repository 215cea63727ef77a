package auth_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
	"github.com/jhoicas/Cotizador-api/internal/testutil/memstore"
	"github.com/jhoicas/Cotizador-api/pkg/jwt"
)

const companyID = "11111111-1111-1111-1111-111111111111"

func setup(t *testing.T) (*auth.AuthUseCase, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.Companies().Create(context.Background(), &entity.Company{ID: companyID, Name: "Acme", Status: "active"}))
	uc := auth.NewAuthUseCase(store.Users(), store.Companies(), auth.JWTConfig{Secret: "secreto", ExpMinutes: 60, Issuer: "cotizador"})
	return uc, store
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: " Ana@Example.com ", Password: "clave-segura", CompanyID: companyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, entity.RoleVentas, user.Role, "rol por defecto")
	assert.Equal(t, "ana@example.com", user.Name)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@example.com", Password: "clave-segura"})
	require.NoError(t, err)
	id, err := jwt.Parse("secreto", "cotizador", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, companyID, id.CompanyID)
	assert.Equal(t, entity.RoleVentas, id.Role)
}

func TestRegister_Errores(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678", CompanyID: companyID})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "y@b.co", Password: "12345678", CompanyID: "99999999-9999-9999-9999-999999999999"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := store.Users().GetByEmail(ctx, "a@b.co")
	require.NoError(t, err)
	u.Status = "inactive"
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "otro", Email: "c@b.co", Status: "inactive",
		PasswordHash: u.PasswordHash, CompanyID: companyID, Role: entity.RoleVentas}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "c@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_IgnoraElRolPedido(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	// un cliente que manda "role":"admin" en el JSON entra como ventas
	var in dto.RegisterRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"email": "intruso@b.co", "password": "12345678",
		"companyId": "`+companyID+`", "role": "admin"
	}`), &in))

	user, err := uc.RegisterUser(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVentas, user.Role)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "intruso@b.co", Password: "12345678"})
	require.NoError(t, err)
	id, err := jwt.Parse("secreto", "cotizador", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVentas, id.Role)
}

func TestCreateUser_ConRol(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, companyID, dto.CreateUserRequest{
		Email: "Prod@B.co", Password: "12345678", Name: "Planta", Role: " Produccion ",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProduccion, user.Role)
	assert.Equal(t, "prod@b.co", user.Email)
	assert.Equal(t, companyID, user.CompanyID)

	_, err = uc.CreateUser(ctx, companyID, dto.CreateUserRequest{Email: "x@b.co", Password: "12345678", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateUser(ctx, companyID, dto.CreateUserRequest{Email: "x@b.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el rol es obligatorio")
	_, err = uc.CreateUser(ctx, "99999999-9999-9999-9999-999999999999", dto.CreateUserRequest{Email: "x@b.co", Password: "12345678", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateRole(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	admin, err := uc.CreateUser(ctx, companyID, dto.CreateUserRequest{Email: "jefe@b.co", Password: "12345678", Role: entity.RoleAdmin})
	require.NoError(t, err)
	seller, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "v@b.co", Password: "12345678", CompanyID: companyID})
	require.NoError(t, err)

	got, err := uc.UpdateRole(ctx, companyID, admin.ID, seller.ID, entity.RoleProduccion)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProduccion, got.Role)

	_, err = uc.UpdateRole(ctx, companyID, admin.ID, seller.ID, "root")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateRole(ctx, companyID, admin.ID, admin.ID, entity.RoleVentas)
	assert.ErrorIs(t, err, domain.ErrConflict, "no se quita su propio rol")
	_, err = uc.UpdateRole(ctx, "otra-empresa", admin.ID, seller.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.UpdateRole(ctx, companyID, admin.ID, "no-existe", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
