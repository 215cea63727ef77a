package main

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/Cotizador-api/internal/application/auth"
	"github.com/jhoicas/Cotizador-api/internal/application/dto"
	"github.com/jhoicas/Cotizador-api/internal/domain/entity"
)

type adminInput struct {
	companyID string
	email     string
	password  string
	name      string
}

func parseArgs(args []string) (adminInput, error) {
	if len(args) < 3 {
		return adminInput{}, errors.New("faltan argumentos")
	}
	in := adminInput{
		companyID: strings.TrimSpace(args[0]),
		email:     strings.TrimSpace(args[1]),
		password:  args[2],
	}
	if len(args) > 3 {
		in.name = strings.Join(args[3:], " ")
	}
	if in.companyID == "" || in.email == "" {
		return adminInput{}, errors.New("company_id y email son obligatorios")
	}
	if len(in.password) < 8 {
		return adminInput{}, errors.New("el password debe tener al menos 8 caracteres")
	}
	return in, nil
}

func createAdmin(ctx context.Context, uc *auth.AuthUseCase, in adminInput) (*dto.UserResponse, error) {
	return uc.CreateUser(ctx, in.companyID, dto.CreateUserRequest{
		Email:    in.email,
		Password: in.password,
		Name:     in.name,
		Role:     entity.RoleAdmin,
	})
}
