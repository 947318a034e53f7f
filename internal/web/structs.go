package web

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goserg/hackathon/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func accountParam(ctx *fiber.Ctx) (domain.Account, error) {
	account := ctx.Params("account")
	if account == "" {
		return "", ErrMissingAccount
	}
	return domain.Account(account), nil
}

func teamIDParam(ctx *fiber.Ctx) (domain.TeamID, error) {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("team id: %w", err)
	}
	return domain.TeamID(id), nil
}

type balanceRequest struct {
	account domain.Account
	class   domain.TokenClass
}

func parseBalanceRequest(ctx *fiber.Ctx) (balanceRequest, error) {
	account, err := accountParam(ctx)
	class, classErr := strconv.ParseUint(ctx.Params("class"), 10, 64)
	if classErr != nil {
		err = errors.Join(err, fmt.Errorf("token class: %w", classErr))
	}
	if err != nil {
		return balanceRequest{}, err
	}
	return balanceRequest{
		account: account,
		class:   domain.TokenClass(class),
	}, nil
}

type roleRequest struct {
	account domain.Account
	role    domain.Role
}

func parseRoleRequest(ctx *fiber.Ctx) (roleRequest, error) {
	account, err := accountParam(ctx)
	role, roleErr := domain.ParseRole(ctx.Params("role"))
	err = errors.Join(err, roleErr)
	if err != nil {
		return roleRequest{}, err
	}
	return roleRequest{
		account: account,
		role:    role,
	}, nil
}
