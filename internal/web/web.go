package web

import (
	"strconv"
	"strings"

	authservice "github.com/goserg/hackathon/internal/auth/service"
	"github.com/goserg/hackathon/internal/config"
	"github.com/goserg/hackathon/internal/domain"
	"github.com/goserg/hackathon/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Server struct {
	auth      *authservice.Service
	hackathon *service.Hackathon
	app       *fiber.App
	cfg       config.Server
	log       *logrus.Entry
}

func New(h *service.Hackathon, cfg config.Server, authService *authservice.Service, l *logrus.Logger) *Server {
	server := Server{
		hackathon: h,
		auth:      authService,
		cfg:       cfg,
		log:       l.WithField("from", "web"),
	}
	server.app = fiber.New(fiber.Config{
		AppName:               "hackathon",
		DisableStartupMessage: !cfg.Debug,
		UnescapePath:          true,
		Immutable:             true,
		ErrorHandler:          server.handleError,
	})
	server.routes()
	return &server
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

const callerKey = "caller"

func (s *Server) authenticate(ctx *fiber.Ctx) error {
	token := ctx.Cookies("token")
	if header := ctx.Get(fiber.HeaderAuthorization); header != "" {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	account, err := s.auth.Auth(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	ctx.Locals(callerKey, account)
	return ctx.Next()
}

func caller(ctx *fiber.Ctx) domain.Account {
	account, _ := ctx.Locals(callerKey).(domain.Account)
	return account
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	status := statusOf(err)
	log := s.log.WithFields(logrus.Fields{
		"method": ctx.Method(),
		"path":   ctx.Path(),
		"status": status,
	})
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	} else {
		log.WithError(err).Debug("request rejected")
	}
	return ctx.Status(status).JSON(newErrorResponse(err))
}

func (s *Server) handleMe(ctx *fiber.Ctx) error {
	account := caller(ctx)
	resp := fiber.Map{
		"account": account.String(),
		"roles":   roleNames(s.hackathon.Roles(account)),
	}
	if t, ok := s.hackathon.TeamOf(account); ok {
		resp["team"] = convertTeam(t)
	}
	return ctx.JSON(resp)
}

func (s *Server) handleConstants(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"maxMembersPerTeam": domain.MaxMembersPerTeam,
		"minMembersPerTeam": s.hackathon.MinMembersPerTeam(),
		"minTeams":          domain.MinTeams,
		"nextTeamId":        uint64(s.hackathon.NextTeamID()),
		"unclaimedAccount":  domain.UnclaimedAccount.String(),
	})
}

func (s *Server) handleEvents(ctx *fiber.Ctx) error {
	events, err := s.hackathon.Events(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(convertEvents(events))
}

func (s *Server) handlePhase(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"phase": s.hackathon.Phase().String()})
}

func (s *Server) handleAdvancePhase(ctx *fiber.Ctx) error {
	var err error
	switch ctx.Params("phase") {
	case domain.PhaseHacking.String():
		err = s.hackathon.SetPhaseToHacking(ctx.Context(), caller(ctx))
	case domain.PhaseVoting.String():
		err = s.hackathon.SetPhaseToVoting(ctx.Context(), caller(ctx))
	case domain.PhaseFinished.String():
		err = s.hackathon.SetPhaseToFinished(ctx.Context(), caller(ctx))
	default:
		return fiber.NewError(fiber.StatusNotFound, "unknown phase "+ctx.Params("phase"))
	}
	if err != nil {
		return err
	}
	return s.handlePhase(ctx)
}

func (s *Server) handleHasRole(ctx *fiber.Ctx) error {
	req, err := parseRoleRequest(ctx)
	if err != nil {
		return invalid(err)
	}
	return ctx.JSON(fiber.Map{
		"account": req.account.String(),
		"role":    req.role.String(),
		"hasRole": s.hackathon.HasRole(req.role, req.account),
	})
}

func (s *Server) handleRoleMembers(ctx *fiber.Ctx) error {
	role, err := domain.ParseRole(ctx.Params("role"))
	if err != nil {
		return invalid(err)
	}
	members := s.hackathon.RoleMembers(role)
	accounts := make([]string, 0, len(members))
	for _, m := range members {
		accounts = append(accounts, m.String())
	}
	return ctx.JSON(fiber.Map{
		"role":    role.String(),
		"members": accounts,
	})
}

func (s *Server) handleGrantAdmin(ctx *fiber.Ctx) error {
	account, err := accountParam(ctx)
	if err != nil {
		return invalid(err)
	}
	if err := s.hackathon.GrantAdmin(ctx.Context(), caller(ctx), account); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleRevokeAdmin(ctx *fiber.Ctx) error {
	account, err := accountParam(ctx)
	if err != nil {
		return invalid(err)
	}
	if err := s.hackathon.RevokeAdmin(ctx.Context(), caller(ctx), account); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleAssignJuror(ctx *fiber.Ctx) error {
	var req assignJuror
	if err := ctx.BodyParser(&req); err != nil {
		return invalid(err)
	}
	if err := req.Validate(); err != nil {
		return invalid(err)
	}
	err := s.hackathon.AssignJuror(ctx.Context(), caller(ctx), domain.Account(req.Account), req.categoryIDs(), req.Weights)
	if err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleRevokeJuror(ctx *fiber.Ctx) error {
	account, err := accountParam(ctx)
	if err != nil {
		return invalid(err)
	}
	if err := s.hackathon.RevokeJuror(ctx.Context(), caller(ctx), account); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleAllocations(ctx *fiber.Ctx) error {
	account, err := accountParam(ctx)
	if err != nil {
		return invalid(err)
	}
	allocations := s.hackathon.Allocations(account)
	resp := make([]allocationResponse, 0, len(allocations))
	for _, a := range allocations {
		resp = append(resp, allocationResponse{Category: uint64(a.Category), Weight: a.Weight})
	}
	return ctx.JSON(resp)
}

func (s *Server) handleRegisterCommitments(ctx *fiber.Ctx) error {
	var req registerCommitments
	if err := ctx.BodyParser(&req); err != nil {
		return invalid(err)
	}
	hashes, err := req.Parse()
	if err != nil {
		return invalid(err)
	}
	added, err := s.hackathon.AddRegistrationTokens(ctx.Context(), caller(ctx), hashes)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"added": added})
}

func (s *Server) handleCommitmentStatus(ctx *fiber.Ctx) error {
	hash, err := domain.ParseCommitment(ctx.Params("hash"))
	if err != nil {
		return invalid(err)
	}
	holder, ok := s.hackathon.RegistrationStatus(hash)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "unknown commitment "+hash.String())
	}
	return ctx.JSON(fiber.Map{
		"hash":    hash.String(),
		"holder":  holder.String(),
		"claimed": holder != domain.UnclaimedAccount,
	})
}

func (s *Server) handleRedeem(ctx *fiber.Ctx) error {
	var req redeem
	if err := ctx.BodyParser(&req); err != nil {
		return invalid(err)
	}
	if err := req.Validate(); err != nil {
		return invalid(err)
	}
	if err := s.hackathon.JoinHackathon(ctx.Context(), caller(ctx), req.Secret); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleTeams(ctx *fiber.Ctx) error {
	return ctx.JSON(convertTeams(s.hackathon.Teams()))
}

func (s *Server) handleCreateTeam(ctx *fiber.Ctx) error {
	var req named
	if err := ctx.BodyParser(&req); err != nil {
		return invalid(err)
	}
	if err := req.Validate(); err != nil {
		return invalid(err)
	}
	t, err := s.hackathon.CreateTeam(ctx.Context(), caller(ctx), req.Name)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(convertTeam(t))
}

func (s *Server) handleTeam(ctx *fiber.Ctx) error {
	id, err := teamIDParam(ctx)
	if err != nil {
		return invalid(err)
	}
	t, err := s.hackathon.Team(id)
	if err != nil {
		return err
	}
	return ctx.JSON(convertTeam(t))
}

func (s *Server) handleJoinTeam(ctx *fiber.Ctx) error {
	id, err := teamIDParam(ctx)
	if err != nil {
		return invalid(err)
	}
	t, err := s.hackathon.JoinTeam(ctx.Context(), caller(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(convertTeam(t))
}

func (s *Server) handleAccountTeam(ctx *fiber.Ctx) error {
	account, err := accountParam(ctx)
	if err != nil {
		return invalid(err)
	}
	t, ok := s.hackathon.TeamOf(account)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "account "+account.String()+" is not in a team")
	}
	return ctx.JSON(convertTeam(t))
}

func (s *Server) handleOwnedTeam(ctx *fiber.Ctx) error {
	account, err := accountParam(ctx)
	if err != nil {
		return invalid(err)
	}
	t, ok := s.hackathon.TeamOwnedBy(account)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "account "+account.String()+" owns no team")
	}
	return ctx.JSON(convertTeam(t))
}

func (s *Server) handleBalance(ctx *fiber.Ctx) error {
	req, err := parseBalanceRequest(ctx)
	if err != nil {
		return invalid(err)
	}
	balance, err := s.hackathon.BalanceOf(ctx.Context(), req.account, req.class)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"account": req.account.String(),
		"class":   uint64(req.class),
		"balance": balance,
	})
}

func (s *Server) handlePrizes(ctx *fiber.Ctx) error {
	categories := s.hackathon.PrizeCategories()
	resp := make([]prizeResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, convertPrize(c))
	}
	return ctx.JSON(resp)
}

func (s *Server) handleCreatePrize(ctx *fiber.Ctx) error {
	var req named
	if err := ctx.BodyParser(&req); err != nil {
		return invalid(err)
	}
	if err := req.Validate(); err != nil {
		return invalid(err)
	}
	c, err := s.hackathon.CreatePrizeCategory(ctx.Context(), caller(ctx), req.Name)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(convertPrize(c))
}

func (s *Server) handleVote(ctx *fiber.Ctx) error {
	var req vote
	if err := ctx.BodyParser(&req); err != nil {
		return invalid(err)
	}
	if err := req.Validate(); err != nil {
		return invalid(err)
	}
	tally, err := s.hackathon.Vote(ctx.Context(), caller(ctx), domain.TeamID(req.TeamID), ctx.Params("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"teamId": req.TeamID,
		"votes":  tally,
	})
}

func (s *Server) handleWinner(ctx *fiber.Ctx) error {
	id, votes, err := s.hackathon.Winner(ctx.Params("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"teamId": uint64(id),
		"votes":  votes,
	})
}

func (s *Server) handleTally(ctx *fiber.Ctx) error {
	votes, err := s.hackathon.Tally(ctx.Params("name"))
	if err != nil {
		return err
	}
	return ctx.JSON(convertTally(votes))
}
