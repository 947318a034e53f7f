package web

import (
	"github.com/goserg/hackathon/internal/web/webpath"
)

func (s *Server) routes() {
	app := s.app
	app.Use(webpath.Api, s.authenticate)

	app.Get(webpath.ApiMe, s.handleMe)
	app.Get(webpath.ApiConstants, s.handleConstants)
	app.Get(webpath.ApiEvents, s.handleEvents)

	app.Get(webpath.ApiPhase, s.handlePhase)
	app.Post(webpath.ApiPhaseNext, s.handleAdvancePhase)

	app.Get(webpath.ApiRoleMembers, s.handleRoleMembers)
	app.Get(webpath.ApiRole, s.handleHasRole)
	app.Post(webpath.ApiAdmin, s.handleGrantAdmin)
	app.Delete(webpath.ApiAdmin, s.handleRevokeAdmin)
	app.Post(webpath.ApiJurors, s.handleAssignJuror)
	app.Delete(webpath.ApiJuror, s.handleRevokeJuror)
	app.Get(webpath.ApiJurorAllocations, s.handleAllocations)

	app.Post(webpath.ApiCommitments, s.handleRegisterCommitments)
	app.Get(webpath.ApiCommitment, s.handleCommitmentStatus)
	app.Post(webpath.ApiRedeem, s.handleRedeem)

	app.Get(webpath.ApiTeams, s.handleTeams)
	app.Post(webpath.ApiTeams, s.handleCreateTeam)
	app.Get(webpath.ApiTeam, s.handleTeam)
	app.Post(webpath.ApiTeamMembers, s.handleJoinTeam)
	app.Get(webpath.ApiAccountTeam, s.handleAccountTeam)
	app.Get(webpath.ApiAccountOwnTeam, s.handleOwnedTeam)
	app.Get(webpath.ApiAccountBalances, s.handleBalance)

	app.Get(webpath.ApiPrizes, s.handlePrizes)
	app.Post(webpath.ApiPrizes, s.handleCreatePrize)
	app.Post(webpath.ApiPrizeVotes, s.handleVote)
	app.Get(webpath.ApiPrizeWinner, s.handleWinner)
	app.Get(webpath.ApiPrizeTally, s.handleTally)
}
