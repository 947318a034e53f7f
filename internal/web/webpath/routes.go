package webpath

const (
	Api = "/api"

	ApiMe        = Api + "/me"
	ApiConstants = Api + "/constants"
	ApiEvents    = Api + "/events"

	ApiPhase     = Api + "/phase"
	ApiPhaseNext = ApiPhase + "/:phase"

	ApiRoleMembers      = Api + "/roles/:role"
	ApiRole             = ApiRoleMembers + "/:account"
	ApiAdmin            = Api + "/admins/:account"
	ApiJurors           = Api + "/jurors"
	ApiJuror            = ApiJurors + "/:account"
	ApiJurorAllocations = ApiJuror + "/allocations"

	ApiCommitments = Api + "/registration/commitments"
	ApiCommitment  = ApiCommitments + "/:hash"
	ApiRedeem      = Api + "/registration/redeem"

	ApiTeams           = Api + "/teams"
	ApiTeam            = ApiTeams + "/:id"
	ApiTeamMembers     = ApiTeam + "/members"
	ApiAccountTeam     = Api + "/accounts/:account/team"
	ApiAccountOwnTeam  = Api + "/accounts/:account/owned-team"
	ApiAccountBalances = Api + "/tokens/:account/:class"

	ApiPrizes      = Api + "/prizes"
	ApiPrizeVotes  = ApiPrizes + "/:name/votes"
	ApiPrizeWinner = ApiPrizes + "/:name/winner"
	ApiPrizeTally  = ApiPrizes + "/:name/tally"
)
