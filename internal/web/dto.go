package web

import (
	"errors"
	"sort"
	"time"

	"github.com/goserg/hackathon/internal/domain"
)

var (
	ErrMissingAccount = errors.New("account must not be empty")
	ErrMissingSecret  = errors.New("secret must not be empty")
	ErrMissingName    = errors.New("name must not be empty")
	ErrMissingTeam    = errors.New("teamId must be set")
	ErrNoHashes       = errors.New("at least one hash is required")
	ErrWeightCount    = errors.New("categories and weights must have the same length")
)

type assignJuror struct {
	Account    string   `json:"account"`
	Categories []uint64 `json:"categories"`
	Weights    []uint64 `json:"weights"`
}

func (r assignJuror) Validate() error {
	var err error
	if r.Account == "" {
		err = errors.Join(err, ErrMissingAccount)
	}
	if len(r.Categories) != len(r.Weights) {
		err = errors.Join(err, ErrWeightCount)
	}
	return err
}

func (r assignJuror) categoryIDs() []domain.CategoryID {
	ids := make([]domain.CategoryID, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, domain.CategoryID(c))
	}
	return ids
}

type registerCommitments struct {
	Hashes []string `json:"hashes"`
}

// Parse validates every hash and reports all malformed ones at once.
func (r registerCommitments) Parse() ([]domain.Commitment, error) {
	if len(r.Hashes) == 0 {
		return nil, ErrNoHashes
	}
	var err error
	hashes := make([]domain.Commitment, 0, len(r.Hashes))
	for _, s := range r.Hashes {
		c, parseErr := domain.ParseCommitment(s)
		if parseErr != nil {
			err = errors.Join(err, errors.New("hash "+s+": "+parseErr.Error()))
			continue
		}
		hashes = append(hashes, c)
	}
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

type redeem struct {
	Secret string `json:"secret"`
}

func (r redeem) Validate() error {
	if r.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}

type named struct {
	Name string `json:"name"`
}

func (r named) Validate() error {
	if r.Name == "" {
		return ErrMissingName
	}
	return nil
}

type vote struct {
	TeamID uint64 `json:"teamId"`
}

func (r vote) Validate() error {
	if r.TeamID == 0 {
		return ErrMissingTeam
	}
	return nil
}

type teamResponse struct {
	ID      uint64   `json:"id"`
	Name    string   `json:"name"`
	Owner   string   `json:"owner"`
	Members []string `json:"members"`
}

func convertTeam(t domain.Team) teamResponse {
	members := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, m.String())
	}
	return teamResponse{
		ID:      uint64(t.ID),
		Name:    t.Name,
		Owner:   t.Owner.String(),
		Members: members,
	}
}

func convertTeams(teams []domain.Team) []teamResponse {
	converted := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		converted = append(converted, convertTeam(t))
	}
	return converted
}

type tallyEntry struct {
	TeamID uint64 `json:"teamId"`
	Votes  uint64 `json:"votes"`
}

func convertTally(votes map[domain.TeamID]uint64) []tallyEntry {
	tally := make([]tallyEntry, 0, len(votes))
	for id, v := range votes {
		tally = append(tally, tallyEntry{TeamID: uint64(id), Votes: v})
	}
	sort.Slice(tally, func(i, j int) bool {
		return tally[i].TeamID < tally[j].TeamID
	})
	return tally
}

type prizeResponse struct {
	ID               uint64       `json:"id"`
	Name             string       `json:"name"`
	WinnerTokenClass uint64       `json:"winnerTokenClass"`
	Tally            []tallyEntry `json:"tally"`
}

func convertPrize(c domain.PrizeCategory) prizeResponse {
	return prizeResponse{
		ID:               uint64(c.ID),
		Name:             c.Name,
		WinnerTokenClass: uint64(c.WinnerTokenClass),
		Tally:            convertTally(c.Votes),
	}
}

type allocationResponse struct {
	Category uint64 `json:"category"`
	Weight   uint64 `json:"weight"`
}

type eventResponse struct {
	ID        string            `json:"id"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Caller    string            `json:"caller"`
	Details   map[string]string `json:"details"`
	CreatedAt time.Time         `json:"createdAt"`
}

func convertEvents(events []domain.Event) []eventResponse {
	converted := make([]eventResponse, 0, len(events))
	for _, e := range events {
		details := make(map[string]string, len(e.Details))
		for k, v := range e.Details {
			if k == "secret" {
				continue
			}
			details[k] = v
		}
		converted = append(converted, eventResponse{
			ID:        e.ID.String(),
			Seq:       e.Seq,
			Kind:      string(e.Kind),
			Caller:    e.Caller.String(),
			Details:   details,
			CreatedAt: e.CreatedAt,
		})
	}
	return converted
}

func roleNames(roles []domain.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return names
}
