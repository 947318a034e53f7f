package sqlite

import (
	"encoding/json"

	"github.com/goserg/hackathon/gen/model"
	"github.com/goserg/hackathon/internal/domain"

	"github.com/google/uuid"
)

func convertMintFromDomain(m domain.Mint) model.Balances {
	return model.Balances{
		Account: m.Account.String(),
		Class:   int64(m.Class),
		Amount:  int64(m.Amount),
	}
}

func convertEventFromDomain(event domain.Event) (model.Events, error) {
	details, err := json.Marshal(event.Details)
	if err != nil {
		return model.Events{}, err
	}
	return model.Events{
		ID:        event.ID.String(),
		Seq:       int64(event.Seq),
		Kind:      string(event.Kind),
		Caller:    event.Caller.String(),
		Details:   string(details),
		CreatedAt: event.CreatedAt.UTC(),
	}, nil
}

func convertEventsToDomain(events []model.Events) ([]domain.Event, error) {
	converted := make([]domain.Event, 0, len(events))
	for _, event := range events {
		id, err := uuid.Parse(event.ID)
		if err != nil {
			return nil, err
		}
		var details map[string]string
		if err := json.Unmarshal([]byte(event.Details), &details); err != nil {
			return nil, err
		}
		converted = append(converted, domain.Event{
			ID:        id,
			Seq:       uint64(event.Seq),
			Kind:      domain.EventKind(event.Kind),
			Caller:    domain.Account(event.Caller),
			Details:   details,
			CreatedAt: event.CreatedAt,
		})
	}
	return converted, nil
}
