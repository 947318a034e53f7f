package web

import (
	"testing"

	"github.com/goserg/hackathon/internal/commitment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_assignJuror_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     assignJuror
		wantErr []error
	}{
		{
			name: "valid",
			req: assignJuror{
				Account:    "0xjuror",
				Categories: []uint64{1, 2},
				Weights:    []uint64{3, 3},
			},
		},
		{
			name: "no allocations",
			req:  assignJuror{Account: "0xjuror"},
		},
		{
			name: "missing account",
			req: assignJuror{
				Categories: []uint64{1},
				Weights:    []uint64{3},
			},
			wantErr: []error{ErrMissingAccount},
		},
		{
			name: "length mismatch",
			req: assignJuror{
				Account:    "0xjuror",
				Categories: []uint64{1, 2},
				Weights:    []uint64{3},
			},
			wantErr: []error{ErrWeightCount},
		},
		{
			name: "everything wrong",
			req: assignJuror{
				Categories: []uint64{1},
			},
			wantErr: []error{ErrMissingAccount, ErrWeightCount},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func Test_registerCommitments_Parse(t *testing.T) {
	foo := commitment.Hash("foo")

	hashes, err := registerCommitments{Hashes: []string{foo.String()}}.Parse()
	require.NoError(t, err)
	assert.Equal(t, foo, hashes[0])

	_, err = registerCommitments{}.Parse()
	assert.ErrorIs(t, err, ErrNoHashes)

	_, err = registerCommitments{Hashes: []string{"0xzz", foo.String(), "0x01"}}.Parse()
	require.Error(t, err)
	assert.Len(t, unwrap(err), 2)
}

func Test_vote_Validate(t *testing.T) {
	assert.ErrorIs(t, vote{}.Validate(), ErrMissingTeam)
	assert.NoError(t, vote{TeamID: 1}.Validate())
	assert.ErrorIs(t, named{}.Validate(), ErrMissingName)
	assert.ErrorIs(t, redeem{}.Validate(), ErrMissingSecret)
}
