package service

import (
	"strconv"
	"strings"

	"github.com/goserg/hackathon/internal/domain"
)

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatUints(values []uint64) string {
	s := make([]string, 0, len(values))
	for _, v := range values {
		s = append(s, formatUint(v))
	}
	return strings.Join(s, ",")
}

func parseUints(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	values := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseCommitments(s string) ([]domain.Commitment, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	hashes := make([]domain.Commitment, 0, len(parts))
	for _, p := range parts {
		c, err := domain.ParseCommitment(p)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, c)
	}
	return hashes, nil
}
