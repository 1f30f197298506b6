package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/quantonganh/codebinge"
)

// JudgeService is a testify mock of codebinge.JudgeService
type JudgeService struct {
	mock.Mock
}

var _ codebinge.JudgeService = (*JudgeService)(nil)

func (m *JudgeService) LeetCodeStats(ctx context.Context, username string) (*codebinge.LeetCodeStats, error) {
	args := m.Called(username)
	stats, _ := args.Get(0).(*codebinge.LeetCodeStats)
	return stats, args.Error(1)
}

func (m *JudgeService) CodeforcesStats(ctx context.Context, handle string) (*codebinge.CodeforcesStats, error) {
	args := m.Called(handle)
	stats, _ := args.Get(0).(*codebinge.CodeforcesStats)
	return stats, args.Error(1)
}
