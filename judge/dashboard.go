package judge

import (
	"context"

	"github.com/quantonganh/codebinge"
)

// Aggregate merges per-platform stats; a nil platform contributes nothing.
func Aggregate(lc *codebinge.LeetCodeStats, cf *codebinge.CodeforcesStats) *codebinge.Dashboard {
	d := &codebinge.Dashboard{
		LeetCode:   lc,
		Codeforces: cf,
	}
	if lc != nil {
		d.TotalSolved += lc.TotalSolved
		d.TodaySolved += lc.TodaySolved
	}
	if cf != nil {
		d.TotalSolved += cf.SolvedCount
		d.TodaySolved += cf.TodaySolved
	}
	return d
}

type dashboardService struct {
	judge codebinge.JudgeService
}

func NewDashboardService(judge codebinge.JudgeService) codebinge.DashboardService {
	return &dashboardService{
		judge: judge,
	}
}

// Dashboard fetches every platform with a username; one platform failing leaves the other intact.
func (s *dashboardService) Dashboard(ctx context.Context, leetcodeUsername, codeforcesHandle string) (*codebinge.Dashboard, error) {
	if leetcodeUsername == "" && codeforcesHandle == "" {
		return nil, errUsernameRequired
	}

	var (
		lc   *codebinge.LeetCodeStats
		cf   *codebinge.CodeforcesStats
		errs = make(map[string]string)
	)

	if leetcodeUsername != "" {
		stats, err := s.judge.LeetCodeStats(ctx, leetcodeUsername)
		if err != nil {
			errs[codebinge.PlatformLeetCode] = codebinge.ErrorMessage(err)
		}
		lc = stats
	}

	if codeforcesHandle != "" {
		stats, err := s.judge.CodeforcesStats(ctx, codeforcesHandle)
		if err != nil {
			errs[codebinge.PlatformCodeforces] = codebinge.ErrorMessage(err)
		}
		cf = stats
	}

	d := Aggregate(lc, cf)
	if len(errs) > 0 {
		d.Errors = errs
	}
	return d, nil
}
