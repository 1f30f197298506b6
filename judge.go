package codebinge

import "context"

// Judge platforms
const (
	PlatformLeetCode   = "leetcode"
	PlatformCodeforces = "codeforces"
)

// LeetCodeStats is a user's accepted-problem breakdown on LeetCode
type LeetCodeStats struct {
	Username     string `json:"username"`
	EasySolved   int    `json:"easySolved"`
	MediumSolved int    `json:"mediumSolved"`
	HardSolved   int    `json:"hardSolved"`
	TotalSolved  int    `json:"totalSolved"`
	Ranking      int    `json:"ranking,omitempty"`
	TodaySolved  int    `json:"todaySolved"`
}

// CodeforcesStats is a user's rating and solved count on Codeforces
type CodeforcesStats struct {
	Handle      string `json:"handle"`
	Rating      int    `json:"rating,omitempty"`
	Rank        string `json:"rank,omitempty"`
	SolvedCount int    `json:"solvedCount"`
	TodaySolved int    `json:"todaySolved"`
}

// Dashboard merges both platforms into unified totals
type Dashboard struct {
	LeetCode    *LeetCodeStats    `json:"leetcode,omitempty"`
	Codeforces  *CodeforcesStats  `json:"codeforces,omitempty"`
	TotalSolved int               `json:"totalSolved"`
	TodaySolved int               `json:"todaySolved"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// LeetCodeService fetches LeetCode statistics
type LeetCodeService interface {
	LeetCodeStats(ctx context.Context, username string) (*LeetCodeStats, error)
}

// CodeforcesService fetches Codeforces statistics
type CodeforcesService interface {
	CodeforcesStats(ctx context.Context, handle string) (*CodeforcesStats, error)
}

// JudgeService is the interface that wraps both judge platforms
type JudgeService interface {
	LeetCodeService
	CodeforcesService
}

// DashboardService merges statistics from every configured platform
type DashboardService interface {
	Dashboard(ctx context.Context, leetcodeUsername, codeforcesHandle string) (*Dashboard, error)
}
