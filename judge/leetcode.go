package judge

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/quantonganh/codebinge"
)

const leetcodeQuery = `
query userPublicProfile($username: String!) {
  matchedUser(username: $username) {
    username
    submitStats: submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
        submissions
      }
    }
    profile {
      ranking
      reputation
      starRating
    }
  }
  recentAcSubmissionList(username: $username, limit: 20) {
    titleSlug
    timestamp
  }
}`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type leetcodeResponse struct {
	Data struct {
		MatchedUser *struct {
			Username    string `json:"username"`
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty  string `json:"difficulty"`
					Count       int    `json:"count"`
					Submissions int    `json:"submissions"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
			Profile struct {
				Ranking int `json:"ranking"`
			} `json:"profile"`
		} `json:"matchedUser"`
		RecentAcSubmissionList []leetcodeSubmission `json:"recentAcSubmissionList"`
	} `json:"data"`
}

type leetcodeSubmission struct {
	TitleSlug string `json:"titleSlug"`
	Timestamp string `json:"timestamp"`
}

// LeetCodeStats fetches accepted counts per difficulty for username
func (c *Client) LeetCodeStats(ctx context.Context, username string) (*codebinge.LeetCodeStats, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errUsernameRequired
	}

	body, err := json.Marshal(graphQLRequest{
		Query:     leetcodeQuery,
		Variables: map[string]interface{}{"username": username},
	})
	if err != nil {
		return nil, err
	}

	var resp leetcodeResponse
	err = c.do(ctx, "judge.LeetCodeStats", func() error {
		resp = leetcodeResponse{}
		_, err := c.roundTrip(ctx, http.MethodPost, strings.TrimRight(c.leetcodeURL, "/")+"/graphql", body, &resp)
		return err
	})
	if err != nil {
		return nil, err
	}

	user := resp.Data.MatchedUser
	if user == nil {
		return nil, codebinge.Errorf(codebinge.ErrNotFound, "LeetCode user %s not found", username)
	}

	stats := &codebinge.LeetCodeStats{
		Username: username,
		Ranking:  user.Profile.Ranking,
	}
	for _, s := range user.SubmitStats.AcSubmissionNum {
		switch s.Difficulty {
		case "Easy":
			stats.EasySolved = s.Count
		case "Medium":
			stats.MediumSolved = s.Count
		case "Hard":
			stats.HardSolved = s.Count
		}
	}
	stats.TotalSolved = stats.EasySolved + stats.MediumSolved + stats.HardSolved

	today := startOfDay(c.now()).Unix()
	solvedToday := lo.FilterMap(resp.Data.RecentAcSubmissionList, func(s leetcodeSubmission, _ int) (string, bool) {
		ts, err := strconv.ParseInt(s.Timestamp, 10, 64)
		return s.TitleSlug, err == nil && ts >= today
	})
	stats.TodaySolved = len(lo.Uniq(solvedToday))

	return stats, nil
}
