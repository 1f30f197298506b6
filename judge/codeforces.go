package judge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/quantonganh/codebinge"
)

const submissionsWindow = 100

var errUsernameRequired = codebinge.Errorf(codebinge.ErrInvalid, "Username is required")

type codeforcesEnvelope struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

type codeforcesUserInfo struct {
	codeforcesEnvelope
	Result []struct {
		Handle string `json:"handle"`
		Rating int    `json:"rating"`
		Rank   string `json:"rank"`
	} `json:"result"`
}

type codeforcesSubmission struct {
	CreationTimeSeconds int64  `json:"creationTimeSeconds"`
	Verdict             string `json:"verdict"`
	Problem             struct {
		ContestID int    `json:"contestId"`
		Index     string `json:"index"`
	} `json:"problem"`
}

type codeforcesUserStatus struct {
	codeforcesEnvelope
	Result []codeforcesSubmission `json:"result"`
}

// CodeforcesStats fetches rating and distinct accepted problems among the latest submissions of handle
func (c *Client) CodeforcesStats(ctx context.Context, handle string) (*codebinge.CodeforcesStats, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, errUsernameRequired
	}

	base := strings.TrimRight(c.codeforcesURL, "/")

	var info codeforcesUserInfo
	infoURL := fmt.Sprintf("%s/api/user.info?handles=%s", base, url.QueryEscape(handle))
	if err := c.codeforcesCall(ctx, "judge.CodeforcesStats", infoURL, &info, &info.codeforcesEnvelope); err != nil {
		return nil, err
	}
	if len(info.Result) == 0 {
		return nil, codebinge.Errorf(codebinge.ErrNotFound, "Codeforces user %s not found", handle)
	}

	var status codeforcesUserStatus
	statusURL := fmt.Sprintf("%s/api/user.status?handle=%s&from=1&count=%d", base, url.QueryEscape(handle), submissionsWindow)
	if err := c.codeforcesCall(ctx, "judge.CodeforcesStats", statusURL, &status, &status.codeforcesEnvelope); err != nil {
		return nil, err
	}

	user := info.Result[0]
	today := startOfDay(c.now()).Unix()

	return &codebinge.CodeforcesStats{
		Handle:      handle,
		Rating:      user.Rating,
		Rank:        user.Rank,
		SolvedCount: len(solvedProblems(status.Result, 0)),
		TodaySolved: len(solvedProblems(status.Result, today)),
	}, nil
}

func (c *Client) codeforcesCall(ctx context.Context, op, endpoint string, out interface{}, envelope *codeforcesEnvelope) error {
	return c.do(ctx, op, func() error {
		if _, err := c.roundTrip(ctx, http.MethodGet, endpoint, nil, out, http.StatusBadRequest); err != nil {
			return err
		}
		if envelope.Status != "OK" {
			return codebinge.Errorf(codebinge.ErrNotFound, "Codeforces: %s", envelope.Comment)
		}
		return nil
	})
}

// solvedProblems returns the distinct contestId-index keys of accepted submissions made at or after since.
func solvedProblems(submissions []codeforcesSubmission, since int64) []string {
	return lo.Uniq(lo.FilterMap(submissions, func(s codeforcesSubmission, _ int) (string, bool) {
		key := fmt.Sprintf("%d-%s", s.Problem.ContestID, s.Problem.Index)
		return key, s.Verdict == "OK" && s.CreationTimeSeconds >= since
	}))
}
