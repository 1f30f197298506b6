package codebinge

import (
	"context"
	"time"
)

// ProfileService is the interface that wraps methods related to user profiles
type ProfileService interface {
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}

// Profile links an account to its judge usernames
type Profile struct {
	ID                 string    `storm:"id" json:"id"`
	Email              string    `storm:"unique" json:"email"`
	Username           string    `json:"username"`
	LeetCodeUsername   string    `json:"leetcode_username,omitempty"`
	CodeforcesUsername string    `json:"codeforces_username,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type ProfileRequest struct {
	Username           string `json:"username"`
	LeetCodeUsername   string `json:"leetcode_username"`
	CodeforcesUsername string `json:"codeforces_username"`
}
