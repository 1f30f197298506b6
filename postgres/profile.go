package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/quantonganh/codebinge"
)

type profileService struct {
	db *DB
}

func NewProfileService(db *DB) codebinge.ProfileService {
	return &profileService{
		db: db,
	}
}

// FindByEmail finds a profile by account email
func (ps *profileService) FindByEmail(ctx context.Context, email string) (*codebinge.Profile, error) {
	var p codebinge.Profile
	err := ps.db.sqlDB.QueryRowContext(ctx, `
		SELECT id, email, username, COALESCE(leetcode_username, ''), COALESCE(codeforces_username, ''), created_at
		FROM users WHERE email = $1`, email).
		Scan(&p.ID, &p.Email, &p.Username, &p.LeetCodeUsername, &p.CodeforcesUsername, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, codebinge.Errorf(codebinge.ErrNotFound, "Profile not found")
		}
		return nil, unavailable("postgres.FindByEmail", errors.Wrap(err, "select profile"))
	}
	return &p, nil
}

// Save upserts a profile keyed by email
func (ps *profileService) Save(ctx context.Context, p *codebinge.Profile) error {
	if err := codebinge.ValidateEmail(p.Email); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewV4().String()
	}

	err := ps.db.sqlDB.QueryRowContext(ctx, `
		INSERT INTO users (id, email, username, leetcode_username, codeforces_username, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NOW())
		ON CONFLICT (email) DO UPDATE SET
			username = EXCLUDED.username,
			leetcode_username = EXCLUDED.leetcode_username,
			codeforces_username = EXCLUDED.codeforces_username
		RETURNING id, created_at`,
		p.ID, p.Email, p.Username, p.LeetCodeUsername, p.CodeforcesUsername).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return unavailable("postgres.Save", errors.Wrap(err, "upsert profile"))
	}
	return nil
}
