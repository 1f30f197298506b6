package bolt

import (
	"context"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/go-errors/errors"
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
func (ps *profileService) FindByEmail(_ context.Context, email string) (*codebinge.Profile, error) {
	var p codebinge.Profile
	if err := ps.db.stormDB.One("Email", email, &p); err != nil {
		if errors.Is(err, storm.ErrNotFound) {
			return nil, codebinge.Errorf(codebinge.ErrNotFound, "Profile not found")
		}
		return nil, unavailable("bolt.FindByEmail", errors.Errorf("failed to find by email: %v", err))
	}

	return &p, nil
}

// Save inserts or replaces the profile for p.Email
func (ps *profileService) Save(ctx context.Context, p *codebinge.Profile) error {
	if err := codebinge.ValidateEmail(p.Email); err != nil {
		return err
	}

	existing, err := ps.FindByEmail(ctx, p.Email)
	switch {
	case err == nil:
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	case codebinge.ErrorCode(err) == codebinge.ErrNotFound:
		p.ID = uuid.NewV4().String()
		p.CreatedAt = time.Now().UTC()
	default:
		return err
	}

	if err := ps.db.stormDB.Save(p); err != nil {
		return unavailable("bolt.Save", errors.Errorf("failed to save: %v", err))
	}

	return nil
}
