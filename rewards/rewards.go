// Package rewards awards experience points for qualifying actions. The
// atomic server-side increment is the preferred path; the read-modify-write
// fallback exists for stores where that procedure is unavailable and accepts
// a documented lost-update window.
package rewards

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/databases"
	"github.com/bersihin/bersihin-api/models"
)

// ActionKind names an EXP-earning action
type ActionKind string

// The qualifying actions
const (
	ActionCreateReport     ActionKind = "CREATE_REPORT"
	ActionJoinCampaign     ActionKind = "JOIN_CAMPAIGN"
	ActionCreateCampaign   ActionKind = "CREATE_CAMPAIGN"
	ActionCompleteCampaign ActionKind = "COMPLETE_CAMPAIGN"
)

// Points is the fixed point value per action kind
var Points = map[ActionKind]int64{
	ActionCreateReport:     20,
	ActionJoinCampaign:     50,
	ActionCreateCampaign:   30,
	ActionCompleteCampaign: 100,
}

// Failure sentinels
var (
	ErrUnknownAction    = errors.New("unknown action kind")
	ErrIdentityMismatch = errors.New("authenticated identity does not match target user")
	ErrUpdateBlocked    = errors.New("exp update affected no rows")
)

// awardTimeout bounds a detached fire-and-forget award
const awardTimeout = 10 * time.Second

// Service awards EXP to profiles. Identity, when set, returns the
// authenticated user id carried in the context; the fallback write path uses
// it to refuse mismatched-session writes.
type Service struct {
	PDB      databases.ProfileDatabase
	Identity func(ctx context.Context) (string, bool)
}

// NewService returns a reward service over the given profile database
func NewService(pdb databases.ProfileDatabase) *Service {
	return &Service{PDB: pdb}
}

// Award grants the points for kind to userID and returns the new total.
//
// Fast path: a single server-side increment, race-free and bootstrap-free.
// Fallback: ensure the profile row exists, re-verify the caller identity,
// then read-modify-write. Two concurrent fallback awards can lose one
// increment (last write wins); that is an accepted limitation of the
// fallback and the reason the atomic path is tried first.
func (s *Service) Award(ctx context.Context, userID string, kind ActionKind) (int64, error) {
	amount, ok := Points[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, kind)
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, fmt.Errorf("invalid user id: %w", err)
	}

	profile, err := s.PDB.IncrementExp(ctx, id, amount)
	if err == nil {
		return profile.Exp, nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	zap.S().Warnw("atomic exp increment unavailable, using fallback path",
		"userId", userID,
		"error", err,
	)

	return s.awardFallback(ctx, id, userID, amount)
}

func (s *Service) awardFallback(ctx context.Context, id primitive.ObjectID, userID string, amount int64) (int64, error) {
	current, err := s.ensureProfile(ctx, id)
	if err != nil {
		return 0, err
	}

	if s.Identity != nil {
		authID, ok := s.Identity(ctx)
		if !ok || authID != userID {
			return 0, ErrIdentityMismatch
		}
	}

	newExp := current.Exp + amount
	res, err := s.PDB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"exp":       newExp,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 0 {
		return 0, ErrUpdateBlocked
	}
	return newExp, nil
}

// ensureProfile reads the profile, creating a zero-exp row if none exists.
// Losing the bootstrap race to a concurrent award is success, not an error.
func (s *Service) ensureProfile(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.PDB.FindOne(ctx, bson.M{"_id": id})
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	now := primitive.NewDateTimeFromTime(time.Now())
	insertErr := s.PDB.InsertOne(ctx, models.Profile{
		ID:        id,
		Exp:       0,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if insertErr != nil && !databases.IsDuplicateKey(insertErr) {
		return nil, insertErr
	}

	return s.PDB.FindOne(ctx, bson.M{"_id": id})
}

// AwardAsync grants EXP as a side effect of a primary operation. It never
// blocks and never reports failure to the caller; the reward is secondary to
// whatever just happened and a miss here is logged only. The auth values of
// ctx are kept so the fallback identity check still works.
func (s *Service) AwardAsync(ctx context.Context, userID string, kind ActionKind) {
	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), awardTimeout)
	go func() {
		defer cancel()
		newExp, err := s.Award(detached, userID, kind)
		if err != nil {
			zap.S().Warnw("exp award failed",
				"userId", userID,
				"action", string(kind),
				"error", err,
			)
			return
		}
		zap.S().Debugw("exp awarded",
			"userId", userID,
			"action", string(kind),
			"newExp", newExp,
		)
	}()
}
