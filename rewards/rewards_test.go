package rewards_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	mocksdb "github.com/bersihin/bersihin-api/databases/mocks"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/rewards"
)

var errNoAtomicInc = errors.New("command findAndModify is unsupported")

func identityFor(userID string) func(ctx context.Context) (string, bool) {
	return func(context.Context) (string, bool) {
		return userID, true
	}
}

func TestAwardFastPath(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	pdb.On("IncrementExp", mock.Anything, id, int64(50)).
		Return(&models.Profile{ID: id, Exp: 50}, nil)

	svc := rewards.NewService(pdb)
	newExp, err := svc.Award(context.Background(), id.Hex(), rewards.ActionJoinCampaign)

	assert.NoError(t, err)
	assert.Equal(t, int64(50), newExp)
	pdb.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
	pdb.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestAwardUnknownAction(t *testing.T) {
	svc := rewards.NewService(&mocksdb.ProfileDatabase{})

	_, err := svc.Award(context.Background(), primitive.NewObjectID().Hex(), rewards.ActionKind("DELETE_REPORT"))

	assert.ErrorIs(t, err, rewards.ErrUnknownAction)
}

func TestAwardInvalidUserID(t *testing.T) {
	svc := rewards.NewService(&mocksdb.ProfileDatabase{})

	_, err := svc.Award(context.Background(), "not-a-hex-id", rewards.ActionCreateReport)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid user id")
}

func TestAwardFallbackReadModifyWrite(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	pdb.On("IncrementExp", mock.Anything, id, int64(20)).Return(nil, errNoAtomicInc)
	pdb.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Profile{ID: id, Exp: 20}, nil)
	pdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	svc := rewards.NewService(pdb)
	svc.Identity = identityFor(id.Hex())
	newExp, err := svc.Award(context.Background(), id.Hex(), rewards.ActionCreateReport)

	assert.NoError(t, err)
	assert.Equal(t, int64(40), newExp)
}

func TestAwardFallbackBootstrapsMissingProfile(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	pdb.On("IncrementExp", mock.Anything, id, int64(30)).Return(nil, errNoAtomicInc)
	pdb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	pdb.On("InsertOne", mock.Anything, mock.Anything).Return(nil).Once()
	pdb.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Profile{ID: id, Exp: 0}, nil).Once()
	pdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	svc := rewards.NewService(pdb)
	svc.Identity = identityFor(id.Hex())
	newExp, err := svc.Award(context.Background(), id.Hex(), rewards.ActionCreateCampaign)

	assert.NoError(t, err)
	assert.Equal(t, int64(30), newExp)
	pdb.AssertCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestAwardFallbackLosingBootstrapRaceIsFine(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}

	pdb.On("IncrementExp", mock.Anything, id, int64(20)).Return(nil, errNoAtomicInc)
	pdb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments).Once()
	pdb.On("InsertOne", mock.Anything, mock.Anything).Return(dupErr).Once()
	pdb.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Profile{ID: id, Exp: 20}, nil).Once()
	pdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	svc := rewards.NewService(pdb)
	svc.Identity = identityFor(id.Hex())
	newExp, err := svc.Award(context.Background(), id.Hex(), rewards.ActionCreateReport)

	assert.NoError(t, err)
	assert.Equal(t, int64(40), newExp)
}

func TestAwardFallbackIdentityMismatch(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	pdb.On("IncrementExp", mock.Anything, id, int64(50)).Return(nil, errNoAtomicInc)
	pdb.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Profile{ID: id, Exp: 0}, nil)

	svc := rewards.NewService(pdb)
	svc.Identity = identityFor(primitive.NewObjectID().Hex())
	_, err := svc.Award(context.Background(), id.Hex(), rewards.ActionJoinCampaign)

	assert.ErrorIs(t, err, rewards.ErrIdentityMismatch)
	pdb.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestAwardFallbackNoIdentityHookSkipsCheck(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	pdb.On("IncrementExp", mock.Anything, id, int64(100)).Return(nil, errNoAtomicInc)
	pdb.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Profile{ID: id, Exp: 0}, nil)
	pdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	svc := rewards.NewService(pdb)
	newExp, err := svc.Award(context.Background(), id.Hex(), rewards.ActionCompleteCampaign)

	assert.NoError(t, err)
	assert.Equal(t, int64(100), newExp)
}

func TestAwardFallbackUpdateBlocked(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	pdb.On("IncrementExp", mock.Anything, id, int64(20)).Return(nil, errNoAtomicInc)
	pdb.On("FindOne", mock.Anything, mock.Anything).
		Return(&models.Profile{ID: id, Exp: 0}, nil)
	pdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil)

	svc := rewards.NewService(pdb)
	svc.Identity = identityFor(id.Hex())
	_, err := svc.Award(context.Background(), id.Hex(), rewards.ActionCreateReport)

	assert.ErrorIs(t, err, rewards.ErrUpdateBlocked)
}

func TestAwardCancelledContextIsNotAFallbackTrigger(t *testing.T) {
	pdb := &mocksdb.ProfileDatabase{}
	id := primitive.NewObjectID()

	ctx, cancel := context.WithCancel(context.Background())
	pdb.On("IncrementExp", mock.Anything, id, int64(20)).Run(func(mock.Arguments) {
		cancel()
	}).Return(nil, context.Canceled)

	svc := rewards.NewService(pdb)
	_, err := svc.Award(ctx, id.Hex(), rewards.ActionCreateReport)

	assert.ErrorIs(t, err, context.Canceled)
	pdb.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
}
