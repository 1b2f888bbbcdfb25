package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bersihin/bersihin-api/databases"
	mocksdb "github.com/bersihin/bersihin-api/databases/mocks"
	"github.com/bersihin/bersihin-api/models"
)

func TestProfileDatabase_IncrementExpReturnsUpdatedRow(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	pID := primitive.NewObjectID()
	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Profile)
		(*arg).ID = pID
		(*arg).Exp = 70
	})
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "profiles").Return(conn)

	profileDatabase := databases.NewProfileDatabase(db)
	profile, err := profileDatabase.IncrementExp(context.Background(), pID, 50)

	assert.NoError(t, err)
	assert.Equal(t, int64(70), profile.Exp)
}

func TestProfileDatabase_IncrementExpError(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(errors.New("command findAndModify is unsupported"))
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "profiles").Return(conn)

	profileDatabase := databases.NewProfileDatabase(db)
	profile, err := profileDatabase.IncrementExp(context.Background(), primitive.NewObjectID(), 50)

	assert.Error(t, err)
	assert.Nil(t, profile)
}
