package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bersihin/bersihin-api/databases"
	mocksdb "github.com/bersihin/bersihin-api/databases/mocks"
)

func TestParticipantDatabase_Exists(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	db.On("Collection", "campaign_participants").Return(conn)

	participantDatabase := databases.NewParticipantDatabase(db)
	joined, err := participantDatabase.Exists(context.Background(), primitive.NewObjectID(), "user-1")

	assert.NoError(t, err)
	assert.True(t, joined)
}

func TestParticipantDatabase_ExistsNotJoined(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.On("Collection", "campaign_participants").Return(conn)

	participantDatabase := databases.NewParticipantDatabase(db)
	joined, err := participantDatabase.Exists(context.Background(), primitive.NewObjectID(), "user-1")

	assert.NoError(t, err)
	assert.False(t, joined)
}

func TestParticipantDatabase_ExistsError(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))
	db.On("Collection", "campaign_participants").Return(conn)

	participantDatabase := databases.NewParticipantDatabase(db)
	joined, err := participantDatabase.Exists(context.Background(), primitive.NewObjectID(), "user-1")

	assert.Error(t, err)
	assert.False(t, joined)
}

func TestParticipantDatabase_DeleteOneReturnsDeletedCount(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{DeletedCount: 1}, nil)
	db.On("Collection", "campaign_participants").Return(conn)

	participantDatabase := databases.NewParticipantDatabase(db)
	deleted, err := participantDatabase.DeleteOne(context.Background(), primitive.NewObjectID(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestParticipantDatabase_DeleteOneMissRowIsNotAnError(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{DeletedCount: 0}, nil)
	db.On("Collection", "campaign_participants").Return(conn)

	participantDatabase := databases.NewParticipantDatabase(db)
	deleted, err := participantDatabase.DeleteOne(context.Background(), primitive.NewObjectID(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
