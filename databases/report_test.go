package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bersihin/bersihin-api/databases"
	mocksdb "github.com/bersihin/bersihin-api/databases/mocks"
	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/models"
)

func TestReportDatabase_FindOne(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	rID := primitive.NewObjectID()
	singleResultHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Report)
		(*arg).ID = rID
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "reports").Return(conn)

	reportDatabase := databases.NewReportDatabase(db)
	report, err := reportDatabase.FindOne(context.Background(), bson.M{"_id": rID})

	assert.NoError(t, err)
	assert.Equal(t, rID, report.ID)
}

func TestReportDatabase_FindOneError(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	singleResultHelper := &mocksdb.SingleResultHelper{}

	singleResultHelper.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.On("Collection", "reports").Return(conn)

	reportDatabase := databases.NewReportDatabase(db)
	report, err := reportDatabase.FindOne(context.Background(), bson.M{"_id": "nope"})

	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestReportDatabase_Find(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	cursorHelper := &mocksdb.CursorHelper{}

	cursorHelper.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Report)
		*arg = []models.Report{{UserID: "user-1"}, {UserID: "user-2"}}
	})
	conn.On("Find", mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.On("Collection", "reports").Return(conn)

	reportDatabase := databases.NewReportDatabase(db)
	reports, err := reportDatabase.Find(context.Background(), bson.D{})

	assert.NoError(t, err)
	assert.Len(t, reports, 2)
	assert.Equal(t, "user-1", reports[0].UserID)
}

func TestReportDatabase_InsertOne(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	insertResult := &mocksdb.InsertOneResultHelper{}

	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult, nil)
	db.On("Collection", "reports").Return(conn)

	reportDatabase := databases.NewReportDatabase(db)
	err := reportDatabase.InsertOne(context.Background(), models.Report{UserID: "user-1"})

	assert.NoError(t, err)
	conn.AssertCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestReportDatabase_NearbyAggregateError(t *testing.T) {
	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}

	conn.On("Aggregate", mock.Anything, mock.Anything).Return(nil, errors.New("no geo index"))
	db.On("Collection", "reports").Return(conn)

	reportDatabase := databases.NewReportDatabase(db)
	reports, err := reportDatabase.Nearby(context.Background(), geo.Coordinate{Latitude: -7.79, Longitude: 110.36}, 5, 50)

	assert.Error(t, err)
	assert.Nil(t, reports)
}
