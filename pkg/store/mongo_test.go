package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/dmitrymomot/taskd/pkg/store"
)

// MockMongoCollection is a mock implementation of the MongoCollection interface
type MockMongoCollection struct {
	mock.Mock
}

func (m *MockMongoCollection) InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
}

// MockMongoClient is a mock implementation of the MongoClient interface
type MockMongoClient struct {
	mock.Mock
}

func (m *MockMongoClient) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMongoClient) Disconnect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func dataOf(t *testing.T, document any) any {
	t.Helper()

	doc, ok := document.(bson.D)
	require.True(t, ok, "document must be bson.D")
	require.Len(t, doc, 2)
	assert.Equal(t, "data", doc[0].Key)
	assert.Equal(t, "created_at", doc[1].Key)
	return doc[0].Value
}

func TestMongoStore_Store(t *testing.T) {
	t.Parallel()

	t.Run("object payload becomes a document", func(t *testing.T) {
		t.Parallel()

		coll := new(MockMongoCollection)
		var inserted any
		coll.On("InsertOne", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { inserted = args.Get(1) }).
			Return(&mongo.InsertOneResult{InsertedID: bson.NewObjectID()}, nil).Once()

		s := store.NewMongoStore(new(MockMongoClient), coll)
		require.NoError(t, s.Store(context.Background(), json.RawMessage(`{"user":"ann","n":2}`)))

		data, ok := dataOf(t, inserted).(bson.D)
		require.True(t, ok)
		require.Len(t, data, 2)
		assert.Equal(t, "user", data[0].Key)
		assert.Equal(t, "ann", data[0].Value)
		assert.Equal(t, "n", data[1].Key)
	})

	t.Run("scalar payload is stored as value", func(t *testing.T) {
		t.Parallel()

		coll := new(MockMongoCollection)
		var inserted any
		coll.On("InsertOne", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { inserted = args.Get(1) }).
			Return(&mongo.InsertOneResult{}, nil).Once()

		s := store.NewMongoStore(new(MockMongoClient), coll)
		require.NoError(t, s.Store(context.Background(), json.RawMessage(`"hello"`)))
		assert.Equal(t, "hello", dataOf(t, inserted))
	})

	t.Run("insert error", func(t *testing.T) {
		t.Parallel()

		insertErr := errors.New("duplicate key")
		coll := new(MockMongoCollection)
		coll.On("InsertOne", mock.Anything, mock.Anything).Return(nil, insertErr).Once()

		err := store.NewMongoStore(new(MockMongoClient), coll).Store(context.Background(), json.RawMessage(`{}`))
		assert.ErrorIs(t, err, store.ErrStoreFailed)
		assert.ErrorIs(t, err, insertErr)
	})

	t.Run("invalid payload", func(t *testing.T) {
		t.Parallel()

		coll := new(MockMongoCollection)
		err := store.NewMongoStore(new(MockMongoClient), coll).Store(context.Background(), json.RawMessage(`{`))
		assert.ErrorIs(t, err, store.ErrStoreFailed)
		coll.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
	})
}

func TestMongoStore_HealthcheckAndClose(t *testing.T) {
	t.Parallel()

	client := new(MockMongoClient)
	client.On("Ping", mock.Anything).Return(errors.New("server selection timeout")).Once()
	client.On("Disconnect", mock.Anything).Return(nil).Once()

	s := store.NewMongoStore(client, new(MockMongoCollection))
	assert.ErrorIs(t, s.Healthcheck(context.Background()), store.ErrHealthcheckFailed)
	require.NoError(t, s.Close(context.Background()))
	client.AssertExpectations(t)
}

func TestConnectMongo_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := store.ConnectMongo(context.Background(), store.MongoConfig{})
	assert.ErrorIs(t, err, store.ErrInvalidConfig)
}
