package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoCollection is the subset of *mongo.Collection used by MongoStore.
type MongoCollection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

// MongoClient is the subset of *mongo.Client used by MongoStore.
type MongoClient interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
	Disconnect(ctx context.Context) error
}

// MongoStore inserts one document per payload: {data: <payload>, created_at: <time>}.
type MongoStore struct {
	client MongoClient
	coll   MongoCollection
	now    func() time.Time
}

func NewMongoStore(client MongoClient, coll MongoCollection) *MongoStore {
	return &MongoStore{client: client, coll: coll, now: time.Now}
}

func (s *MongoStore) Store(ctx context.Context, payload json.RawMessage) error {
	data, err := payloadToBSON(payload)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	doc := bson.D{
		{Key: "data", Value: data},
		{Key: "created_at", Value: s.now().UTC()},
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *MongoStore) Healthcheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// payloadToBSON keeps objects as ordered documents, including extended JSON
// values such as {"$date": ...}; any other JSON value is stored as decoded.
func payloadToBSON(payload json.RawMessage) (any, error) {
	var probe any
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	if _, ok := probe.(map[string]any); ok {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(payload, false, &doc); err != nil {
			return nil, fmt.Errorf("decode extended json: %w", err)
		}
		return doc, nil
	}
	return probe, nil
}

// ConnectMongo creates a client and pings the primary, retrying on failure.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, fmt.Errorf("%w: MONGODB_URL is required", ErrInvalidConfig)
	}

	opts := options.Client().
		ApplyURI(cfg.ConnectionURL).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime)

	var client *mongo.Client
	err := withRetry(ctx, cfg.RetryAttempts, cfg.RetryInterval, func(ctx context.Context) error {
		c, err := mongo.Connect(opts)
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(ctx)
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrConnectFailed, err)
	}

	return client, nil
}
