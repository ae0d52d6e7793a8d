package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	errs "github.com/matzehuels/barchart/pkg/errors"
	bio "github.com/matzehuels/barchart/pkg/io"
)

// Defaults for [NewMongoStore].
const (
	DefaultMongoDatabase   = "barchart"
	DefaultMongoCollection = "charts"
)

// MongoStore keeps records in a MongoDB collection, one document per chart
// with the record ID as _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects to uri, verifies the connection and ensures the
// collection's indexes. An empty database name means DefaultMongoDatabase.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "mongo connect")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "mongo ping")
	}
	s := NewMongoStoreFromClient(client, database, DefaultMongoCollection)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client. The caller keeps
// ownership of the connection settings; Close still disconnects it.
func NewMongoStoreFromClient(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
		now:    time.Now,
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	})
	return wrapMongo("create index", err)
}

// Create implements [Store].
func (s *MongoStore) Create(ctx context.Context, def *bio.Definition) (rec Record, err error) {
	defer func(start time.Time) { observe(ctx, "create", start, err) }(time.Now())

	// BSON keeps milliseconds; truncate so the returned record matches a
	// later Get.
	rec, err = newRecord(def, s.now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return Record{}, err
	}
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return Record{}, wrapMongo("insert", err)
	}
	return rec.clone(), nil
}

// Get implements [Store].
func (s *MongoStore) Get(ctx context.Context, id string) (rec Record, err error) {
	defer func(start time.Time) { observe(ctx, "get", start, err) }(time.Now())

	if err := errs.ValidateChartID(id); err != nil {
		return Record{}, err
	}
	return s.find(ctx, id)
}

func (s *MongoStore) find(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, notFound(id)
	}
	if err != nil {
		return Record{}, wrapMongo("find", err)
	}
	return rec, nil
}

// UpdateValues implements [Store]. The values are validated against the
// stored definition first; the size is also part of the update filter, so the
// write only lands on the definition they were checked against.
func (s *MongoStore) UpdateValues(ctx context.Context, id string, values []float64) (rec Record, err error) {
	defer func(start time.Time) { observe(ctx, "update_values", start, err) }(time.Now())

	if err := errs.ValidateChartID(id); err != nil {
		return Record{}, err
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if _, err := withValues(existing.Definition, values); err != nil {
		return Record{}, err
	}

	filter := bson.M{"_id": id, "definition.chart.size": len(values)}
	update := bson.M{"$set": bson.M{
		"definition.chart.values": values,
		"updated_at":              s.now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Deleted since the lookup above.
		return Record{}, notFound(id)
	}
	if err != nil {
		return Record{}, wrapMongo("update", err)
	}
	return rec, nil
}

// Delete implements [Store].
func (s *MongoStore) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe(ctx, "delete", start, err) }(time.Now())

	if err := errs.ValidateChartID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapMongo("delete", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// List implements [Store].
func (s *MongoStore) List(ctx context.Context) (recs []Record, err error) {
	defer func(start time.Time) { observe(ctx, "list", start, err) }(time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, wrapMongo("find", err)
	}
	recs = []Record{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, wrapMongo("decode", err)
	}
	return recs, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// drop removes the whole collection. Tests use it to clean up.
func (s *MongoStore) drop(ctx context.Context) error {
	return s.coll.Drop(ctx)
}

func wrapMongo(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if mongo.IsTimeout(err) {
		return errs.Wrap(errs.ErrCodeTimeout, err, "mongo %s", op)
	}
	return errs.Wrap(errs.ErrCodeNetwork, err, "mongo %s", op)
}
