package metadata

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore keeps one document per account:
//
//	{_id: "user_1", private: {free_usage: 3}, public: {plan: "pro"}}
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	if collection == "" {
		collection = "account_metadata"
	}
	return &MongoStore{coll: db.Collection(collection)}
}

type accountDoc struct {
	ID      string `bson:"_id"`
	Private bson.M `bson:"private,omitempty"`
	Public  bson.M `bson:"public,omitempty"`
}

func (s *MongoStore) Get(ctx context.Context, accountID string) (Account, error) {
	if accountID == "" {
		return Account{}, ErrEmptyAccountID
	}
	var doc accountDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: accountID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return normalize(Account{ID: accountID}), nil
	}
	if err != nil {
		return Account{}, errors.Join(ErrLookupFailed, err)
	}
	return normalize(Account{
		ID:      accountID,
		Private: fromBSON(doc.Private),
		Public:  fromBSON(doc.Public),
	}), nil
}

func (s *MongoStore) UpdatePrivate(ctx context.Context, accountID string, fields map[string]any) error {
	if accountID == "" {
		return ErrEmptyAccountID
	}
	if len(fields) == 0 {
		return nil
	}
	set := make(bson.D, 0, len(fields))
	for k, v := range fields {
		set = append(set, bson.E{Key: "private." + k, Value: v})
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: accountID}},
		bson.D{{Key: "$set", Value: set}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return errors.Join(ErrUpdateFailed, err)
	}
	return nil
}

// IncrementPrivate uses an update pipeline so the stored value is read the
// way Counter reads it: numbers and numeric strings are floored, anything
// else counts as 0. $inc would fail on non-numeric values instead.
func (s *MongoStore) IncrementPrivate(ctx context.Context, accountID, key string) (int64, error) {
	if accountID == "" {
		return 0, ErrEmptyAccountID
	}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{{Key: "private." + key, Value: nextCounter("$private." + key)}}}},
	}

	var doc accountDoc
	err := s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: accountID}},
		pipeline,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, errors.Join(ErrIncrementFailed, err)
	}
	return Counter(fromBSONValue(doc.Private[key])), nil
}

func toDouble(input any) bson.D {
	return bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: input},
		{Key: "to", Value: "double"},
		{Key: "onError", Value: 0},
		{Key: "onNull", Value: 0},
	}}}
}

// nextCounter is the aggregation expression for Counter(field) + 1 stored as
// a long. Values that cannot be represented as a long restart at 1.
func nextCounter(field string) bson.D {
	current := bson.D{{Key: "$switch", Value: bson.D{
		{Key: "branches", Value: bson.A{
			bson.D{
				{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{bson.D{{Key: "$type", Value: field}}, "string"}}}},
				{Key: "then", Value: toDouble(bson.D{{Key: "$trim", Value: bson.D{{Key: "input", Value: field}}}})},
			},
			bson.D{
				{Key: "case", Value: bson.D{{Key: "$isNumber", Value: field}}},
				{Key: "then", Value: toDouble(field)},
			},
		}},
		{Key: "default", Value: 0},
	}}}
	sum := bson.D{{Key: "$add", Value: bson.A{
		bson.D{{Key: "$max", Value: bson.A{bson.D{{Key: "$floor", Value: current}}, 0}}},
		1,
	}}}
	return bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: sum},
		{Key: "to", Value: "long"},
		{Key: "onError", Value: 1},
		{Key: "onNull", Value: 1},
	}}}
}

func fromBSON(m bson.M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = fromBSONValue(v)
	}
	return out
}

// fromBSONValue turns driver container types into plain maps and slices so
// classifiers see the same shapes as with the other stores.
func fromBSONValue(v any) any {
	switch t := v.(type) {
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromBSONValue(e)
		}
		return out
	case bson.M:
		return fromBSON(t)
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = fromBSONValue(e.Value)
		}
		return out
	default:
		return v
	}
}
