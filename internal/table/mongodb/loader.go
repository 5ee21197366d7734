package mongodb

import (
	"context"
	"time"

	"github.com/krancour/memberadmin"
	"github.com/krancour/memberadmin/internal/table"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName     = "members"
	createIndexTimeout = 5 * time.Second
)

type loader struct {
	collection *mongo.Collection
}

// NewLoader returns a table.Loader that reads every document in the members
// collection of the provided database, ordered by id.
func NewLoader(database *mongo.Database) (table.Loader, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	collection := database.Collection(collectionName)
	if _, err := collection.Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.M{
				"id": 1,
			},
			Options: &options.IndexOptions{
				Unique: &unique,
			},
		},
	); err != nil {
		return nil, errors.Wrap(err, "error adding indexes to members collection")
	}
	return &loader{
		collection: collection,
	}, nil
}

func (l *loader) Load(ctx context.Context) ([]memberadmin.Member, error) {
	members := []memberadmin.Member{}
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"id": 1})
	cur, err := l.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, memberadmin.NewErrLoad(
			collectionName,
			errors.Wrap(err, "error finding members").Error(),
		)
	}
	if err := cur.All(ctx, &members); err != nil {
		return nil, memberadmin.NewErrLoad(
			collectionName,
			errors.Wrap(err, "error decoding members").Error(),
		)
	}
	return members, nil
}
