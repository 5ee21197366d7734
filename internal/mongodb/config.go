package mongodb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	envconfigPrefix = "MONGODB"
	connectTimeout  = 10 * time.Second
	pingTimeout     = 2 * time.Second
)

// config represents common configuration options for a MongoDB connection.
// It is only consulted when MONGODB_CONNECTION_STRING is not set.
type config struct {
	Host       string `envconfig:"HOST" required:"true"`
	Port       int    `envconfig:"PORT" default:"27017"`
	Database   string `envconfig:"DATABASE" required:"true"`
	ReplicaSet string `envconfig:"REPLICA_SET"`
	Username   string `envconfig:"USERNAME"`
	Password   string `envconfig:"PASSWORD"`
}

func (c config) connectionString() string {
	var credentials string
	if c.Username != "" {
		credentials = fmt.Sprintf("%s:%s@", c.Username, c.Password)
	}
	connectionString := fmt.Sprintf(
		"mongodb://%s%s:%d/%s",
		credentials,
		c.Host,
		c.Port,
		c.Database,
	)
	if c.ReplicaSet != "" {
		connectionString =
			fmt.Sprintf("%s?replicaSet=%s", connectionString, c.ReplicaSet)
	}
	return connectionString
}

// Database returns a connection to a MongoDB database specified by environment
// variables
func Database() (*mongo.Database, error) {
	connectionString := os.Getenv("MONGODB_CONNECTION_STRING")
	database := os.Getenv("MONGODB_DATABASE")
	if connectionString == "" {
		c := config{}
		if err := envconfig.Process(envconfigPrefix, &c); err != nil {
			return nil, errors.Wrap(
				err,
				"error getting mongo configuration from environment",
			)
		}
		connectionString = c.connectionString()
		database = c.Database
	} else if database == "" {
		return nil, errors.New(
			"MONGODB_DATABASE must be set when MONGODB_CONNECTION_STRING is set",
		)
	}

	connectCtx, connectCancel :=
		context.WithTimeout(context.Background(), connectTimeout)
	defer connectCancel()
	// Members are only ever read, so majority reads are sufficient
	client, err := mongo.Connect(
		connectCtx,
		options.Client().ApplyURI(connectionString).SetReadConcern(
			readconcern.Majority(),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to mongo")
	}
	pingCtx, pingCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "error pinging mongodb database")
	}
	return client.Database(database), nil
}
