package global

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Troublor/erebus-infoflow/config"
)

var mongoClient *mongo.Client

const mongoConnectTimeout = 10 * time.Second

// MongoDbClient connects on first use and exits the process if the server
// cannot be reached: alerts are only persisted when asked for, so a missing
// database is a configuration error.
func MongoDbClient() *mongo.Client {
	if mongoClient != nil {
		return mongoClient
	}

	url := viper.GetString(config.CMongoURL.Key)
	opts := options.Client().ApplyURI(url).SetServerSelectionTimeout(mongoConnectTimeout)
	client, err := mongo.Connect(Ctx(), opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	pingCtx, cancel := context.WithTimeout(Ctx(), mongoConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		log.Fatal().Err(err).Str("url", url).Msg("MongoDB is not reachable")
	}
	RegisterCleanupTask(func() {
		// Ctx is already cancelled when cleanup runs
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	})
	mongoClient = client
	return mongoClient
}

func AlertDatabase() *mongo.Database {
	return MongoDbClient().Database(viper.GetString(config.CMongoDatabase.Key))
}
