package alerts

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Troublor/erebus-infoflow/analysis/info_flow"
)

const CollectionName = "alerts"

// MongoSink buffers alerts and writes them to a collection on Flush.
type MongoSink struct {
	collection *mongo.Collection

	mu      sync.Mutex
	pending []interface{}
}

func NewMongoSink(db *mongo.Database) *MongoSink {
	return &MongoSink{collection: db.Collection(CollectionName)}
}

func (s *MongoSink) HandleAlert(alert info_flow.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, alert)
}

// Pending is the number of alerts not yet flushed.
func (s *MongoSink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *MongoSink) Flush(ctx context.Context) error {
	s.mu.Lock()
	docs := s.pending
	s.pending = nil
	s.mu.Unlock()
	if len(docs) == 0 {
		return nil
	}
	res, err := s.collection.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	log.Info().Int("count", len(res.InsertedIDs)).Str("collection", CollectionName).Msg("Alerts saved")
	return nil
}
