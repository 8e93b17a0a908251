package migrations

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AbdulWasayUl/go-country-browser/internal/config"
)

// diagnosticsTTLSeconds bounds how long failure records are kept.
const diagnosticsTTLSeconds = 7 * 24 * 60 * 60

func createCollectionIfNotExists(ctx context.Context, db *mongo.Database, name string) error {
	if err := db.CreateCollection(ctx, name); err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) {
			if cmdErr.Code != 48 { // 48 = NamespaceExists
				return fmt.Errorf("failed to create collection %s: %w", name, err)
			}
			// Collection already exists → ignore
		} else {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// CreateDiagnosticsCollection creates the collection failures are written to.
func CreateDiagnosticsCollection(cfg *config.Config) func(ctx context.Context, client *mongo.Client) error {
	return func(ctx context.Context, client *mongo.Client) error {
		return createCollectionIfNotExists(ctx, client.Database(cfg.DBDiagnostics), cfg.CollectionDiagnostics)
	}
}

// IndexDiagnostics adds the lookup index and the expiry index.
func IndexDiagnostics(cfg *config.Config) func(ctx context.Context, client *mongo.Client) error {
	return func(ctx context.Context, client *mongo.Client) error {
		coll := client.Database(cfg.DBDiagnostics).Collection(cfg.CollectionDiagnostics)

		_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "component", Value: 1}, {Key: "at", Value: -1}},
				Options: options.Index().SetName("component_at"),
			},
			{
				Keys:    bson.D{{Key: "at", Value: 1}},
				Options: options.Index().SetName("at_ttl").SetExpireAfterSeconds(diagnosticsTTLSeconds),
			},
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", cfg.CollectionDiagnostics, err)
		}
		return nil
	}
}
