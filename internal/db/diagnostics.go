package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AbdulWasayUl/go-country-browser/internal/config"
	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
	"github.com/AbdulWasayUl/go-country-browser/models"
)

const writeTimeout = 5 * time.Second

// Diagnostics stores failure records in MongoDB.
type Diagnostics struct {
	coll *mongo.Collection
}

func NewDiagnostics(client *mongo.Client, cfg *config.Config) *Diagnostics {
	return &Diagnostics{coll: client.Database(cfg.DBDiagnostics).Collection(cfg.CollectionDiagnostics)}
}

// Record writes d. Write failures are logged and otherwise ignored.
func (d *Diagnostics) Record(ctx context.Context, diag models.Diagnostic) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if _, err := d.coll.InsertOne(ctx, diag); err != nil {
		logger.Error("Failed to store diagnostic %s/%s: %v", diag.Component, diag.Operation, err)
	}
}

// Recent returns the newest diagnostics, optionally for one component.
func (d *Diagnostics) Recent(ctx context.Context, component string, limit int64) ([]models.Diagnostic, error) {
	filter := bson.M{}
	if component != "" {
		filter["component"] = component
	}

	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cursor, err := d.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.Diagnostic{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
