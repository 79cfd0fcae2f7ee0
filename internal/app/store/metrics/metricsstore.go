package metricsstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the admin dashboard.
type Counts struct {
	Clients        int64
	ActiveProjects int64
	UnreadMessages int64
	PublishedPosts int64
}

// FetchDashboardCounts returns the high-level totals for the admin
// dashboard. Intentionally tolerant: on error a counter stays 0 so a
// flaky collection never blanks the whole dashboard.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	if n, err := db.Collection("clients").CountDocuments(ctx, bson.M{}); err == nil {
		out.Clients = n
	}

	if n, err := db.Collection("projects").CountDocuments(ctx, bson.M{"status": bson.M{"$ne": "done"}}); err == nil {
		out.ActiveProjects = n
	}

	if n, err := db.Collection("messages").CountDocuments(ctx, bson.M{"read": false}); err == nil {
		out.UnreadMessages = n
	}

	if n, err := db.Collection("blog_posts").CountDocuments(ctx, bson.M{"published": true}); err == nil {
		out.PublishedPosts = n
	}

	return out
}
