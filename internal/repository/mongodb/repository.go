package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines the interface for feed composition storage.
type Repository interface {
	ID() string
	ReadRows(ctx context.Context) ([][]interface{}, error)
}

// MongoDBRepository reads feed compositions, one document per feed.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri, dbName, collName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: collName,
	}, nil
}

// ID identifies the collection for caching.
func (r *MongoDBRepository) ID() string {
	return fmt.Sprintf("mongodb:%s.%s", r.dbName, r.collName)
}

// ReadRows returns the collection as a table: a header row followed by one
// row per document, in natural order.
func (r *MongoDBRepository) ReadRows(ctx context.Context) ([][]interface{}, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query feed compositions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode feed compositions: %w", err)
	}

	return DocumentsToRows(docs), nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// DocumentsToRows flattens ordered documents into a header row and value rows.
// Columns follow first-seen key order; _id is dropped.
func DocumentsToRows(docs []bson.D) [][]interface{} {
	var columns []string
	index := make(map[string]int)
	for _, doc := range docs {
		for _, field := range doc {
			if field.Key == "_id" {
				continue
			}
			if _, ok := index[field.Key]; !ok {
				index[field.Key] = len(columns)
				columns = append(columns, field.Key)
			}
		}
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}

	rows := make([][]interface{}, 0, len(docs)+1)
	rows = append(rows, header)
	for _, doc := range docs {
		row := make([]interface{}, len(columns))
		for _, field := range doc {
			if i, ok := index[field.Key]; ok {
				row[i] = field.Value
			}
		}
		rows = append(rows, row)
	}

	return rows
}
