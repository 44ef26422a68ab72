package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	taskDomain "github.com/davicafu/taskboard/internal/task/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SlotRepoMongoDB guarda cada slot como un documento de la colección 'slots'.
type SlotRepoMongoDB struct {
	client    *mongo.Client
	slotsColl *mongo.Collection
}

func NewSlotRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*SlotRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	return &SlotRepoMongoDB{
		client:    client,
		slotsColl: client.Database(dbName).Collection("slots"),
	}, nil
}

// --- Structs de BSON para el mapeo ---
// El valor se guarda como string para conservar los bytes exactos del snapshot.

type mongoSlot struct {
	Name      string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (r *SlotRepoMongoDB) Get(ctx context.Context, name string) ([]byte, error) {
	var doc mongoSlot
	err := r.slotsColl.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, taskDomain.ErrSlotNotFound
		}
		return nil, err
	}
	return []byte(doc.Value), nil
}

func (r *SlotRepoMongoDB) Put(ctx context.Context, name string, value []byte) error {
	doc := mongoSlot{Name: name, Value: string(value), UpdatedAt: time.Now().UTC()}
	_, err := r.slotsColl.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	return err
}

var _ taskDomain.Slot = (*SlotRepoMongoDB)(nil)
