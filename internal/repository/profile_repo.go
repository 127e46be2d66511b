package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/profile-service/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("entry not found")
)

type ProfileRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error)
	FindAll(ctx context.Context) ([]models.Profile, error)
	// Upsert applies fields as a sparse $set keyed on the user id and
	// returns the resulting document. One atomic operation; the unique
	// index on user backstops concurrent calls.
	Upsert(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	PushExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error)
	PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
	PushEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error)
	PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error)
}

type mongoProfileRepo struct {
	col *mongo.Collection
}

func NewMongoProfileRepo(db *mongo.Database, collection string) ProfileRepository {
	col := db.Collection(collection)
	// one profile per user
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &mongoProfileRepo{col: col}
}

func (r *mongoProfileRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	return &p, err
}

func (r *mongoProfileRepo) FindAll(ctx context.Context) ([]models.Profile, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Profile
	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (r *mongoProfileRepo) Upsert(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*models.Profile, error) {
	update := bson.M{
		"$set": fields,
		"$setOnInsert": bson.M{
			"date":       time.Now().UTC(),
			"experience": []models.Experience{},
			"education":  []models.Education{},
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var p models.Profile
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProfileRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"user": userID})
	return err
}

func (r *mongoProfileRepo) PushExperience(ctx context.Context, userID primitive.ObjectID, exp models.Experience) (*models.Profile, error) {
	return r.push(ctx, userID, "experience", exp)
}

func (r *mongoProfileRepo) PushEducation(ctx context.Context, userID primitive.ObjectID, edu models.Education) (*models.Profile, error) {
	return r.push(ctx, userID, "education", edu)
}

// push prepends entry to the named ordered list.
func (r *mongoProfileRepo) push(ctx context.Context, userID primitive.ObjectID, field string, entry interface{}) (*models.Profile, error) {
	update := bson.M{"$push": bson.M{field: bson.M{
		"$each":     bson.A{entry},
		"$position": 0,
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Profile
	err := r.col.FindOneAndUpdate(ctx, bson.M{"user": userID}, update, opts).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProfileRepo) PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return r.pull(ctx, userID, "experience", entryID)
}

func (r *mongoProfileRepo) PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*models.Profile, error) {
	return r.pull(ctx, userID, "education", entryID)
}

// pull removes the entry with entryID from the named list. ModifiedCount
// distinguishes "profile missing" from "no such entry".
func (r *mongoProfileRepo) pull(ctx context.Context, userID primitive.ObjectID, field string, entryID primitive.ObjectID) (*models.Profile, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"user": userID},
		bson.M{"$pull": bson.M{field: bson.M{"_id": entryID}}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrProfileNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, ErrEntryNotFound
	}
	return r.FindByUser(ctx, userID)
}
