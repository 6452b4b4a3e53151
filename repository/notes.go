package repository

import (
	"context"
	"regexp"
	"time"

	"tonotes/model"
	"tonotes/usecase"
	"tonotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// escapeRegex keeps user-supplied keywords from being interpreted as
// regex syntax in $regex filters.
func escapeRegex(keyword string) string {
	return regexp.QuoteMeta(keyword)
}

// NotesRepo is the MongoDB implementation of usecase.NoteRepository.
type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client, database string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(database).Collection("notes"),
	}
}

func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		utils.TrackError("database", "note_creation_failed")
	}
	return err
}

func (r *NotesRepo) GetNote(ctx context.Context, noteID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": noteID}).Decode(&note)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "note_lookup_error")
		return nil, err
	}
	return &note, nil
}

// ListNotes returns non-deleted notes in creation order so pagination
// windows stay stable between calls.
func (r *NotesRepo) ListNotes(ctx context.Context, filter usecase.NoteFilter) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	query := bson.M{"is_deleted": false}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NotesRepo) SearchByTitle(ctx context.Context, keyword string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	query := bson.M{
		"is_deleted": false,
		"title":      bson.M{"$regex": escapeRegex(keyword), "$options": "i"},
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NotesRepo) AppendComment(ctx context.Context, noteID string, comment *model.Comment) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "is_deleted": false},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *NotesRepo) UpdateStatus(ctx context.Context, noteID, status, reason string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	set := bson.M{"status": status, "updated_at": time.Now()}
	update := bson.M{"$set": set}
	if status == model.StatusRejected {
		set["rejection_reason"] = reason
	} else {
		update["$unset"] = bson.M{"rejection_reason": ""}
	}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": noteID}, update)
	if err != nil {
		utils.TrackError("database", "status_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *NotesRepo) MarkDeleted(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now()}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *NotesRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	counts := make(map[string]int)
	for _, status := range []string{model.StatusPending, model.StatusApproved, model.StatusRejected} {
		n, err := r.MongoCollection.CountDocuments(ctx,
			bson.M{"status": status, "is_deleted": false})
		if err != nil {
			return nil, err
		}
		counts[status] = int(n)
	}
	return counts, nil
}
