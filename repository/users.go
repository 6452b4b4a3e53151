package repository

import (
	"context"
	"time"

	"tonotes/model"
	"tonotes/usecase"
	"tonotes/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepo is the MongoDB implementation of usecase.UserRepository.
type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client, database string) *UserRepo {
	return &UserRepo{
		MongoCollection: client.Database(database).Collection("users"),
	}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrConflict
		}
		utils.TrackError("database", "user_creation_failed")
		return err
	}
	return nil
}

func (r *UserRepo) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *UserRepo) FindUserByNickname(ctx context.Context, nickname string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"nickname": nickname})
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "user_lookup_error")
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) SearchByNickname(ctx context.Context, keyword string) ([]*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	query := bson.M{"nickname": bson.M{"$regex": escapeRegex(keyword), "$options": "i"}}
	cursor, err := r.MongoCollection.Find(ctx, query, options.Find())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{
		"nickname":   user.Nickname,
		"avatar":     user.Avatar,
		"gender":     user.Gender,
		"birthday":   user.Birthday,
		"city":       user.City,
		"signature":  user.Signature,
		"updated_at": user.UpdatedAt,
	}}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"user_id": user.UserID}, update)
	if err != nil {
		utils.TrackError("database", "profile_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"password": hashedPassword, "updated_at": time.Now()}})
	if err != nil {
		utils.TrackError("database", "password_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

// AddFollow and AddFan use $addToSet so repeated follows stay idempotent.
func (r *UserRepo) AddFollow(ctx context.Context, userID, followID string) error {
	return r.updateSet(ctx, userID, bson.M{"$addToSet": bson.M{"follow": followID}})
}

func (r *UserRepo) AddFan(ctx context.Context, userID, fanID string) error {
	return r.updateSet(ctx, userID, bson.M{"$addToSet": bson.M{"fans": fanID}})
}

func (r *UserRepo) RemoveFollow(ctx context.Context, userID, followID string) error {
	return r.updateSet(ctx, userID, bson.M{"$pull": bson.M{"follow": followID}})
}

func (r *UserRepo) RemoveFan(ctx context.Context, userID, fanID string) error {
	return r.updateSet(ctx, userID, bson.M{"$pull": bson.M{"fans": fanID}})
}

func (r *UserRepo) updateSet(ctx context.Context, userID string, update bson.M) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		utils.TrackError("database", "follow_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *UserRepo) SetTwoFactor(ctx context.Context, userID, secret string, enabled bool) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"two_factor_secret":  secret,
			"two_factor_enabled": enabled,
		}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	timer := utils.TrackDBOperation("count", "users")
	defer timer.ObserveDuration()

	n, err := r.MongoCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
