package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/userdirectory/user-service/shared/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository runs every user operation against the MongoDB collection,
// the single source of truth.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// FindAll returns every user in natural order.
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.find(ctx, bson.M{})
}

// Search returns users matching term on any searchable field. A blank term
// matches everything.
func (r *UserRepository) Search(ctx context.Context, term string) ([]models.User, error) {
	return r.find(ctx, SearchFilter(term))
}

func (r *UserRepository) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrUserNotFound
	}
	var user models.User
	err = r.coll.FindOne(ctx, bson.M{models.FieldID: oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Create inserts fields as a new document and returns it with its assigned
// ID. Keys outside the declared schema are stored unchanged.
func (r *UserRepository) Create(ctx context.Context, fields map[string]any) (*models.User, error) {
	doc, err := castFields(fields)
	if err != nil {
		return nil, err
	}
	if _, ok := doc[models.FieldActive]; !ok {
		doc[models.FieldActive] = false
	}
	oid := primitive.NewObjectID()
	doc[models.FieldID] = oid

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return models.UserFromDocument(doc), nil
}

// Update sets the given fields on an existing user and returns the
// post-update document. It never inserts.
func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrUserNotFound
	}
	doc, err := castFields(fields)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err = r.coll.FindOneAndUpdate(ctx, bson.M{models.FieldID: oid}, bson.M{"$set": doc}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// Delete removes a user and returns the document as it was before removal.
func (r *UserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrUserNotFound
	}
	var user models.User
	err = r.coll.FindOneAndDelete(ctx, bson.M{models.FieldID: oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	return &user, nil
}

// Count returns the number of users, or only of those with active == true.
func (r *UserRepository) Count(ctx context.Context, activeOnly bool) (int64, error) {
	filter := bson.M{}
	if activeOnly {
		filter[models.FieldActive] = true
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
