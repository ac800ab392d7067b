package repository

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/userdirectory/user-service/shared/models"
	sharedredis "github.com/userdirectory/user-service/shared/redis"
)

const userViewKeyPrefix = "user:view:"

type viewCache interface {
	Get(ctx context.Context, key string) (*models.User, bool)
	Set(ctx context.Context, key string, value *models.User)
	Add(ctx context.Context, key string, value *models.User)
	Delete(ctx context.Context, key string)
}

type userGetter interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UserReadRepository serves single-user reads from Redis, falling back to
// MongoDB on a miss. With no Redis client every read goes to MongoDB.
//
// Writes overwrite the cached view; misses only fill an absent key, so a
// fill racing an update cannot replace the newer view.
type UserReadRepository struct {
	store userGetter
	cache viewCache
}

func NewUserReadRepository(store *UserRepository, redisClient *goredis.Client, ttl time.Duration) *UserReadRepository {
	var cache viewCache = nopViewCache{}
	if redisClient != nil {
		cache = sharedredis.NewViewCache[models.User](redisClient, ttl)
	}
	return &UserReadRepository{store: store, cache: cache}
}

// GetByID returns a user from Redis first, then MongoDB.
func (r *UserReadRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	cacheKey := userViewKeyPrefix + id

	if user, ok := r.cache.Get(ctx, cacheKey); ok {
		return user, nil
	}

	user, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Add(ctx, cacheKey, user)
	return user, nil
}

// CacheUserView stores or refreshes the Redis entry for a user.
func (r *UserReadRepository) CacheUserView(ctx context.Context, user *models.User) {
	r.cache.Set(ctx, userViewKeyPrefix+user.ID.Hex(), user)
}

// RefreshUserView reloads a user from MongoDB into Redis, or evicts the
// view if the user no longer exists.
func (r *UserReadRepository) RefreshUserView(ctx context.Context, userID string) error {
	user, err := r.store.GetByID(ctx, userID)
	if errors.Is(err, models.ErrUserNotFound) {
		r.InvalidateUserView(ctx, userID)
		return nil
	}
	if err != nil {
		return err
	}
	r.CacheUserView(ctx, user)
	return nil
}

// InvalidateUserView removes the Redis entry for a user.
func (r *UserReadRepository) InvalidateUserView(ctx context.Context, userID string) {
	r.cache.Delete(ctx, userViewKeyPrefix+userID)
}

type nopViewCache struct{}

func (nopViewCache) Get(context.Context, string) (*models.User, bool) { return nil, false }
func (nopViewCache) Set(context.Context, string, *models.User)        {}
func (nopViewCache) Add(context.Context, string, *models.User)        {}
func (nopViewCache) Delete(context.Context, string)                    {}
