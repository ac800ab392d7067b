package query

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/userdirectory/user-service/shared/cqrs"
	"github.com/userdirectory/user-service/shared/events"
	"github.com/userdirectory/user-service/shared/models"
)

// UserReader runs collection-wide reads directly against MongoDB.
type UserReader interface {
	FindAll(ctx context.Context) ([]models.User, error)
	Search(ctx context.Context, term string) ([]models.User, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)
}

// UserViewReader serves single-user views, possibly from cache.
type UserViewReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	RefreshUserView(ctx context.Context, userID string) error
	InvalidateUserView(ctx context.Context, userID string)
}

// UserQueryService answers every read. Lists and counts always hit MongoDB
// so they agree with each other; only single-user lookups use the cache.
type UserQueryService struct {
	store    UserReader
	views    UserViewReader
	instance string
}

// NewUserQueryService returns the read side. instance identifies this
// process on the user event stream.
func NewUserQueryService(store UserReader, views UserViewReader, instance string) *UserQueryService {
	return &UserQueryService{store: store, views: views, instance: instance}
}

func (s *UserQueryService) ListUsers(ctx context.Context, _ cqrs.ListUsersQuery) ([]models.User, error) {
	return s.store.FindAll(ctx)
}

func (s *UserQueryService) SearchUsers(ctx context.Context, q cqrs.SearchUsersQuery) ([]models.User, error) {
	if strings.TrimSpace(q.Term) == "" {
		return s.store.FindAll(ctx)
	}
	return s.store.Search(ctx, q.Term)
}

func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	return s.views.GetByID(ctx, q.UserID)
}

func (s *UserQueryService) CountUsers(ctx context.Context, q cqrs.CountUsersQuery) (int64, error) {
	return s.store.Count(ctx, q.ActiveOnly)
}

// HandleUserEvent is the Redis stream subscriber handler. Events published
// by this instance are skipped: its own writes already updated the view.
// Another instance's update is reloaded from MongoDB and its delete evicts
// the view.
func (s *UserQueryService) HandleUserEvent(ctx context.Context, event events.Event) error {
	if event.Source != "" && event.Source == s.instance {
		return nil
	}
	switch event.Type {
	case events.UserUpdated:
		var data events.UserUpdatedEvent
		if err := events.DecodeData(event, &data); err != nil {
			return err
		}
		log.Debug().Str("event", event.Type).Str("user_id", data.UserID).Msg("refreshing cached user view")
		return s.views.RefreshUserView(ctx, data.UserID)
	case events.UserDeleted:
		var data events.UserDeletedEvent
		if err := events.DecodeData(event, &data); err != nil {
			return err
		}
		log.Debug().Str("event", event.Type).Str("user_id", data.UserID).Msg("evicting cached user view")
		s.views.InvalidateUserView(ctx, data.UserID)
	}
	return nil
}
