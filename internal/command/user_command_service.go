package command

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/userdirectory/user-service/shared/cqrs"
	"github.com/userdirectory/user-service/shared/events"
	"github.com/userdirectory/user-service/shared/models"
)

// UserWriter is the storage side of user mutations.
type UserWriter interface {
	Create(ctx context.Context, fields map[string]any) (*models.User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.User, error)
	Delete(ctx context.Context, id string) (*models.User, error)
}

// UserViewWriter keeps cached single-user views in step with storage.
type UserViewWriter interface {
	CacheUserView(ctx context.Context, user *models.User)
	InvalidateUserView(ctx context.Context, userID string)
}

type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// UserCommandService writes user state to MongoDB, refreshes the cached
// view and announces each change on the user event stream.
type UserCommandService struct {
	writeRepo UserWriter
	views     UserViewWriter
	publisher EventPublisher
}

func NewUserCommandService(writeRepo UserWriter, views UserViewWriter, publisher EventPublisher) *UserCommandService {
	return &UserCommandService{
		writeRepo: writeRepo,
		views:     views,
		publisher: publisher,
	}
}

func (s *UserCommandService) CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	user, err := s.writeRepo.Create(ctx, cmd.Fields)
	if err != nil {
		return nil, err
	}
	s.views.CacheUserView(ctx, user)
	s.publish(ctx, events.UserCreated, events.UserCreatedEvent{
		UserID: user.ID.Hex(),
		Email:  user.Email,
	})
	return user, nil
}

func (s *UserCommandService) UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error) {
	user, err := s.writeRepo.Update(ctx, cmd.UserID, cmd.Fields)
	if err != nil {
		return nil, err
	}
	s.views.CacheUserView(ctx, user)
	s.publish(ctx, events.UserUpdated, events.UserUpdatedEvent{
		UserID: user.ID.Hex(),
		Fields: fieldNames(cmd.Fields),
	})
	return user, nil
}

// DeleteUser returns the user as it was before removal.
func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) (*models.User, error) {
	user, err := s.writeRepo.Delete(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	s.views.InvalidateUserView(ctx, user.ID.Hex())
	s.publish(ctx, events.UserDeleted, events.UserDeletedEvent{UserID: user.ID.Hex()})
	return user, nil
}

// publish is best effort: the write has already succeeded.
func (s *UserCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.UserEventsStream, eventType, data); err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to publish user event")
	}
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		if k == models.FieldID {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
