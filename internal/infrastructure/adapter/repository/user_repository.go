package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiarash-moradi/mlm-dashboard/internal/domain/entity"
	errs "github.com/kiarash-moradi/mlm-dashboard/internal/domain/error"
	coreport "github.com/kiarash-moradi/mlm-dashboard/internal/domain/port/core"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userModelToEntity(m *model.User) entity.User {
	return entity.User{
		ID:          m.ID,
		Username:    m.Username,
		SponsorID:   m.SponsorID,
		SponsorName: m.SponsorName,
		UplineID:    m.UplineID,
		Position:    entity.Position(m.Position),
		LeftCount:   m.LeftCount,
		RightCount:  m.RightCount,
		PairsToday:  m.PairsToday,
		Role:        entity.Role(m.Role),
		Status:      entity.Status(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateEntry
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}

	user := userModelToEntity(&userModel)
	return &user, nil
}

// GetByUsername retrieves a user by its unique username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		r.logger.Error("Database error when getting user by username", map[string]any{
			"username": username,
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	user := userModelToEntity(&userModel)
	return &user, nil
}

// ListAll returns every user ordered by id
func (r *UserRepository) ListAll(ctx context.Context) ([]entity.User, error) {
	var userModels []model.User
	result := r.db.WithContext(ctx).Order("id ASC").Find(&userModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing users", map[string]any{
			"error": result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	users := make([]entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModelToEntity(&userModels[i]))
	}
	return users, nil
}

// ListBySponsorNames returns all users sponsored by one of the given usernames
func (r *UserRepository) ListBySponsorNames(ctx context.Context, usernames []string) ([]entity.User, error) {
	if len(usernames) == 0 {
		return nil, nil
	}

	var userModels []model.User
	result := r.db.WithContext(ctx).
		Where("sponsor_name IN ?", usernames).
		Order("id ASC").
		Find(&userModels)
	if result.Error != nil {
		r.logger.Error("Database error when listing users by sponsor", map[string]any{
			"sponsors": len(usernames),
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	users := make([]entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModelToEntity(&userModels[i]))
	}
	return users, nil
}

// Create persists a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		ID:          user.ID,
		Username:    user.Username,
		SponsorID:   user.SponsorID,
		SponsorName: user.SponsorName,
		UplineID:    user.UplineID,
		Position:    string(user.Position),
		LeftCount:   user.LeftCount,
		RightCount:  user.RightCount,
		PairsToday:  user.PairsToday,
		Role:        string(user.Role),
		Status:      string(user.Status),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}

	r.logger.Info("User created", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}
