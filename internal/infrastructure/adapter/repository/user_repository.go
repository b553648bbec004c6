package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/domain/reward"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/database"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/model"
)

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	errorMapper     *database.ErrorMapper
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger, errorMapper *database.ErrorMapper) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		errorMapper:     errorMapper,
	}
}

// modelToEntity converts a user model to an entity
func (r *UserRepository) modelToEntity(userModel *model.User) (*entity.User, error) {
	user, err := entity.NewUser(
		userModel.ID,
		userModel.Name,
		userModel.Email,
		userModel.PasswordHash,
		entity.Role(userModel.Role),
		userModel.Barcode,
		r.timeProvider,
	)
	if err != nil {
		r.logger.Error("Failed to create user entity", map[string]any{
			"user_id": userModel.ID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: failed to create user entity: %s", errs.ErrInternalServer, err.Error())
	}

	user.SetApples(userModel.Apples, r.timeProvider)
	user.SessionsAttended = userModel.SessionsAttended
	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt

	return user, nil
}

// handleDatabaseError logs a failed operation and maps the raw database
// error to its domain error
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("User not found", map[string]any{
			"user_id": userID,
		})
	} else {
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
			"user_id":        userID,
			"error":          err.Error(),
			"classification": string(r.errorClassifier.Classify(err)),
		})
	}

	return r.errorMapper.MapUserNotFoundError(err)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error, id)
	}

	return r.modelToEntity(&userModel)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by email", result.Error, 0)
	}

	return r.modelToEntity(&userModel)
}

// GetByBarcode retrieves a user with the given barcode and role
func (r *UserRepository) GetByBarcode(ctx context.Context, barcode string, role entity.Role) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Where("barcode = ? AND role = ?", barcode, string(role)).
		First(&userModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by barcode", result.Error, 0)
	}

	return r.modelToEntity(&userModel)
}

// GetByNameAndRole retrieves a user by display name and role
func (r *UserRepository) GetByNameAndRole(ctx context.Context, name string, role entity.Role) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Where("name = ? AND role = ?", name, string(role)).
		First(&userModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by name", result.Error, 0)
	}

	return r.modelToEntity(&userModel)
}

// ListByRole returns all users with the given role sorted by balance descending
func (r *UserRepository) ListByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var userModels []model.User
	result := r.db.WithContext(ctx).
		Where("role = ?", string(role)).
		Order("apples DESC").
		Find(&userModels)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing users", result.Error, 0)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		user, err := r.modelToEntity(&userModels[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.logger.Debug("Creating new user", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})

	userModel := model.User{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		PasswordHash:     user.PasswordHash,
		Role:             string(user.Role),
		Barcode:          user.Barcode,
		Apples:           user.Apples(),
		SessionsAttended: user.SessionsAttended,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)

	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error, user.ID)
	}

	user.ID = userModel.ID

	r.logger.Info("User created successfully", map[string]any{
		"user_id": userModel.ID,
		"role":    user.Role,
	})
	return nil
}

// ApplyAdjustment applies a signed manual delta to the user's balance,
// clamped at zero, and appends the audit record in the same transaction
func (r *UserRepository) ApplyAdjustment(ctx context.Context, userID uint64, delta int64, adminID uint64, reason string) (*entity.User, int64, error) {
	r.logger.Debug("Applying balance adjustment", map[string]any{
		"user_id":  userID,
		"delta":    delta,
		"admin_id": adminID,
	})

	var user *entity.User
	var applied int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the row so concurrent adjustments against the same user
		// serialize on the clamp
		var userModel model.User
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&userModel, userID)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return result.Error
		}

		newBalance := entity.ClampBalance(userModel.Apples + delta)
		applied = newBalance - userModel.Apples
		userModel.Apples = newBalance
		userModel.UpdatedAt = r.timeProvider.Now()

		result = tx.Model(&userModel).Updates(map[string]interface{}{
			"apples":     userModel.Apples,
			"updated_at": userModel.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		audit := entity.UserTransaction(userModel.ID, adminID, applied, reason, uuid.NewString(), userModel.UpdatedAt)
		if result := tx.Create(auditRecord(audit)); result.Error != nil {
			return result.Error
		}

		var err error
		user, err = r.modelToEntity(&userModel)
		return err
	})

	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			r.logger.Warn("User not found during adjustment", map[string]any{
				"user_id": userID,
			})
			return nil, 0, err
		}
		return nil, 0, r.handleDatabaseError("applying adjustment", err, userID)
	}

	r.logger.Info("Balance adjustment applied", map[string]any{
		"user_id":     userID,
		"requested":   delta,
		"applied":     applied,
		"new_balance": user.Apples(),
	})

	return user, applied, nil
}

// RecordAttendance credits one qualifying session atomically: balance,
// session counter, audit append and the conditional loyalty bonus all
// commit together. The row lock on the user serializes concurrent
// attendances, so the guard-row check inside the transaction is race-free.
func (r *UserRepository) RecordAttendance(ctx context.Context, userID uint64, adminID uint64) (*reward.AttendanceResult, error) {
	r.logger.Debug("Recording attendance", map[string]any{
		"user_id":  userID,
		"admin_id": adminID,
	})

	var attendance *reward.AttendanceResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userModel model.User
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&userModel, userID)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrUserNotFound
			}
			return result.Error
		}

		now := r.timeProvider.Now()
		accrual := reward.Accrue(userModel.SessionsAttended)

		userModel.SessionsAttended = accrual.NewSessionsAttended
		userModel.Apples += accrual.SessionValue
		userModel.UpdatedAt = now

		audit := entity.UserTransaction(userModel.ID, adminID, accrual.SessionValue, entity.ReasonAttendanceBonus, uuid.NewString(), now)
		if result := tx.Create(auditRecord(audit)); result.Error != nil {
			return result.Error
		}

		bonusCredited := false
		if accrual.BonusType != "" {
			// The guard row makes each threshold a one-time credit. The
			// check is safe under the row lock held above; the unique
			// index backs it up against anything that bypasses the lock.
			var existing int64
			result := tx.Model(&model.LoyaltyBonus{}).
				Where("user_id = ? AND bonus_type = ?", userModel.ID, accrual.BonusType).
				Count(&existing)
			if result.Error != nil {
				return result.Error
			}

			if existing == 0 {
				guard := model.LoyaltyBonus{
					UserID:      userModel.ID,
					BonusType:   accrual.BonusType,
					BonusApples: accrual.BonusApples,
					CreatedAt:   now,
				}
				if result := tx.Create(&guard); result.Error != nil {
					return errs.NewBonusError(userModel.ID, accrual.BonusType, result.Error)
				}

				bonusAudit := entity.UserTransaction(userModel.ID, adminID, accrual.BonusApples, entity.ReasonLoyaltyBonus, accrual.BonusType, now)
				if result := tx.Create(auditRecord(bonusAudit)); result.Error != nil {
					return errs.NewBonusError(userModel.ID, accrual.BonusType, result.Error)
				}

				userModel.Apples += accrual.BonusApples
				bonusCredited = true
			} else {
				dup := errs.NewBonusError(userModel.ID, accrual.BonusType, errs.ErrBonusAlreadyCredited)
				r.logger.Warn("Loyalty bonus already credited", dup.LogFields())
			}
		}

		result = tx.Model(&userModel).Updates(map[string]interface{}{
			"apples":            userModel.Apples,
			"sessions_attended": userModel.SessionsAttended,
			"updated_at":        userModel.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		user, err := r.modelToEntity(&userModel)
		if err != nil {
			return err
		}

		attendance = &reward.AttendanceResult{
			User:          user,
			Accrual:       accrual,
			BonusCredited: bonusCredited,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			r.logger.Warn("User not found during attendance", map[string]any{
				"user_id": userID,
			})
			return nil, err
		}
		return nil, r.handleDatabaseError("recording attendance", err, userID)
	}

	r.logger.Info("Attendance recorded", map[string]any{
		"user_id":        userID,
		"session_value":  attendance.Accrual.SessionValue,
		"sessions":       attendance.Accrual.NewSessionsAttended,
		"bonus_credited": attendance.BonusCredited,
		"new_balance":    attendance.User.Apples(),
	})

	return attendance, nil
}

// ResetAssistantBalances zeroes every assistant's balance
func (r *UserRepository) ResetAssistantBalances(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", string(entity.RoleAssistant)).
		Updates(map[string]interface{}{
			"apples":     0,
			"updated_at": r.timeProvider.Now(),
		})

	if result.Error != nil {
		return 0, r.handleDatabaseError("resetting assistant balances", result.Error, 0)
	}

	r.logger.Info("Assistant balances reset", map[string]any{
		"assistants": result.RowsAffected,
	})

	return result.RowsAffected, nil
}
