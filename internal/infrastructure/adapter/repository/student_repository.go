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
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/database"
	"github.com/nileacademy/apple-rewards/internal/infrastructure/adapter/model"
)

// StudentRepository implements persistence.StudentRepository using GORM
type StudentRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	errorMapper     *database.ErrorMapper
}

// NewStudentRepository creates a new StudentRepository instance
func NewStudentRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger, errorMapper *database.ErrorMapper) *StudentRepository {
	return &StudentRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		errorMapper:     errorMapper,
	}
}

// modelToEntity converts a student model to an entity
func (r *StudentRepository) modelToEntity(studentModel *model.Student) *entity.Student {
	student := entity.NewStudent(studentModel.ID, studentModel.Name, studentModel.Barcode, r.timeProvider)
	student.SetApples(studentModel.Apples, r.timeProvider)
	student.CreatedAt = studentModel.CreatedAt
	student.UpdatedAt = studentModel.UpdatedAt
	return student
}

// handleDatabaseError logs a failed operation and maps the raw database
// error to its domain error
func (r *StudentRepository) handleDatabaseError(operation string, err error, studentID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Student not found", map[string]any{
			"student_id": studentID,
		})
	} else {
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
			"student_id":     studentID,
			"error":          err.Error(),
			"classification": string(r.errorClassifier.Classify(err)),
		})
	}

	return r.errorMapper.MapStudentNotFoundError(err)
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id uint64) (*entity.Student, error) {
	var studentModel model.Student
	result := r.db.WithContext(ctx).First(&studentModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting student", result.Error, id)
	}

	return r.modelToEntity(&studentModel), nil
}

// GetByBarcode retrieves a student by barcode
func (r *StudentRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Student, error) {
	var studentModel model.Student
	result := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&studentModel)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting student by barcode", result.Error, 0)
	}

	return r.modelToEntity(&studentModel), nil
}

// List returns all students sorted by apple balance descending
func (r *StudentRepository) List(ctx context.Context) ([]*entity.Student, error) {
	var studentModels []model.Student
	result := r.db.WithContext(ctx).Order("apples DESC").Find(&studentModels)

	if result.Error != nil {
		return nil, r.handleDatabaseError("listing students", result.Error, 0)
	}

	students := make([]*entity.Student, 0, len(studentModels))
	for i := range studentModels {
		students = append(students, r.modelToEntity(&studentModels[i]))
	}

	return students, nil
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *entity.Student) error {
	studentModel := model.Student{
		ID:        student.ID,
		Name:      student.Name,
		Barcode:   student.Barcode,
		Apples:    student.Apples(),
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&studentModel)

	if result.Error != nil {
		return r.handleDatabaseError("creating student", result.Error, student.ID)
	}

	student.ID = studentModel.ID

	r.logger.Info("Student created successfully", map[string]any{
		"student_id": studentModel.ID,
	})
	return nil
}

// ApplyAdjustment applies a signed manual delta to the student's balance,
// clamped at zero, and appends the audit record in the same transaction
func (r *StudentRepository) ApplyAdjustment(ctx context.Context, studentID uint64, delta int64, adminID uint64, reason string) (*entity.Student, int64, error) {
	r.logger.Debug("Applying student balance adjustment", map[string]any{
		"student_id": studentID,
		"delta":      delta,
		"admin_id":   adminID,
	})

	var student *entity.Student
	var applied int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var studentModel model.Student
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&studentModel, studentID)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return errs.ErrStudentNotFound
			}
			return result.Error
		}

		newBalance := entity.ClampBalance(studentModel.Apples + delta)
		applied = newBalance - studentModel.Apples
		studentModel.Apples = newBalance
		studentModel.UpdatedAt = r.timeProvider.Now()

		result = tx.Model(&studentModel).Updates(map[string]interface{}{
			"apples":     studentModel.Apples,
			"updated_at": studentModel.UpdatedAt,
		})
		if result.Error != nil {
			return result.Error
		}

		audit := entity.StudentTransaction(studentModel.ID, adminID, applied, reason, uuid.NewString(), studentModel.UpdatedAt)
		if result := tx.Create(auditRecord(audit)); result.Error != nil {
			return result.Error
		}

		student = r.modelToEntity(&studentModel)
		return nil
	})

	if err != nil {
		if errors.Is(err, errs.ErrStudentNotFound) {
			return nil, 0, err
		}
		return nil, 0, r.handleDatabaseError("applying student adjustment", err, studentID)
	}

	r.logger.Info("Student balance adjustment applied", map[string]any{
		"student_id":  studentID,
		"requested":   delta,
		"applied":     applied,
		"new_balance": student.Apples(),
	})

	return student, applied, nil
}
