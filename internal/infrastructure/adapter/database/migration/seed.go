package migration

import (
	"context"
	"errors"

	"github.com/nileacademy/apple-rewards/internal/domain/entity"
	errs "github.com/nileacademy/apple-rewards/internal/domain/error"
	coreport "github.com/nileacademy/apple-rewards/internal/domain/port/core"
	"github.com/nileacademy/apple-rewards/internal/domain/port/persistence"
)

// PasswordHasher derives storable hashes for seeded accounts
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Default staff accounts created on an empty database. Barcodes follow the
// scan prefix convention: '2' for admins, '3' for assistants, '1' for
// students.
var defaultStaff = []struct {
	name     string
	email    string
	role     entity.Role
	barcode  string
	password string
}{
	{"Sara", "sara@nileacademy.example", entity.RoleAdmin, "2000001", "change-me-admin"},
	{"Omar", "omar@nileacademy.example", entity.RoleAssistant, "3000001", "change-me"},
	{"Leila", "leila@nileacademy.example", entity.RoleAssistant, "3000002", "change-me"},
}

var defaultStudents = []struct {
	name    string
	barcode string
}{
	{"Adam", "1000001"},
	{"Nour", "1000002"},
	{"Youssef", "1000003"},
}

// Seeder creates default accounts on a fresh database
type Seeder struct {
	userRepo     persistence.UserRepository
	studentRepo  persistence.StudentRepository
	hasher       PasswordHasher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSeeder creates a new Seeder
func NewSeeder(
	userRepo persistence.UserRepository,
	studentRepo persistence.StudentRepository,
	hasher PasswordHasher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Seeder {
	return &Seeder{
		userRepo:     userRepo,
		studentRepo:  studentRepo,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SeedDefaults creates the default staff and students, skipping any account
// that already exists
func (s *Seeder) SeedDefaults(ctx context.Context) error {
	for _, staff := range defaultStaff {
		_, err := s.userRepo.GetByEmail(ctx, staff.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrUserNotFound) {
			return err
		}

		hash, err := s.hasher.Hash(staff.password)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		user := &entity.User{
			Name:         staff.name,
			Email:        staff.email,
			PasswordHash: hash,
			Role:         staff.role,
			Barcode:      staff.barcode,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return err
		}

		s.logger.Info("Seeded staff account", map[string]any{
			"name": staff.name,
			"role": staff.role,
		})
	}

	for _, st := range defaultStudents {
		_, err := s.studentRepo.GetByBarcode(ctx, st.barcode)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrStudentNotFound) {
			return err
		}

		now := s.timeProvider.Now()
		student := &entity.Student{
			Name:      st.name,
			Barcode:   st.barcode,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.studentRepo.Create(ctx, student); err != nil {
			return err
		}

		s.logger.Info("Seeded student", map[string]any{
			"name": st.name,
		})
	}

	return nil
}
