package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository"
	"go.uber.org/zap"
)

type StudentService struct {
	tx          Transactor
	studentRepo StudentRepository
	logger      *zap.Logger
}

func NewStudentService(tx Transactor, studentRepo StudentRepository, logger *zap.Logger) *StudentService {
	return &StudentService{
		tx:          tx,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// List возвращает всех студентов
func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	students, err := s.studentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// Get возвращает студента или ошибку вида ErrNotFound
func (s *StudentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}

	if student == nil {
		return nil, notFoundError(msgStudentNotFound)
	}

	return student, nil
}

// Exists проверяет, что студент существует
func (s *StudentService) Exists(ctx context.Context, id int64) (bool, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get student: %w", err)
	}
	return student != nil, nil
}

// Create добавляет студента. email, first_name и last_name обязательны,
// birth_date необязательна и должна быть в формате YYYY-MM-DD.
func (s *StudentService) Create(ctx context.Context, fields model.StudentFields) (*model.Student, error) {
	if !hasText(fields.Email) || !hasText(fields.FirstName) || !hasText(fields.LastName) {
		return nil, validationError(msgStudentFields)
	}

	student := &model.Student{
		Email:     fields.Email.Value,
		FirstName: fields.FirstName.Value,
		LastName:  fields.LastName.Value,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.studentRepo.GetByEmail(ctx, student.Email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}

		if existing != nil {
			return conflictError(msgEmailTaken)
		}

		if fields.BirthDate.Present() {
			birthDate, err := parseBirthDate(fields.BirthDate.Value)
			if err != nil {
				return err
			}
			student.BirthDate = &birthDate
		}

		err = s.studentRepo.Create(ctx, student)
		if errors.Is(err, repository.ErrEmailTaken) {
			return conflictError(msgEmailTaken)
		}
		if err != nil {
			return fmt.Errorf("create student: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Student created",
		zap.Int64("student_id", student.ID),
		zap.String("email", student.Email),
	)

	return student, nil
}

// Update применяет только переданные поля. Все поля проверяются до того,
// как что-либо будет изменено.
func (s *StudentService) Update(ctx context.Context, id int64, fields model.StudentFields) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		student, err := s.studentRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get student: %w", err)
		}

		if student == nil {
			return notFoundError(msgStudentNotFound)
		}

		if fields.IsEmpty() {
			return validationError(msgNoData)
		}

		updated, err := applyStudentFields(*student, fields)
		if err != nil {
			return err
		}

		if updated.Email != student.Email {
			existing, err := s.studentRepo.GetByEmail(ctx, updated.Email)
			if err != nil {
				return fmt.Errorf("check email: %w", err)
			}
			if existing != nil && existing.ID != id {
				return conflictError(msgEmailTaken)
			}
		}

		err = s.studentRepo.Update(ctx, &updated)
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			return conflictError(msgEmailTaken)
		case errors.Is(err, repository.ErrNotFound):
			return notFoundError(msgStudentNotFound)
		case err != nil:
			return fmt.Errorf("update student: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Student updated", zap.Int64("student_id", id))

	return nil
}

// Delete удаляет студента. Записи о выдаче книг остаются в истории.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		err := s.studentRepo.Delete(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return notFoundError(msgStudentNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete student: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Student deleted", zap.Int64("student_id", id))

	return nil
}

// applyStudentFields возвращает копию студента с применёнными полями
func applyStudentFields(student model.Student, fields model.StudentFields) (model.Student, error) {
	required := []struct {
		name  string
		field model.Optional[string]
	}{
		{"email", fields.Email},
		{"first_name", fields.FirstName},
		{"last_name", fields.LastName},
	}
	for _, r := range required {
		if r.field.Set && !hasText(r.field) {
			return student, validationError(fmt.Sprintf(msgRequiredFieldNotSet, r.name))
		}
	}

	var birthDate *time.Time
	if fields.BirthDate.Present() {
		parsed, err := parseBirthDate(fields.BirthDate.Value)
		if err != nil {
			return student, err
		}
		birthDate = &parsed
	}

	if fields.Email.Set {
		student.Email = fields.Email.Value
	}
	if fields.FirstName.Set {
		student.FirstName = fields.FirstName.Value
	}
	if fields.LastName.Set {
		student.LastName = fields.LastName.Value
	}
	if fields.BirthDate.Set {
		// явный null очищает дату рождения
		student.BirthDate = birthDate
	}

	return student, nil
}

func parseBirthDate(value string) (time.Time, error) {
	birthDate, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, validationError(msgInvalidDate)
	}
	return birthDate, nil
}

func hasText(field model.Optional[string]) bool {
	return field.Present() && strings.TrimSpace(field.Value) != ""
}
