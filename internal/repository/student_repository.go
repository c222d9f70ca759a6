package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

const studentsEmailKey = "students_email_key"

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт нового студента
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (email, first_name, last_name, birth_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		student.Email,
		student.FirstName,
		student.LastName,
		student.BirthDate,
	).Scan(&student.ID)

	if err != nil {
		if base.IsUniqueViolation(err, studentsEmailKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID получает студента по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `
		SELECT id, email, first_name, last_name, birth_date
		FROM students
		WHERE id = $1
	`

	var student model.Student
	err := r.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Email,
		&student.FirstName,
		&student.LastName,
		&student.BirthDate,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return &student, nil
}

// GetByEmail получает студента по email (точное совпадение)
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `
		SELECT id, email, first_name, last_name, birth_date
		FROM students
		WHERE email = $1
	`

	var student model.Student
	err := r.QueryRow(ctx, query, email).Scan(
		&student.ID,
		&student.Email,
		&student.FirstName,
		&student.LastName,
		&student.BirthDate,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by email: %w", err)
	}

	return &student, nil
}

// List получает всех студентов
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `
		SELECT id, email, first_name, last_name, birth_date
		FROM students
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	students := []*model.Student{}
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.Email,
			&student.FirstName,
			&student.LastName,
			&student.BirthDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// Update сохраняет все поля студента
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET email = $1, first_name = $2, last_name = $3, birth_date = $4
		WHERE id = $5
	`

	affected, err := r.ExecAffected(
		ctx, query,
		student.Email,
		student.FirstName,
		student.LastName,
		student.BirthDate,
		student.ID,
	)

	if err != nil {
		if base.IsUniqueViolation(err, studentsEmailKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("update student: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete удаляет студента. Записи о выдаче книг не затрагиваются.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
