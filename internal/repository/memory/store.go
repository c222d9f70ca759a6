// Package memory хранит студентов, книги и выдачи в памяти процесса.
// Используется при STORAGE=memory и в тестах; ограничения уникальности
// те же, что у схемы PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/library_api/internal/model"
	"github.com/Freeeeeet/library_api/internal/repository"
)

type txKey struct{}

type data struct {
	students map[int64]model.Student
	books    map[int64]model.Book
	loans    map[int64]model.Loan

	nextStudentID int64
	nextBookID    int64
	nextLoanID    int64
}

func (d *data) clone() *data {
	c := &data{
		students:      make(map[int64]model.Student, len(d.students)),
		books:         make(map[int64]model.Book, len(d.books)),
		loans:         make(map[int64]model.Loan, len(d.loans)),
		nextStudentID: d.nextStudentID,
		nextBookID:    d.nextBookID,
		nextLoanID:    d.nextLoanID,
	}
	for id, s := range d.students {
		c.students[id] = s
	}
	for id, b := range d.books {
		c.books[id] = b
	}
	for id, l := range d.loans {
		c.loans[id] = l
	}
	return c
}

// Store общее состояние для всех репозиториев пакета
type Store struct {
	mu   sync.RWMutex
	data *data
}

func NewStore() *Store {
	return &Store{data: &data{
		students: make(map[int64]model.Student),
		books:    make(map[int64]model.Book),
		loans:    make(map[int64]model.Loan),
	}}
}

// WithinTx выполняет fn под эксклюзивной блокировкой. При ошибке
// состояние восстанавливается из снимка, сделанного до начала.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.data = snapshot
		return err
	}

	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// read выполняет fn под блокировкой чтения, если вызов не внутри транзакции
func (s *Store) read(ctx context.Context, fn func(d *data)) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(s.data)
}

// write выполняет fn под эксклюзивной блокировкой, если вызов не внутри транзакции
func (s *Store) write(ctx context.Context, fn func(d *data) error) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.data)
}

func (s *Store) Students() *StudentRepository {
	return &StudentRepository{store: s}
}

func (s *Store) Books() *BookRepository {
	return &BookRepository{store: s}
}

func (s *Store) Loans() *LoanRepository {
	return &LoanRepository{store: s}
}

type StudentRepository struct {
	store *Store
}

func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	return r.store.write(ctx, func(d *data) error {
		for _, existing := range d.students {
			if existing.Email == student.Email {
				return repository.ErrEmailTaken
			}
		}
		d.nextStudentID++
		student.ID = d.nextStudentID
		d.students[student.ID] = copyStudent(*student)
		return nil
	})
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	var found *model.Student
	r.store.read(ctx, func(d *data) {
		if s, ok := d.students[id]; ok {
			c := copyStudent(s)
			found = &c
		}
	})
	return found, nil
}

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var found *model.Student
	r.store.read(ctx, func(d *data) {
		for _, s := range d.students {
			if s.Email == email {
				c := copyStudent(s)
				found = &c
				return
			}
		}
	})
	return found, nil
}

func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	students := []*model.Student{}
	r.store.read(ctx, func(d *data) {
		for _, s := range d.students {
			c := copyStudent(s)
			students = append(students, &c)
		}
	})
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	return r.store.write(ctx, func(d *data) error {
		if _, ok := d.students[student.ID]; !ok {
			return repository.ErrNotFound
		}
		for id, existing := range d.students {
			if id != student.ID && existing.Email == student.Email {
				return repository.ErrEmailTaken
			}
		}
		d.students[student.ID] = copyStudent(*student)
		return nil
	})
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(d *data) error {
		if _, ok := d.students[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.students, id)
		return nil
	})
}

type BookRepository struct {
	store *Store
}

func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.store.write(ctx, func(d *data) error {
		d.nextBookID++
		book.ID = d.nextBookID
		d.books[book.ID] = copyBook(*book)
		return nil
	})
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	var found *model.Book
	r.store.read(ctx, func(d *data) {
		if b, ok := d.books[id]; ok {
			c := copyBook(b)
			found = &c
		}
	})
	return found, nil
}

func (r *BookRepository) List(ctx context.Context) ([]*model.Book, error) {
	books := []*model.Book{}
	r.store.read(ctx, func(d *data) {
		for _, b := range d.books {
			c := copyBook(b)
			books = append(books, &c)
		}
	})
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *BookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.store.write(ctx, func(d *data) error {
		if _, ok := d.books[book.ID]; !ok {
			return repository.ErrNotFound
		}
		d.books[book.ID] = copyBook(*book)
		return nil
	})
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(d *data) error {
		if _, ok := d.books[id]; !ok {
			return repository.ErrNotFound
		}
		delete(d.books, id)
		return nil
	})
}

type LoanRepository struct {
	store *Store
}

func (r *LoanRepository) Create(ctx context.Context, loan *model.Loan) error {
	return r.store.write(ctx, func(d *data) error {
		if loan.ReturnDate == nil {
			for _, existing := range d.loans {
				if existing.StudentID == loan.StudentID && existing.BookID == loan.BookID && existing.ReturnDate == nil {
					return repository.ErrActiveLoanExists
				}
			}
		}
		d.nextLoanID++
		loan.ID = d.nextLoanID
		d.loans[loan.ID] = copyLoan(*loan)
		return nil
	})
}

func (r *LoanRepository) GetActive(ctx context.Context, studentID, bookID int64) (*model.Loan, error) {
	var found *model.Loan
	r.store.read(ctx, func(d *data) {
		if l, ok := findActive(d, studentID, bookID); ok {
			c := copyLoan(l)
			found = &c
		}
	})
	return found, nil
}

func (r *LoanRepository) CloseActive(ctx context.Context, studentID, bookID int64, returnedAt time.Time) (*model.Loan, error) {
	var closed *model.Loan
	err := r.store.write(ctx, func(d *data) error {
		l, ok := findActive(d, studentID, bookID)
		if !ok {
			return nil
		}
		l.ReturnDate = &returnedAt
		d.loans[l.ID] = copyLoan(l)
		c := copyLoan(l)
		closed = &c
		return nil
	})
	return closed, err
}

func (r *LoanRepository) List(ctx context.Context, filter repository.LoanFilter) ([]*model.Loan, error) {
	loans := []*model.Loan{}
	r.store.read(ctx, func(d *data) {
		for _, l := range d.loans {
			if filter.StudentID != nil && l.StudentID != *filter.StudentID {
				continue
			}
			if filter.BookID != nil && l.BookID != *filter.BookID {
				continue
			}
			c := copyLoan(l)
			loans = append(loans, &c)
		}
	})
	sort.Slice(loans, func(i, j int) bool { return loans[i].ID < loans[j].ID })
	return loans, nil
}

func findActive(d *data, studentID, bookID int64) (model.Loan, bool) {
	for _, l := range d.loans {
		if l.StudentID == studentID && l.BookID == bookID && l.ReturnDate == nil {
			return l, true
		}
	}
	return model.Loan{}, false
}

// copy* не дают вызывающему коду менять сохранённые указатели

func copyStudent(s model.Student) model.Student {
	if s.BirthDate != nil {
		t := *s.BirthDate
		s.BirthDate = &t
	}
	return s
}

func copyBook(b model.Book) model.Book {
	if b.PublishedYear != nil {
		y := *b.PublishedYear
		b.PublishedYear = &y
	}
	return b
}

func copyLoan(l model.Loan) model.Loan {
	if l.ReturnDate != nil {
		t := *l.ReturnDate
		l.ReturnDate = &t
	}
	return l
}
