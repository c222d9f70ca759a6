package app

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/library_api/internal/config"
	"github.com/Freeeeeet/library_api/internal/repository"
	"github.com/Freeeeeet/library_api/internal/repository/base"
	"github.com/Freeeeeet/library_api/internal/repository/memory"
	"github.com/Freeeeeet/library_api/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Storage набор репозиториев выбранного хранилища
type Storage struct {
	Tx       service.Transactor
	Students service.StudentRepository
	Books    service.BookRepository
	Loans    service.LoanRepository

	close func()
}

// OpenStorage подключается к хранилищу из конфига. Для PostgreSQL
// применяет миграции перед возвратом.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return NewMemoryStorage(memory.NewStore()), nil
	}

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	migrator, err := NewMigrator(pool, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{
		Tx:       base.NewTransactor(pool),
		Students: repository.NewStudentRepository(pool),
		Books:    repository.NewBookRepository(pool),
		Loans:    repository.NewLoanRepository(pool),
		close:    pool.Close,
	}, nil
}

// NewMemoryStorage оборачивает хранилище в памяти
func NewMemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Tx:       store,
		Students: store.Students(),
		Books:    store.Books(),
		Loans:    store.Loans(),
		close:    func() {},
	}
}

func (s *Storage) Close() {
	s.close()
}
