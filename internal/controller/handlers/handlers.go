package handlers

import (
	"net/http"

	"github.com/Freeeeeet/library_api/internal/service"
	"go.uber.org/zap"
)

// Handlers обработчики HTTP запросов API библиотеки
type Handlers struct {
	studentService *service.StudentService
	bookService    *service.BookService
	borrowService  *service.BorrowService
	logger         *zap.Logger
}

func NewHandlers(
	studentService *service.StudentService,
	bookService *service.BookService,
	borrowService *service.BorrowService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		studentService: studentService,
		bookService:    bookService,
		borrowService:  borrowService,
		logger:         logger,
	}
}

// Index GET /
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the Book Library API",
		"endpoints": map[string]string{
			"books":    "/books",
			"students": "/students",
			"borrows":  "/borrows",
		},
	})
}
