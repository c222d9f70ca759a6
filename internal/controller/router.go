package controller

import (
	"net/http"

	"github.com/Freeeeeet/library_api/internal/controller/handlers"
	"github.com/Freeeeeet/library_api/internal/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HTTPController собирает маршруты API и middleware
type HTTPController struct {
	router   *mux.Router
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewHTTPController(
	studentService *service.StudentService,
	bookService *service.BookService,
	borrowService *service.BorrowService,
	logger *zap.Logger,
) *HTTPController {
	c := &HTTPController{
		router:   mux.NewRouter(),
		handlers: handlers.NewHandlers(studentService, bookService, borrowService, logger),
		logger:   logger,
	}

	c.registerRoutes()

	return c
}

// registerRoutes регистрирует все маршруты
func (c *HTTPController) registerRoutes() {
	r := c.router
	h := c.handlers

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)

	// Студенты
	r.HandleFunc("/students", h.ListStudents).Methods(http.MethodGet)
	r.HandleFunc("/students", h.CreateStudent).Methods(http.MethodPost)
	r.HandleFunc("/students/{id:[0-9]+}", h.GetStudent).Methods(http.MethodGet)
	r.HandleFunc("/students/{id:[0-9]+}", h.UpdateStudent).Methods(http.MethodPut)
	r.HandleFunc("/students/{id:[0-9]+}", h.DeleteStudent).Methods(http.MethodDelete)
	r.HandleFunc("/students/{id:[0-9]+}/borrows", h.ListStudentBorrows).Methods(http.MethodGet)

	// Книги
	r.HandleFunc("/books", h.ListBooks).Methods(http.MethodGet)
	r.HandleFunc("/books", h.CreateBook).Methods(http.MethodPost)
	r.HandleFunc("/books/{id:[0-9]+}", h.GetBook).Methods(http.MethodGet)
	r.HandleFunc("/books/{id:[0-9]+}", h.UpdateBook).Methods(http.MethodPut)
	r.HandleFunc("/books/{id:[0-9]+}", h.DeleteBook).Methods(http.MethodDelete)
	r.HandleFunc("/books/{id:[0-9]+}/borrows", h.ListBookBorrows).Methods(http.MethodGet)

	// Выдачи
	r.HandleFunc("/borrows", h.ListBorrows).Methods(http.MethodGet)
	r.HandleFunc("/borrows", h.Borrow).Methods(http.MethodPost)
	r.HandleFunc("/borrows/return", h.Return).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// Handler возвращает роутер, обёрнутый в middleware
func (c *HTTPController) Handler() http.Handler {
	return withRequestID(withLogging(withRecovery(c.router, c.logger), c.logger))
}
