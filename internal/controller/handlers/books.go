package handlers

import (
	"net/http"

	"github.com/Freeeeeet/library_api/internal/model"
)

type bookResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear *int   `json:"published_year"`
}

func newBookResponse(b *model.Book) bookResponse {
	return bookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		PublishedYear: b.PublishedYear,
	}
}

// ListBooks GET /books
func (h *Handlers) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]bookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, newBookResponse(b))
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetBook GET /books/{id}
func (h *Handlers) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Book not found")
		return
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newBookResponse(book))
}

// CreateBook POST /books
func (h *Handlers) CreateBook(w http.ResponseWriter, r *http.Request) {
	var fields model.BookFields
	if err := decodeJSON(r, &fields); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	book, err := h.bookService.Create(r.Context(), fields)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, createdResponse{
		Message: "Book added successfully",
		ID:      book.ID,
	})
}

// UpdateBook PUT /books/{id}
func (h *Handlers) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Book not found")
		return
	}

	var fields model.BookFields
	if err := decodeJSON(r, &fields); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if err := h.bookService.Update(r.Context(), id, fields); err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "Book updated successfully"})
}

// DeleteBook DELETE /books/{id}
func (h *Handlers) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Book not found")
		return
	}

	if err := h.bookService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "Book deleted successfully"})
}
