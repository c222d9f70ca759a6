package handlers

import (
	"net/http"

	"github.com/Freeeeeet/library_api/internal/model"
)

type borrowRequest struct {
	StudentID *int64 `json:"student_id"`
	BookID    *int64 `json:"book_id"`
}

type borrowResponse struct {
	Message    string `json:"message"`
	ID         int64  `json:"id"`
	BorrowDate string `json:"borrow_date"`
}

type returnResponse struct {
	Message    string `json:"message"`
	ReturnDate string `json:"return_date"`
}

// loanResponse запись о выдаче. В списках по студенту опускается
// student_id, в списках по книге - book_id.
type loanResponse struct {
	ID         int64   `json:"id"`
	StudentID  *int64  `json:"student_id,omitempty"`
	BookID     *int64  `json:"book_id,omitempty"`
	BorrowDate string  `json:"borrow_date"`
	ReturnDate *string `json:"return_date"`
	IsReturned bool    `json:"is_returned"`
}

type loanView int

const (
	loanViewFull loanView = iota
	loanViewStudent
	loanViewBook
)

func newLoanResponses(loans []*model.Loan, view loanView) []loanResponse {
	resp := make([]loanResponse, 0, len(loans))
	for _, l := range loans {
		item := loanResponse{
			ID:         l.ID,
			BorrowDate: model.FormatTimestamp(l.BorrowDate),
			ReturnDate: model.FormatOptionalTimestamp(l.ReturnDate),
			IsReturned: l.IsReturned(),
		}
		if view != loanViewStudent {
			studentID := l.StudentID
			item.StudentID = &studentID
		}
		if view != loanViewBook {
			bookID := l.BookID
			item.BookID = &bookID
		}
		resp = append(resp, item)
	}
	return resp
}

// Borrow POST /borrows
func (h *Handlers) Borrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	loan, err := h.borrowService.Borrow(r.Context(), req.StudentID, req.BookID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, borrowResponse{
		Message:    "Book borrowed successfully",
		ID:         loan.ID,
		BorrowDate: model.FormatTimestamp(loan.BorrowDate),
	})
}

// Return POST /borrows/return
func (h *Handlers) Return(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	loan, err := h.borrowService.Return(r.Context(), req.StudentID, req.BookID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, returnResponse{
		Message:    "Book returned successfully",
		ReturnDate: model.FormatTimestamp(*loan.ReturnDate),
	})
}

// ListBorrows GET /borrows
func (h *Handlers) ListBorrows(w http.ResponseWriter, r *http.Request) {
	loans, err := h.borrowService.ListAll(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newLoanResponses(loans, loanViewFull))
}

// ListStudentBorrows GET /students/{id}/borrows
func (h *Handlers) ListStudentBorrows(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	loans, err := h.borrowService.ListByStudent(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newLoanResponses(loans, loanViewStudent))
}

// ListBookBorrows GET /books/{id}/borrows
func (h *Handlers) ListBookBorrows(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Book not found")
		return
	}

	loans, err := h.borrowService.ListByBook(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newLoanResponses(loans, loanViewBook))
}
