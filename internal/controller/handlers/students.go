package handlers

import (
	"net/http"

	"github.com/Freeeeeet/library_api/internal/model"
)

type studentResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date"`
}

func newStudentResponse(s *model.Student) studentResponse {
	return studentResponse{
		ID:        s.ID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		BirthDate: model.FormatDate(s.BirthDate),
	}
}

// ListStudents GET /students
func (h *Handlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.studentService.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]studentResponse, 0, len(students))
	for _, s := range students {
		resp = append(resp, newStudentResponse(s))
	}

	WriteJSON(w, http.StatusOK, resp)
}

// GetStudent GET /students/{id}
func (h *Handlers) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	student, err := h.studentService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, newStudentResponse(student))
}

// CreateStudent POST /students
func (h *Handlers) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var fields model.StudentFields
	if err := decodeJSON(r, &fields); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	student, err := h.studentService.Create(r.Context(), fields)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, createdResponse{
		Message: "Student added successfully",
		ID:      student.ID,
	})
}

// UpdateStudent PUT /students/{id}
func (h *Handlers) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	var fields model.StudentFields
	if err := decodeJSON(r, &fields); err != nil {
		WriteError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if err := h.studentService.Update(r.Context(), id, fields); err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "Student updated successfully"})
}

// DeleteStudent DELETE /students/{id}
func (h *Handlers) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		WriteError(w, http.StatusNotFound, "Student not found")
		return
	}

	if err := h.studentService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "Student deleted successfully"})
}
