package model

import "time"

// Loan - запись о выдаче книги студенту (таблица student_books).
// Пока ReturnDate == nil, книга считается на руках.
type Loan struct {
	ID         int64      `json:"id"`
	StudentID  int64      `json:"student_id"`
	BookID     int64      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// IsReturned сообщает, возвращена ли книга
func (l *Loan) IsReturned() bool {
	return l.ReturnDate != nil
}
