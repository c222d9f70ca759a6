package model

import "time"

type Student struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date"` // nil если дата рождения не указана
}

// StudentFields поля студента из запроса на создание или частичное обновление.
// Поля, отсутствующие в запросе, остаются без изменений.
type StudentFields struct {
	Email     Optional[string] `json:"email"`
	FirstName Optional[string] `json:"first_name"`
	LastName  Optional[string] `json:"last_name"`
	BirthDate Optional[string] `json:"birth_date"`
}

// IsEmpty сообщает, что в запросе нет ни одного поля
func (p StudentFields) IsEmpty() bool {
	return !p.Email.Set && !p.FirstName.Set && !p.LastName.Set && !p.BirthDate.Set
}
