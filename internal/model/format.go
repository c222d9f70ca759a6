package model

import "time"

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// ParseDate разбирает календарную дату в формате YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate возвращает nil для пустой даты
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatOptionalTimestamp возвращает nil для пустой отметки времени
func FormatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}
