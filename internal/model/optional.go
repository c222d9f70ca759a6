package model

import jsoniter "github.com/json-iterator/go"

// Optional различает три состояния JSON поля: отсутствует, null и значение.
type Optional[T any] struct {
	Set   bool // поле присутствует в запросе
	Null  bool // поле передано как null
	Value T
}

// Some создаёт заданное значение
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

// Null создаёт явный null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON вызывается только для присутствующих полей,
// поэтому отсутствующее поле остаётся с Set == false.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &o.Value)
}

// Present сообщает, что передано непустое (не null) значение
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
