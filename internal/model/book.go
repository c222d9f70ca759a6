package model

type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear *int   `json:"published_year"`
}

// BookFields поля книги из запроса на создание или частичное обновление
type BookFields struct {
	Title         Optional[string] `json:"title"`
	Author        Optional[string] `json:"author"`
	PublishedYear Optional[int]    `json:"published_year"`
}

func (p BookFields) IsEmpty() bool {
	return !p.Title.Set && !p.Author.Set && !p.PublishedYear.Set
}
