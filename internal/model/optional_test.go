package model_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/library_api/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Test_StudentFields_DistinguishesAbsentNullAndValue(t *testing.T) {
	var patch model.StudentFields
	err := json.Unmarshal([]byte(`{"first_name": "Bob", "birth_date": null}`), &patch)
	require.NoError(t, err)

	assert.True(t, patch.FirstName.Present())
	assert.Equal(t, "Bob", patch.FirstName.Value)

	assert.True(t, patch.BirthDate.Set)
	assert.True(t, patch.BirthDate.Null)
	assert.False(t, patch.BirthDate.Present())

	assert.False(t, patch.Email.Set)
	assert.False(t, patch.LastName.Set)
	assert.False(t, patch.IsEmpty())
}

func Test_StudentFields_Empty(t *testing.T) {
	var patch model.StudentFields
	require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))

	assert.True(t, patch.IsEmpty())
}

func Test_Optional_RejectsWrongType(t *testing.T) {
	var patch model.BookFields
	err := json.Unmarshal([]byte(`{"published_year": "soon"}`), &patch)

	assert.Error(t, err)
}

func Test_Optional_Constructors(t *testing.T) {
	some := model.Some(1999)
	assert.True(t, some.Present())
	assert.Equal(t, 1999, some.Value)

	null := model.Null[int]()
	assert.True(t, null.Set)
	assert.False(t, null.Present())
}

func Test_ParseDate(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"2001-02-03", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-13-40", false},
		{"03/02/2001", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := model.ParseDate(tt.input)
			assert.Equal(t, tt.valid, err == nil)
		})
	}
}

func Test_FormatHelpers(t *testing.T) {
	assert.Nil(t, model.FormatDate(nil))
	assert.Nil(t, model.FormatOptionalTimestamp(nil))

	date, err := model.ParseDate("2001-02-03")
	require.NoError(t, err)
	assert.Equal(t, "2001-02-03", *model.FormatDate(&date))
	assert.Equal(t, "2001-02-03 00:00:00", model.FormatTimestamp(date))
}
