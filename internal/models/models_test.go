package models

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "array", in: `["a","b"]`, want: []string{"a", "b"}},
		{name: "scalar", in: `"only"`, want: []string{"only"}},
		{name: "empty scalar", in: `""`, want: []string{}},
		{name: "array drops blanks", in: `["a",""]`, want: []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			require.NoError(t, json.Unmarshal([]byte(tt.in), &l))
			assert.Equal(t, tt.want, []string(l))
		})
	}

	var l StringList
	assert.Error(t, json.Unmarshal([]byte(`42`), &l))
}

func TestPostFieldsApplyTo(t *testing.T) {
	var fields PostFields
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "SDE Intern",
		"description": "Two rounds",
		"questionsAsked": "Reverse a list",
		"numberOfRounds": 2,
		"createdByEmail": "mallory@example.com"
	}`), &fields))

	post := &Post{CreatedByEmail: "alice@example.com", Tags: []string{"dp"}}
	fields.ApplyTo(post)

	assert.Equal(t, "SDE Intern", post.Title)
	assert.Equal(t, []string{"Reverse a list"}, post.QuestionsAsked)
	assert.Equal(t, []string{"dp"}, post.Tags, "absent arrays are untouched")
	require.NotNil(t, post.NumberOfRounds)
	assert.Equal(t, 2, *post.NumberOfRounds)
	assert.Equal(t, "alice@example.com", post.CreatedByEmail)
}

func TestPostOwnedBy(t *testing.T) {
	post := &Post{CreatedByEmail: "alice@example.com"}
	assert.True(t, post.OwnedBy(" Alice@Example.com "))
	assert.False(t, post.OwnedBy("bob@example.com"))
	assert.False(t, (&Post{}).OwnedBy(""))
}

func TestDifficultyValid(t *testing.T) {
	for _, d := range []Difficulty{"", DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMediumHard} {
		assert.True(t, d.Valid(), string(d))
	}
	assert.False(t, Difficulty("Impossible").Valid())
	assert.False(t, Difficulty("easy").Valid())
}

func TestNormalizeID(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 24)

	got, ok := NormalizeID("AAAAAAAAAAAAAAAAAAAAAAAA")
	assert.True(t, ok)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", got)

	for _, bad := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz", id + "0"} {
		_, ok := NormalizeID(bad)
		assert.False(t, ok, bad)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewDuplicateEmailError("dup"), http.StatusConflict},
		{NewUnauthorizedError("no"), http.StatusUnauthorized},
		{NewForbiddenError("no"), http.StatusForbidden},
		{NewNotFoundError("gone"), http.StatusNotFound},
		{NewMisconfigurationError("secret"), http.StatusInternalServerError},
		{NewInternalError(errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeInternal))
	assert.False(t, IsCode(cause, CodeInternal))
}
