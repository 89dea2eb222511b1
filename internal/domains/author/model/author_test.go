package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBirthDate(t *testing.T) {
	// Late evening in a zone ahead of UTC is still the 17th locally
	today := time.Date(2026, time.October, 17, 23, 30, 0, 0, time.FixedZone("ICT", 7*3600))

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr string
	}{
		{name: "past", raw: "1990-02-28", want: "1990-02-28"},
		{name: "today", raw: "2026-10-17", want: "2026-10-17"},
		{name: "tomorrow", raw: "2026-10-18", wantErr: "cannot be in the future"},
		{name: "wrong separator", raw: "2026/10/17", wantErr: "yyyy-MM-dd"},
		{name: "impossible day", raw: "2023-02-30", wantErr: "yyyy-MM-dd"},
		{name: "empty", raw: "", wantErr: "yyyy-MM-dd"},
		{name: "surrounding spaces", raw: " 1990-01-01 ", wantErr: "yyyy-MM-dd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBirthDate(tt.raw, today)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAuthorInput)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(BirthDateLayout))
		})
	}
}

func TestAuthorInput_Validate(t *testing.T) {
	assert.NoError(t, AuthorInput{Name: "Ann", BirthDate: "1990-01-01"}.Validate())

	err := AuthorInput{Name: "   ", BirthDate: "1990-01-01"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author name is required")

	err = AuthorInput{Name: "Ann"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "author birth date is required")
}

func TestUniqueByName(t *testing.T) {
	authors := []Author{{Name: "Ann", ID: 1}, {Name: "Bob"}, {Name: "Ann", ID: 2}}

	got := UniqueByName(authors)

	assert.Equal(t, []Author{{Name: "Ann", ID: 1}, {Name: "Bob"}}, got)
}

func TestAuthor_ToResponse(t *testing.T) {
	a := Author{ID: 4, Name: "Ann", BirthDate: time.Date(1980, 1, 2, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, AuthorResponse{ID: 4, Name: "Ann", BirthDate: "1980-01-02"}, a.ToResponse())
}
