package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   BookStatus
		requested string
		want      BookStatus
		wantErr   error
	}{
		{name: "initial published", current: "", requested: "PUBLISHED", want: StatusPublished},
		{name: "initial unpublished", current: "", requested: "UNPUBLISHED", want: StatusUnpublished},
		{name: "publish", current: StatusUnpublished, requested: "PUBLISHED", want: StatusPublished},
		{name: "unpublished no-op", current: StatusUnpublished, requested: "UNPUBLISHED", want: StatusUnpublished},
		{name: "published no-op", current: StatusPublished, requested: "PUBLISHED", want: StatusPublished},
		{name: "demotion", current: StatusPublished, requested: "UNPUBLISHED", wantErr: ErrIllegalTransition},
		{name: "unknown literal", current: "", requested: "PREVIEW", wantErr: ErrInvalidStatus},
		{name: "lower case", current: StatusUnpublished, requested: "published", wantErr: ErrInvalidStatus},
		{name: "empty", current: StatusPublished, requested: "", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveStatus(tt.current, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStatus_InvalidLiteralBeatsTransition(t *testing.T) {
	_, err := ResolveStatus(StatusPublished, "DRAFT")

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.NotErrorIs(t, err, ErrIllegalTransition)
}

func TestBookStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPublished.IsValid())
	assert.True(t, StatusUnpublished.IsValid())
	assert.False(t, BookStatus("").IsValid())
	assert.False(t, BookStatus("PREVIEW").IsValid())
}
