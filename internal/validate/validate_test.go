package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type form struct {
	Title     string  `json:"title" validate:"notblank"`
	Body      string  `json:"body" validate:"required"`
	MaxPoints float64 `json:"maxPoints" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(form{Title: "Intro", Body: "x", MaxPoints: 10}))

	err := Struct(form{Title: "  ", MaxPoints: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Error
	}
	assert.Equal(t, "title must not be blank", fields["title"])
	assert.Equal(t, "body is required", fields["body"])
	assert.Contains(t, fields, "maxPoints")
}
