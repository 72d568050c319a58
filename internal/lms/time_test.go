package lms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"2024-03-01T10:20:30Z"`, "2024-03-01T10:20:30.000Z"},
		{`"2024-03-01T10:20:30.1234567"`, "2024-03-01T10:20:30.123Z"},
		{`"2024-03-01T12:20:30+02:00"`, "2024-03-01T10:20:30.000Z"},
		{`"2024-03-01T10:20"`, "2024-03-01T10:20:00.000Z"},
		{`"2024-03-01"`, "2024-03-01T00:00:00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Time
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got.ISO())
		})
	}
}

func TestTimeNullAndGarbage(t *testing.T) {
	var got Time
	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	assert.True(t, got.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &got))
}

func TestGradebookEntryDecode(t *testing.T) {
	raw := `[{"studentId":7,"studentUsername":"ana","assignmentId":3,"assignmentTitle":"Essay",
		"grade":null,"maxPoints":20,"submittedAt":"2024-05-02T08:00:00Z"}]`
	var entries []GradebookEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Grade)
	assert.Equal(t, 20.0, entries[0].MaxPoints)
	assert.Equal(t, "2024-05-02T08:00:00.000Z", entries[0].SubmittedAt.ISO())
}
