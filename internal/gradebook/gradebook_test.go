package gradebook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

func entry(studentID int64, student string, assignmentID int64, title string, grade *float64, max float64) lms.GradebookEntry {
	return lms.GradebookEntry{
		StudentID:       studentID,
		StudentUsername: student,
		AssignmentID:    assignmentID,
		AssignmentTitle: title,
		Grade:           grade,
		MaxPoints:       max,
		SubmittedAt:     lms.Time{Time: time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)},
	}
}

func id(v int64) *int64 { return &v }

func sampleEntries() []lms.GradebookEntry {
	return []lms.GradebookEntry{
		entry(1, "carol", 10, "Quiz 1", lms.Points(8), 10),
		entry(2, "Bob", 10, "Quiz 1", nil, 10),
		entry(1, "carol", 11, "Essay", lms.Points(18), 20),
		entry(3, "alice", 11, "Essay", lms.Points(0), 0),
		entry(2, "Bob", 11, "Essay", lms.Points(15), 20),
	}
}

func TestSummarizeExample(t *testing.T) {
	entries := []lms.GradebookEntry{
		entry(1, "A", 1, "One", lms.Points(8), 10),
		entry(1, "A", 2, "Two", lms.Points(18), 20),
	}
	got := Summarize(Apply(entries, Filter{}))
	require.Len(t, got, 1)
	assert.Equal(t, 26.0, got[0].TotalEarned)
	assert.Equal(t, 30.0, got[0].TotalMax)
	require.NotNil(t, got[0].Percent)
	assert.Equal(t, 86.7, *got[0].Percent)
}

func TestSummarizeSkipsUngradedAndSortsCaseSensitive(t *testing.T) {
	got := Summarize(sampleEntries())
	require.Len(t, got, 3)

	// byte order: upper case sorts before lower case
	assert.Equal(t, []string{"Bob", "alice", "carol"},
		[]string{got[0].StudentUsername, got[1].StudentUsername, got[2].StudentUsername})

	bob := got[0]
	assert.Equal(t, 15.0, bob.TotalEarned)
	assert.Equal(t, 20.0, bob.TotalMax)
	assert.Equal(t, 75.0, *bob.Percent)

	alice := got[1]
	assert.Nil(t, alice.Percent, "zero max has no percentage")
}

func TestSummarizeTotalsEqualPlainSums(t *testing.T) {
	entries := sampleEntries()
	earned := map[int64]float64{}
	max := map[int64]float64{}
	for _, e := range entries {
		if e.Grade != nil {
			earned[e.StudentID] += *e.Grade
			max[e.StudentID] += e.MaxPoints
		}
	}
	for _, s := range Summarize(Apply(entries, Filter{})) {
		assert.Equal(t, earned[s.StudentID], s.TotalEarned, s.StudentUsername)
		assert.Equal(t, max[s.StudentID], s.TotalMax, s.StudentUsername)
		if s.Percent != nil {
			assert.GreaterOrEqual(t, *s.Percent, 0.0)
			assert.LessOrEqual(t, *s.Percent, 100.0)
		}
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		earned, max float64
		want        *float64
	}{
		{26, 30, lms.Points(86.7)},
		{1, 3, lms.Points(33.3)},
		{2, 3, lms.Points(66.7)},
		{1, 8, lms.Points(12.5)},
		{1, 16, lms.Points(6.3)}, // 6.25 rounds half up
		{10, 10, lms.Points(100)},
		{0, 10, lms.Points(0)},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := Percent(tt.earned, tt.max)
		if tt.want == nil {
			assert.Nil(t, got)
			continue
		}
		require.NotNil(t, got)
		assert.InDelta(t, *tt.want, *got, 1e-9, "%v/%v", tt.earned, tt.max)
	}
}

func TestApply(t *testing.T) {
	entries := sampleEntries()

	assert.Equal(t, entries, Apply(entries, Filter{}), "no filter is the identity")

	byAssignment := Apply(entries, Filter{AssignmentID: id(11)})
	require.Len(t, byAssignment, 3)
	for _, e := range byAssignment {
		assert.EqualValues(t, 11, e.AssignmentID)
	}

	both := Apply(entries, Filter{AssignmentID: id(11), StudentID: id(2)})
	require.Len(t, both, 1)
	assert.Equal(t, "Bob", both[0].StudentUsername)

	assert.Empty(t, Apply(entries, Filter{StudentID: id(99)}))
}

func TestParseIDFilter(t *testing.T) {
	v, err := ParseIDFilter("all")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseIDFilter("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseIDFilter(" 42 ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.EqualValues(t, 42, *v)

	_, err = ParseIDFilter("Essay")
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	entries := sampleEntries()
	assert.Equal(t, []Option{{10, "Quiz 1"}, {11, "Essay"}}, AssignmentOptions(entries))
	assert.Equal(t, []Option{{1, "carol"}, {2, "Bob"}, {3, "alice"}}, StudentOptions(entries))
	assert.Empty(t, StudentOptions(nil))
}
