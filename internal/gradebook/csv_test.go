package gradebook

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

type memSink struct {
	files map[string]string
	err   error
}

func (s *memSink) Put(key string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.files == nil {
		s.files = map[string]string{}
	}
	s.files[key] = string(b)
	return key, nil
}

func TestWriteCSV(t *testing.T) {
	entries := []lms.GradebookEntry{
		entry(1, `Jo "JJ" Smith`, 1, "Essay, part 1", lms.Points(8.5), 10),
		entry(2, "bob", 1, "Essay, part 1", nil, 10),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	want := "Student,Assignment,SubmittedAt,Grade,MaxPoints\n" +
		`"Jo ""JJ"" Smith","Essay, part 1","2024-05-02T08:00:00.000Z",8.5,10` + "\n" +
		`"bob","Essay, part 1","2024-05-02T08:00:00.000Z",,10`
	assert.Equal(t, want, buf.String())
}

func TestExport(t *testing.T) {
	now := time.UnixMilli(1714636800123)
	sink := &memSink{}

	key, err := Export(sink, 5, sampleEntries(), now)
	require.NoError(t, err)
	assert.Equal(t, "gradebook_course_5_1714636800123.csv", key)

	lines := strings.Split(sink.files[key], "\n")
	assert.Len(t, lines, 1+len(sampleEntries()))
	assert.Equal(t, "Student,Assignment,SubmittedAt,Grade,MaxPoints", lines[0])
}

func TestExportEmptyIsNoop(t *testing.T) {
	sink := &memSink{}
	key, err := Export(sink, 5, nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, key)
	assert.Empty(t, sink.files)
}

func TestExportSinkFailure(t *testing.T) {
	sink := &memSink{err: errors.New("disk full")}
	_, err := Export(sink, 5, sampleEntries(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
