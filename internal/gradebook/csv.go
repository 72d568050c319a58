package gradebook

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mind-engage/mindengage-classroom/internal/lms"
)

var csvHeader = []string{"Student", "Assignment", "SubmittedAt", "Grade", "MaxPoints"}

// Sink receives exported files.
type Sink interface {
	Put(key string, r io.Reader) (string, error)
}

// WriteCSV serialises entries. Text columns are always quoted with embedded
// quotes doubled; numeric columns are bare and a missing grade is an empty
// field. Rows are joined by "\n" without a trailing newline.
func WriteCSV(w io.Writer, entries []lms.GradebookEntry) error {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, e := range entries {
		grade := ""
		if e.Grade != nil {
			grade = formatPoints(*e.Grade)
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			quote(e.StudentUsername),
			quote(e.AssignmentTitle),
			quote(e.SubmittedAt.ISO()),
			grade,
			formatPoints(e.MaxPoints),
		}, ","))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FileName is the download name of a course export taken at now.
func FileName(courseID int64, now time.Time) string {
	return fmt.Sprintf("gradebook_course_%d_%d.csv", courseID, now.UnixMilli())
}

// Export writes entries to sink under FileName. It does nothing and returns
// an empty key when entries is empty.
func Export(sink Sink, courseID int64, entries []lms.GradebookEntry, now time.Time) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	var b strings.Builder
	if err := WriteCSV(&b, entries); err != nil {
		return "", err
	}
	key, err := sink.Put(FileName(courseID, now), strings.NewReader(b.String()))
	if err != nil {
		return "", errors.Wrap(err, "export gradebook")
	}
	return key, nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
