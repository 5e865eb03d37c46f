package interchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// The fixed non-answer columns of the interchange layout.
const (
	colType              = "Type"
	colQuestion          = "Question"
	colAnswerPrefix      = "Answer"
	colCorrectAnswer     = "CorrectAnswer"
	colCorrectFeedback   = "CorrectFeedback"
	colIncorrectFeedback = "IncorrectFeedback"
)

// minAnswerColumns is the external tool's standard layout width; export
// widens the header when a question carries more answers.
const minAnswerColumns = 4

// ReadCSV parses an interchange spreadsheet. The header row is required
// and may carry any number of AnswerN columns; data rows shorter than the
// header are padded with blanks. A malformed header or unreadable CSV
// fails the whole file — per-row content problems are Import's business,
// not the framing's.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("interchange file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read interchange header: %w", err)
	}

	cols, answerCols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read interchange row %d: %w", len(rows)+1, err)
		}

		cell := func(idx int) string {
			if idx < 0 || idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		row := Row{
			Type:              cell(cols[colType]),
			Question:          cell(cols[colQuestion]),
			CorrectAnswer:     cell(cols[colCorrectAnswer]),
			CorrectFeedback:   cell(cols[colCorrectFeedback]),
			IncorrectFeedback: cell(cols[colIncorrectFeedback]),
		}
		for _, idx := range answerCols {
			row.Answers = append(row.Answers, cell(idx))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes rows in the canonical column order:
// Type, Question, Answer1..AnswerN, CorrectAnswer, CorrectFeedback,
// IncorrectFeedback.
func WriteCSV(w io.Writer, rows []Row) error {
	width := minAnswerColumns
	for _, row := range rows {
		if len(row.Answers) > width {
			width = len(row.Answers)
		}
	}

	header := []string{colType, colQuestion}
	for i := 1; i <= width; i++ {
		header = append(header, colAnswerPrefix+strconv.Itoa(i))
	}
	header = append(header, colCorrectAnswer, colCorrectFeedback, colIncorrectFeedback)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write interchange header: %w", err)
	}

	for _, row := range rows {
		record := []string{row.Type, row.Question}
		for i := 0; i < width; i++ {
			if i < len(row.Answers) {
				record = append(record, row.Answers[i])
			} else {
				record = append(record, "")
			}
		}
		record = append(record, row.CorrectAnswer, row.CorrectFeedback, row.IncorrectFeedback)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write interchange row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// headerIndex resolves the required columns and the AnswerN columns in
// numeric order.
func headerIndex(header []string) (map[string]int, []int, error) {
	cols := map[string]int{
		colType:              -1,
		colQuestion:          -1,
		colCorrectAnswer:     -1,
		colCorrectFeedback:   -1,
		colIncorrectFeedback: -1,
	}

	type answerCol struct{ n, idx int }
	var answers []answerCol

	for idx, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := cols[name]; ok {
			cols[name] = idx
			continue
		}
		if rest, found := strings.CutPrefix(name, colAnswerPrefix); found {
			n, err := strconv.Atoi(rest)
			if err == nil && n > 0 {
				answers = append(answers, answerCol{n: n, idx: idx})
			}
		}
	}

	for name, idx := range cols {
		if idx < 0 {
			return nil, nil, fmt.Errorf("interchange header is missing column %q", name)
		}
	}
	if len(answers) == 0 {
		return nil, nil, fmt.Errorf("interchange header has no Answer columns")
	}

	sort.Slice(answers, func(i, j int) bool { return answers[i].n < answers[j].n })
	answerIdx := make([]int, len(answers))
	for i, a := range answers {
		answerIdx[i] = a.idx
	}
	return cols, answerIdx, nil
}
