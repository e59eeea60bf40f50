package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/angelmondragon/taskplanner-backend/pkg/db/models"
)

// Columns is the fixed header order for task exports. Downstream sheets
// are keyed to this exact layout; do not reorder.
var Columns = []string{
	"date", "owner_name", "user_id", "status", "total_pages_done",
	"assign_website", "task_updates", "planner", "task_assign_no",
	"other_tasks", "additional", "note",
}

// File is a rendered export ready to stream to a client.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TasksCSV renders planner rows into the fixed column layout, one record
// per row, header first.
func TasksCSV(filename string, rows []models.Task) (*File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for i := range rows {
		if err := w.Write(record(&rows[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &File{
		Filename:    filename,
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func record(t *models.Task) []string {
	return []string{
		t.Date,
		t.OwnerName,
		t.UserID,
		t.Status,
		strconv.Itoa(t.TotalPagesDone),
		t.AssignWebsite,
		t.TaskUpdates,
		t.Planner,
		t.TaskAssignNo,
		t.OtherTasks,
		t.Additional,
		t.Note,
	}
}
