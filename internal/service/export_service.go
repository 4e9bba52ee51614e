package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/export"
)

var fileNameUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

type timetableSessionReader interface {
	ListByClass(ctx context.Context, classID int64) ([]models.SessionDetail, error)
}

type classFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Class, error)
}

// ExportResult is a rendered document ready to be streamed.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// TimetableExportService renders class timetables as CSV, PDF or XLSX.
type TimetableExportService struct {
	sessions timetableSessionReader
	classes  classFinder
	logger   *zap.Logger
}

// NewTimetableExportService constructs a TimetableExportService.
func NewTimetableExportService(sessions timetableSessionReader, classes classFinder, logger *zap.Logger) *TimetableExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableExportService{sessions: sessions, classes: classes, logger: logger}
}

// ExportClass renders the weekly grid of a class in format.
func (s *TimetableExportService) ExportClass(ctx context.Context, classID int64, format string) (*ExportResult, error) {
	renderer, err := export.ForFormat(export.Format(strings.ToLower(strings.TrimSpace(format))))
	if err != nil {
		return nil, validationError(err, "unsupported export format")
	}
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "class", "load")
	}
	sessions, err := s.sessions.ListByClass(ctx, classID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "session", "list")
	}

	data, err := renderer.Render(TimetableGrid(class.Name, sessions))
	if err != nil {
		s.logger.Error("failed to render timetable", zap.Int64("class_id", classID), zap.String("format", renderer.Extension()), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable")
	}

	return &ExportResult{
		FileName:    fmt.Sprintf("emploi-du-temps-%s.%s", slugify(class.Name), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// TimetableGrid lays sessions out as one row per time slot and one column per
// weekday. Sessions sharing a cell are joined with " / ".
func TimetableGrid(className string, sessions []models.SessionDetail) export.Table {
	headers := make([]string, 0, len(models.Weekdays)+1)
	headers = append(headers, "Horaire")
	for _, day := range models.Weekdays {
		headers = append(headers, string(day))
	}

	cells := make([][][]string, len(models.TimeSlots))
	for i := range cells {
		cells[i] = make([][]string, len(models.Weekdays))
	}
	for _, session := range sessions {
		row, col := session.TimeSlot.Index(), session.Weekday.Index()
		if row < 0 || col < 0 {
			continue
		}
		cells[row][col] = append(cells[row][col], describeSession(session))
	}

	rows := make([][]string, 0, len(models.TimeSlots))
	for i, slot := range models.TimeSlots {
		row := make([]string, 0, len(headers))
		row = append(row, string(slot))
		for _, entries := range cells[i] {
			row = append(row, strings.Join(entries, " / "))
		}
		rows = append(rows, row)
	}

	return export.Table{Title: "Emploi du temps - " + className, Headers: headers, Rows: rows}
}

func describeSession(session models.SessionDetail) string {
	label := session.UECode
	if session.UEName != "" {
		label += " " + session.UEName
	}
	if session.RoomName != "" {
		label += " (" + session.RoomName + ")"
	}
	if session.TeacherName != "" {
		label += " - " + session.TeacherName
	}
	return strings.TrimSpace(label)
}

func slugify(name string) string {
	slug := strings.Trim(fileNameUnsafe.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "classe"
	}
	return slug
}
