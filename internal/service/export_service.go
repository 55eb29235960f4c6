package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/RevivalFireMinistries/dept-selection-app/internal/model"
	"github.com/RevivalFireMinistries/dept-selection-app/internal/repository"
)

// ── export module errors ──

var (
	ErrUnknownExportType  = errors.New("export type must be member or department")
	ErrExportGenerateFail = errors.New("failed to generate the Excel workbook")
)

// Export types accepted by Export.
const (
	ExportByMember     = "member"
	ExportByDepartment = "department"
)

// ExportService renders sign-up data as an Excel workbook.
//
// The workbook is returned as a bytes.Buffer; the handler sets
// Content-Disposition and streams it. Two layouts:
//   - by member: a "Members" sheet with one Yes-column per department,
//     plus a "Summary" sheet of per-department counts
//   - by department: a "Summary" sheet, plus one sheet per department
//     listing its members under a small header block
type ExportService interface {
	// Export builds the workbook. approvedOnly restricts the selections
	// counted and marked to status=approved; otherwise every non-superseded
	// row counts. Returns buf, suggested filename, error.
	Export(ctx context.Context, exportType string, approvedOnly bool) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) Export(ctx context.Context, exportType string, approvedOnly bool) (*bytes.Buffer, string, error) {
	switch exportType {
	case ExportByMember:
		return s.exportByMember(ctx, approvedOnly)
	case ExportByDepartment, "":
		return s.exportByDepartment(ctx, approvedOnly)
	default:
		return nil, "", ErrUnknownExportType
	}
}

// exportCounts reports whether a selection row participates in the export.
func exportCounts(sel *model.Selection, approvedOnly bool) bool {
	if approvedOnly {
		return sel.EffectiveStatus() == model.StatusApproved
	}
	return !sel.Superseded()
}

// ═══════════════════════════════════════════════════════════
// Export — by member
// ═══════════════════════════════════════════════════════════

func (s *exportService) exportByMember(ctx context.Context, approvedOnly bool) (*bytes.Buffer, string, error) {
	// 1. Departments form the dynamic column set, sorted by name.
	departments, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, "", err
	}

	// 2. Members with their selection rows, newest first.
	members, err := s.repo.Member.List(ctx)
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Members"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 3. Header row: fixed columns then one per department.
	headers := []string{"Full Name", "Phone", "Email", "Address", "Submitted On"}
	for _, dept := range departments {
		headers = append(headers, dept.Name)
	}
	for i, header := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), header)
	}

	// 4. Member rows with Yes cells under selected departments.
	deptCounts := make(map[uint]int)
	row := 2
	for i := range members {
		member := &members[i]
		f.SetCellValue(sheetName, cell("A", row), member.FullName)
		f.SetCellValue(sheetName, cell("B", row), member.Phone)
		f.SetCellValue(sheetName, cell("C", row), member.Email)
		f.SetCellValue(sheetName, cell("D", row), member.Address)
		f.SetCellValue(sheetName, cell("E", row), member.CreatedAt.Format("2006-01-02 15:04"))

		selected := make(map[uint]bool)
		for j := range member.Selections {
			sel := &member.Selections[j]
			if exportCounts(sel, approvedOnly) {
				selected[sel.DepartmentID] = true
				deptCounts[sel.DepartmentID]++
			}
		}
		for j, dept := range departments {
			if selected[dept.ID] {
				f.SetCellValue(sheetName, cell(colName(5+j), row), "Yes")
			}
		}
		row++
	}

	for i := range headers {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	// 5. Summary sheet: per-department member counts.
	summary := "Summary"
	f.NewSheet(summary)
	f.SetCellValue(summary, "A1", "Department")
	f.SetCellValue(summary, "B1", "Member Count")
	for i, dept := range departments {
		f.SetCellValue(summary, cell("A", 2+i), dept.Name)
		f.SetCellValue(summary, cell("B", 2+i), deptCounts[dept.ID])
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("members-report-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// Export — by department
// ═══════════════════════════════════════════════════════════

func (s *exportService) exportByDepartment(ctx context.Context, approvedOnly bool) (*bytes.Buffer, string, error) {
	departments, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	idx, _ := f.NewSheet(summary)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(summary, "A1", "Department")
	f.SetCellValue(summary, "B1", "Category")
	f.SetCellValue(summary, "C1", "Member Count")

	for i := range departments {
		dept := &departments[i]

		selections, err := s.repo.Selection.ListByDepartment(ctx, dept.ID)
		if err != nil {
			s.logger.Error("list department selections failed", zap.Uint("department_id", dept.ID), zap.Error(err))
			return nil, "", err
		}
		var counted []*model.Selection
		for j := range selections {
			if exportCounts(&selections[j], approvedOnly) {
				counted = append(counted, &selections[j])
			}
		}

		categoryName := "Uncategorized"
		if dept.Category != nil {
			categoryName = dept.Category.Name
		}

		f.SetCellValue(summary, cell("A", 2+i), dept.Name)
		f.SetCellValue(summary, cell("B", 2+i), categoryName)
		f.SetCellValue(summary, cell("C", 2+i), len(counted))

		// One sheet per department: header block, blank row, member table.
		sheetName := sanitizeSheetName(dept.Name)
		f.NewSheet(sheetName)

		f.SetCellValue(sheetName, "A1", "Department:")
		f.SetCellValue(sheetName, "B1", dept.Name)
		f.SetCellValue(sheetName, "A2", "Category:")
		f.SetCellValue(sheetName, "B2", categoryName)
		f.SetCellValue(sheetName, "A3", "Total Members:")
		f.SetCellValue(sheetName, "B3", len(counted))

		f.SetCellValue(sheetName, "A5", "Full Name")
		f.SetCellValue(sheetName, "B5", "Phone")
		f.SetCellValue(sheetName, "C5", "Email")
		f.SetCellValue(sheetName, "D5", "Address")
		f.SetCellValue(sheetName, "E5", "Submitted On")

		row := 6
		for _, sel := range counted {
			if sel.Member == nil {
				continue
			}
			f.SetCellValue(sheetName, cell("A", row), sel.Member.FullName)
			f.SetCellValue(sheetName, cell("B", row), sel.Member.Phone)
			f.SetCellValue(sheetName, cell("C", row), sel.Member.Email)
			f.SetCellValue(sheetName, cell("D", row), sel.Member.Address)
			f.SetCellValue(sheetName, cell("E", row), sel.Member.CreatedAt.Format("2006-01-02 15:04"))
			row++
		}

		f.SetColWidth(sheetName, "A", "E", 20)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("departments-report-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ── helpers ──

// sanitizeSheetName strips characters Excel rejects in sheet names and
// truncates to the 31-character limit.
func sanitizeSheetName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return -1
		}
		return r
	}, name)
	if runes := []rune(sanitized); len(runes) > 31 {
		sanitized = string(runes[:31])
	}
	return sanitized
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
