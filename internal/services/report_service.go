package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/InternLink-2025/placement-service/internal/models"
)

type reportService struct {
	dashboard DashboardService
	logger    *slog.Logger
}

func NewReportService(dashboard DashboardService, logger *slog.Logger) ReportService {
	return &reportService{
		dashboard: dashboard,
		logger:    logger,
	}
}

// BuildPlatformReport renders the dashboard aggregates into an xlsx
// workbook: one sheet per aggregation map plus an overview sheet.
func (s *reportService) BuildPlatformReport(ctx context.Context) ([]byte, error) {
	s.logger.Info("Building platform report")

	overview, err := s.dashboard.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build overview: %w", err)
	}
	usersByRole, err := s.dashboard.UsersByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build users by role: %w", err)
	}
	projectsByStatus, err := s.dashboard.ProjectsByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build projects by status: %w", err)
	}
	applicationsByStatus, err := s.dashboard.ApplicationsByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build applications by status: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := s.writeOverviewSheet(f, overview); err != nil {
		return nil, err
	}

	// Rows follow the canonical enum order, not map iteration order
	userRows := make([][2]interface{}, 0, len(usersByRole))
	for _, role := range models.AllUserRoles {
		userRows = append(userRows, [2]interface{}{role, usersByRole[role]})
	}
	if err := writeCountSheet(f, "Users by Role", "Role", userRows); err != nil {
		return nil, err
	}

	projectRows := make([][2]interface{}, 0, len(projectsByStatus))
	for _, status := range models.AllProjectStatuses {
		projectRows = append(projectRows, [2]interface{}{status, projectsByStatus[status]})
	}
	if err := writeCountSheet(f, "Projects by Status", "Status", projectRows); err != nil {
		return nil, err
	}

	applicationRows := make([][2]interface{}, 0, len(applicationsByStatus))
	for _, status := range models.AllApplicationStatuses {
		applicationRows = append(applicationRows, [2]interface{}{status, applicationsByStatus[status]})
	}
	if err := writeCountSheet(f, "Applications by Status", "Status", applicationRows); err != nil {
		return nil, err
	}

	// Drop the default sheet created by excelize
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		f.DeleteSheet("Sheet1")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *reportService) writeOverviewSheet(f *excelize.File, overview *DashboardOverview) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][2]interface{}{
		{"Total Users", overview.TotalUsers},
		{"Total Projects", overview.TotalProjects},
		{"Total Applications", overview.TotalApplications},
		{"Registrations (7 days)", overview.RecentRegistrations},
	}

	f.SetCellValue(sheet, "A1", "Metric")
	f.SetCellValue(sheet, "B1", "Value")
	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row[1])
	}

	return nil
}

func writeCountSheet(f *excelize.File, sheet, keyHeader string, rows [][2]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	f.SetCellValue(sheet, "A1", keyHeader)
	f.SetCellValue(sheet, "B1", "Count")
	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), fmt.Sprintf("%v", row[0]))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row[1])
	}

	return nil
}
