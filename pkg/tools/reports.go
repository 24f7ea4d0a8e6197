package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/harits/aksi/pkg/registry"
)

func salesReportTool(opts Options) registry.ToolDefinition {
	return registry.ToolDefinition{
		Name:        "generate_sales_report",
		Description: "Generate a sales report for a specific quarter or time period. Use this when user asks for sales reports, quarterly reports, or sales data.",
		Parameters: []registry.ToolParameter{
			{Name: "quarter", Type: "string", Description: "The quarter for the report, e.g. Q1, Q2, Q3, Q4, or 'this year'. Default to Q4 if not specified.", Required: true},
			{Name: "filename", Type: "string", Description: "Optional: filename to save the report, e.g. sales.txt", Required: false},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			quarter := stringArg(args, "quarter")
			if quarter == "" {
				quarter = "Q4"
			}

			report := fmt.Sprintf(`SALES REPORT - %s
Generated on: %s

SUMMARY:
- Total Sales: $150,000
- Total Units: 500
- Average Sale: $300
- Top Product: Smartphone
- Top Region: North

This is a sample sales report for %s.`,
				quarter, opts.Now().Format("2006-01-02 15:04:05"), quarter)

			filename := stringArg(args, "filename")
			if filename == "" {
				return fmt.Sprintf("Sales Report Generated for %s\n\n%s", quarter, report), nil
			}

			// Save failure degrades to an unsaved report, it does not fail
			// the call.
			path, err := resolveWorkspacePath(opts.WorkspaceRoot, filename)
			if err == nil {
				err = os.WriteFile(path, []byte(report), 0644)
			}
			if err != nil {
				log.Warn().Str("filename", filename).Err(err).Msg("Failed to save sales report")
				return fmt.Sprintf("Sales Report Generated for %s\n\n%s", quarter, report), nil
			}

			return fmt.Sprintf("Sales Report Generated for %s\n\nReport saved to: %s\n\n%s", quarter, filename, report), nil
		},
	}
}

func employeeReportTool(opts Options) registry.ToolDefinition {
	return registry.ToolDefinition{
		Name:        "generate_employee_report",
		Description: "Generate an employee performance report",
		Parameters: []registry.ToolParameter{
			{Name: "employee_id", Type: "string", Description: "The employee ID, e.g. EMP001, EMP002", Required: true},
			{Name: "quarter", Type: "string", Description: "The quarter for the report, e.g. Q1, Q2, Q3, Q4", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			employeeID := stringArg(args, "employee_id")
			quarter := stringArg(args, "quarter")

			report := fmt.Sprintf(`EMPLOYEE PERFORMANCE REPORT
Employee ID: %s
Quarter: %s
Generated on: %s

PERFORMANCE METRICS:
- Hours Worked: 160
- Tasks Completed: 25
- Quality Score: 8.5/10
- Performance Level: Good

RECOMMENDATIONS:
- Continue current performance
- Focus on skill development
- Set specific goals for next quarter`,
				employeeID, quarter, opts.Now().Format("2006-01-02 15:04:05"))

			return fmt.Sprintf("Employee Report Generated\n\n%s", report), nil
		},
	}
}
