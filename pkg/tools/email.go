package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/harits/aksi/pkg/registry"
)

func emailReportTool(opts Options) registry.ToolDefinition {
	return registry.ToolDefinition{
		Name:        "send_email_report",
		Description: "Send an email report to a specific address",
		Parameters: []registry.ToolParameter{
			{Name: "to_email", Type: "string", Description: "The email address to send to, e.g. manager@company.com", Required: true},
			{Name: "subject", Type: "string", Description: "The subject of the email", Required: true},
			{Name: "content", Type: "string", Description: "The content of the email", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			toEmail := stringArg(args, "to_email")
			subject := stringArg(args, "subject")
			content, _ := args["content"].(string)

			if !strings.Contains(toEmail, "@") {
				return "", fmt.Errorf("invalid email address: %s", toEmail)
			}

			// Delivery is simulated; a real SMTP collaborator would slot in
			// behind this handler without touching the dispatcher.
			return fmt.Sprintf("Email Sent Successfully\nTo: %s\nSubject: %s\nContent: %s", toEmail, subject, content), nil
		},
	}
}
