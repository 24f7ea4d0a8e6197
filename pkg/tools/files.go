package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/harits/aksi/pkg/registry"
)

func writeFileTool(opts Options) registry.ToolDefinition {
	return registry.ToolDefinition{
		Name:        "write_file",
		Description: "Write content to a file",
		Parameters: []registry.ToolParameter{
			{Name: "filename", Type: "string", Description: "The name of the file to write, e.g. sales.txt, report.txt", Required: true},
			{Name: "content", Type: "string", Description: "The content to write to the file", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			filename := stringArg(args, "filename")
			content, _ := args["content"].(string)

			path, err := resolveWorkspacePath(opts.WorkspaceRoot, filename)
			if err != nil {
				return "", fmt.Errorf("failed to write file: %w", err)
			}

			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return "", fmt.Errorf("failed to write file: %w", err)
			}

			return fmt.Sprintf("Successfully wrote to file: %s\n\nContent:\n%s", filename, content), nil
		},
	}
}

func readFileTool(opts Options) registry.ToolDefinition {
	return registry.ToolDefinition{
		Name:        "read_file",
		Description: "Read content from a file",
		Parameters: []registry.ToolParameter{
			{Name: "filename", Type: "string", Description: "The name of the file to read, e.g. sales.txt, report.txt", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			filename := stringArg(args, "filename")

			path, err := resolveWorkspacePath(opts.WorkspaceRoot, filename)
			if err != nil {
				return "", fmt.Errorf("failed to read file: %w", err)
			}

			content, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return "", fmt.Errorf("file %s does not exist", filename)
				}
				return "", fmt.Errorf("failed to read file: %w", err)
			}

			return fmt.Sprintf("File: %s\n\n%s", filename, content), nil
		},
	}
}
