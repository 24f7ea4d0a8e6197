package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/harits/aksi/pkg/registry"
)

type duckDuckGoResponse struct {
	Abstract       string `json:"Abstract"`
	AbstractSource string `json:"AbstractSource"`
}

func searchTool(opts Options) registry.ToolDefinition {
	return registry.ToolDefinition{
		Name:        "search_internet",
		Description: "Search for information on the internet",
		Parameters: []registry.ToolParameter{
			{Name: "query", Type: "string", Description: "The search query, e.g. 'latest news on AI'", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			query := stringArg(args, "query")
			if query == "" {
				return "", fmt.Errorf("query is required")
			}

			endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
				opts.SearchBaseURL, url.QueryEscape(query))
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return "", fmt.Errorf("failed to search: %w", err)
			}

			resp, err := opts.HTTPClient.Do(req)
			if err != nil {
				return "", fmt.Errorf("failed to search: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return "", fmt.Errorf("failed to search: unexpected status %d", resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return "", fmt.Errorf("failed to search: %w", err)
			}

			var payload duckDuckGoResponse
			if err := json.Unmarshal(body, &payload); err != nil {
				return "", fmt.Errorf("failed to search: %w", err)
			}

			abstract := payload.Abstract
			if abstract == "" {
				abstract = "No information found"
			}
			source := payload.AbstractSource
			if source == "" {
				source = "DuckDuckGo"
			}

			return fmt.Sprintf("Search Results for: %s\n\n%s\n\nSource: %s", query, abstract, source), nil
		},
	}
}
