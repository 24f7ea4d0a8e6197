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

// wttrResponse maps the subset of the wttr.in JSON payload we render.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		FeelsLikeC  string `json:"FeelsLikeC"`
		Humidity    string `json:"humidity"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
		WindspeedKmph string `json:"windspeedKmph"`
	} `json:"current_condition"`
}

func weatherTool(opts Options) registry.ToolDefinition {
	return registry.ToolDefinition{
		Name:        "get_weather",
		Description: "Get the current weather for a location",
		Parameters: []registry.ToolParameter{
			{Name: "location", Type: "string", Description: "The city and state, e.g. San Francisco, New York, London", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
			location := stringArg(args, "location")
			if location == "" {
				return "", fmt.Errorf("location is required")
			}

			endpoint := fmt.Sprintf("%s/%s?format=j1", opts.WeatherBaseURL, url.PathEscape(location))
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return "", fmt.Errorf("failed to get weather: %w", err)
			}

			resp, err := opts.HTTPClient.Do(req)
			if err != nil {
				return "", fmt.Errorf("failed to get weather: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return "", fmt.Errorf("failed to get weather: unexpected status %d", resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return "", fmt.Errorf("failed to get weather: %w", err)
			}

			var payload wttrResponse
			if err := json.Unmarshal(body, &payload); err != nil {
				return "", fmt.Errorf("failed to get weather: %w", err)
			}
			if len(payload.CurrentCondition) == 0 {
				return "", fmt.Errorf("failed to get weather: no current conditions for %s", location)
			}

			current := payload.CurrentCondition[0]
			description := ""
			if len(current.WeatherDesc) > 0 {
				description = current.WeatherDesc[0].Value
			}

			return fmt.Sprintf(`Weather for %s
- Temperature: %s°C
- Feels like: %s°C
- Humidity: %s%%
- Description: %s
- Wind Speed: %s km/h`,
				location, current.TempC, current.FeelsLikeC, current.Humidity, description, current.WindspeedKmph), nil
		},
	}
}
