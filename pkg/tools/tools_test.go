package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harits/aksi/pkg/registry"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		WorkspaceRoot: t.TempDir(),
		Now:           fixedNow,
	}
}

func register(t *testing.T, opts Options) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, RegisterBuiltins(reg, opts))
	return reg
}

func TestRegisterBuiltins_Catalog(t *testing.T) {
	reg := register(t, testOptions(t))

	expected := []string{
		"get_weather", "write_file", "read_file", "search_internet",
		"generate_sales_report", "generate_employee_report", "send_email_report",
	}
	for _, name := range expected {
		assert.NotNil(t, reg.Get(name), name)
	}
	assert.Equal(t, len(expected), reg.Count())
}

func TestRegisterBuiltins_RequiresWorkspace(t *testing.T) {
	err := RegisterBuiltins(registry.New(), Options{})
	assert.Error(t, err)
}

func TestWriteAndReadFile(t *testing.T) {
	opts := testOptions(t)
	reg := register(t, opts)

	writeOut, err := reg.Get("write_file").Handler(context.Background(), map[string]interface{}{
		"filename": "notes.txt",
		"content":  "hello world",
	})
	require.NoError(t, err)
	assert.Contains(t, writeOut, "Successfully wrote to file: notes.txt")

	data, err := os.ReadFile(filepath.Join(opts.WorkspaceRoot, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	readOut, err := reg.Get("read_file").Handler(context.Background(), map[string]interface{}{
		"filename": "notes.txt",
	})
	require.NoError(t, err)
	assert.Contains(t, readOut, "hello world")
}

func TestReadFile_Missing(t *testing.T) {
	reg := register(t, testOptions(t))

	_, err := reg.Get("read_file").Handler(context.Background(), map[string]interface{}{
		"filename": "ghost.txt",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestFileTools_RejectWorkspaceEscape(t *testing.T) {
	reg := register(t, testOptions(t))

	_, err := reg.Get("write_file").Handler(context.Background(), map[string]interface{}{
		"filename": "../outside.txt",
		"content":  "nope",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes workspace")

	_, err = reg.Get("read_file").Handler(context.Background(), map[string]interface{}{
		"filename": "../../etc/passwd",
	})
	require.Error(t, err)
}

func TestWeatherTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Paris", r.URL.Path)
		assert.Equal(t, "j1", r.URL.Query().Get("format"))
		w.Write([]byte(`{"current_condition":[{"temp_C":"18","FeelsLikeC":"17","humidity":"60",
			"weatherDesc":[{"value":"Partly cloudy"}],"windspeedKmph":"12"}]}`))
	}))
	defer server.Close()

	opts := testOptions(t)
	opts.WeatherBaseURL = server.URL
	reg := register(t, opts)

	out, err := reg.Get("get_weather").Handler(context.Background(), map[string]interface{}{
		"location": "Paris",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Weather for Paris")
	assert.Contains(t, out, "18°C")
	assert.Contains(t, out, "Partly cloudy")
	assert.Contains(t, out, "12 km/h")
}

func TestWeatherTool_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	opts := testOptions(t)
	opts.WeatherBaseURL = server.URL
	reg := register(t, opts)

	_, err := reg.Get("get_weather").Handler(context.Background(), map[string]interface{}{
		"location": "Paris",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get weather")
}

func TestSearchTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "latest AI news", r.URL.Query().Get("q"))
		w.Write([]byte(`{"Abstract":"AI is everywhere.","AbstractSource":"Wikipedia"}`))
	}))
	defer server.Close()

	opts := testOptions(t)
	opts.SearchBaseURL = server.URL
	reg := register(t, opts)

	out, err := reg.Get("search_internet").Handler(context.Background(), map[string]interface{}{
		"query": "latest AI news",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Search Results for: latest AI news")
	assert.Contains(t, out, "AI is everywhere.")
	assert.Contains(t, out, "Source: Wikipedia")
}

func TestSearchTool_EmptyAbstract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Abstract":"","AbstractSource":""}`))
	}))
	defer server.Close()

	opts := testOptions(t)
	opts.SearchBaseURL = server.URL
	reg := register(t, opts)

	out, err := reg.Get("search_internet").Handler(context.Background(), map[string]interface{}{
		"query": "obscure thing",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "No information found")
	assert.Contains(t, out, "Source: DuckDuckGo")
}

func TestSalesReport(t *testing.T) {
	reg := register(t, testOptions(t))

	out, err := reg.Get("generate_sales_report").Handler(context.Background(), map[string]interface{}{
		"quarter": "Q2",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "SALES REPORT - Q2")
	assert.Contains(t, out, "Generated on: 2025-03-14 10:30:00")
	assert.Contains(t, out, "Total Sales: $150,000")
}

func TestSalesReport_SavesToFile(t *testing.T) {
	opts := testOptions(t)
	reg := register(t, opts)

	out, err := reg.Get("generate_sales_report").Handler(context.Background(), map[string]interface{}{
		"quarter":  "Q4",
		"filename": "sales.txt",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Report saved to: sales.txt")

	data, err := os.ReadFile(filepath.Join(opts.WorkspaceRoot, "sales.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "SALES REPORT - Q4")
}

func TestSalesReport_SaveFailureDegrades(t *testing.T) {
	reg := register(t, testOptions(t))

	// An escaping filename cannot be saved, but the report is still
	// generated.
	out, err := reg.Get("generate_sales_report").Handler(context.Background(), map[string]interface{}{
		"quarter":  "Q4",
		"filename": "../escape.txt",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "SALES REPORT - Q4")
	assert.NotContains(t, out, "Report saved to")
}

func TestEmployeeReport(t *testing.T) {
	reg := register(t, testOptions(t))

	out, err := reg.Get("generate_employee_report").Handler(context.Background(), map[string]interface{}{
		"employee_id": "EMP001",
		"quarter":     "Q3",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Employee ID: EMP001")
	assert.Contains(t, out, "Quarter: Q3")
}

func TestEmailReport(t *testing.T) {
	reg := register(t, testOptions(t))

	out, err := reg.Get("send_email_report").Handler(context.Background(), map[string]interface{}{
		"to_email": "manager@company.com",
		"subject":  "Q4 numbers",
		"content":  "see attached",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "To: manager@company.com")
	assert.Contains(t, out, "Subject: Q4 numbers")
}

func TestEmailReport_InvalidAddress(t *testing.T) {
	reg := register(t, testOptions(t))

	_, err := reg.Get("send_email_report").Handler(context.Background(), map[string]interface{}{
		"to_email": "not-an-address",
		"subject":  "s",
		"content":  "c",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email address")
}
