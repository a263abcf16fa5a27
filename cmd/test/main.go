package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BerylCAtieno/business-dashboard/internal/models"
	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.FgBlue, color.Bold)
	testColor   = color.New(color.FgCyan)
	okColor     = color.New(color.FgGreen)
	failColor   = color.New(color.FgRed)
	noteColor   = color.New(color.FgYellow)
)

type TestClient struct {
	backendURL   string
	dashboardURL string
	client       *http.Client
}

func NewTestClient(backendURL, dashboardURL string) *TestClient {
	return &TestClient{
		backendURL:   strings.TrimRight(backendURL, "/"),
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
			// Submit answers with a redirect; the smoke test inspects it directly.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func main() {
	backendURL := flag.String("backend", "http://localhost:8081", "Base URL of the business data backend")
	dashboardURL := flag.String("dashboard", "http://localhost:8080", "Base URL of the dashboard web UI")
	testType := flag.String("test", "all", "Test type: all, health, business-data, headline, dashboard")
	name := flag.String("name", "Cake & Co", "Business name to look up")
	location := flag.String("location", "Mumbai", "Business location to look up")
	flag.Parse()

	client := NewTestClient(*backendURL, *dashboardURL)

	printHeader("Business Dashboard - Smoke Tests")
	noteColor.Printf("Backend:   %s\nDashboard: %s\n\n", *backendURL, *dashboardURL)

	tests := map[string]func() bool{
		"health":        client.testHealthCheck,
		"business-data": func() bool { return client.testBusinessData(*name, *location) },
		"headline":      func() bool { return client.testRegenerateHeadline(*name, *location) },
		"dashboard":     func() bool { return client.testDashboardFlow(*name, *location) },
	}

	if *testType == "all" {
		client.runAll(tests, []string{"health", "business-data", "headline", "dashboard"})
		return
	}

	fn, ok := tests[*testType]
	if !ok {
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, business-data, headline, dashboard")
		os.Exit(1)
	}
	if !fn() {
		os.Exit(1)
	}
}

func (tc *TestClient) runAll(tests map[string]func() bool, order []string) {
	passed, failed := 0, 0
	for _, name := range order {
		if tests[name]() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	okColor.Printf("Passed: %d\n", passed)
	failColor.Printf("Failed: %d\n", failed)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Endpoints")

	for _, base := range []string{tc.backendURL, tc.dashboardURL} {
		endpoint := base + "/health"
		fmt.Printf("GET %s\n", endpoint)

		resp, err := tc.client.Get(endpoint)
		if err != nil {
			printError(fmt.Sprintf("Request failed: %v", err))
			return false
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK || string(body) != "OK" {
			printError(fmt.Sprintf("Expected 200 OK, got %d %q", resp.StatusCode, string(body)))
			return false
		}
	}

	printSuccess("Health checks passed")
	return true
}

func (tc *TestClient) testBusinessData(name, location string) bool {
	printTestHeader("Testing POST /business-data")

	payload, _ := json.Marshal(models.BusinessDataRequest{Name: name, Location: location})
	endpoint := tc.backendURL + "/business-data"
	fmt.Printf("POST %s\n%s\n", endpoint, string(payload))

	resp, err := tc.client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var data models.BusinessDataResponse
	if err := json.Unmarshal(body, &data); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if data.Headline == "" {
		printError("Response has an empty headline")
		return false
	}

	printSuccess(fmt.Sprintf("Rating %.1f from %d reviews", data.Rating, data.Reviews))
	printJSON(body)
	return true
}

func (tc *TestClient) testRegenerateHeadline(name, location string) bool {
	printTestHeader("Testing GET /regenerate-headline")

	query := url.Values{"name": {name}, "location": {location}}
	endpoint := tc.backendURL + "/regenerate-headline?" + query.Encode()
	fmt.Printf("GET %s\n", endpoint)

	resp, err := tc.client.Get(endpoint)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	var data models.HeadlineResponse
	if err := json.Unmarshal(body, &data); err != nil || data.Headline == "" {
		printError(fmt.Sprintf("Expected a headline, got %s", string(body)))
		return false
	}

	printSuccess(data.Headline)
	return true
}

// testDashboardFlow submits the form through the web UI and checks the
// dashboard switched to the card.
func (tc *TestClient) testDashboardFlow(name, location string) bool {
	printTestHeader("Testing dashboard submit flow")

	form := url.Values{"businessName": {name}, "location": {location}}
	resp, err := tc.client.PostForm(tc.dashboardURL+"/submit", form)
	if err != nil {
		printError(fmt.Sprintf("Submit failed: %v", err))
		return false
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		printError(fmt.Sprintf("Expected status 303, got %d", resp.StatusCode))
		return false
	}

	resp, err = tc.client.Get(tc.dashboardURL + "/state")
	if err != nil {
		printError(fmt.Sprintf("State request failed: %v", err))
		return false
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var state struct {
		Store struct {
			ViewMode  string                 `json:"viewMode"`
			Record    models.BusinessRecord  `json:"record"`
			LastError map[string]interface{} `json:"lastError"`
		} `json:"store"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if state.Store.ViewMode != "card" {
		printError(fmt.Sprintf("Expected card view, got %q (errors: %v)", state.Store.ViewMode, state.Store.LastError))
		return false
	}

	printSuccess(fmt.Sprintf("Card shows %q", state.Store.Record.Headline))
	printJSON(body)
	return true
}

func printHeader(text string) {
	headerColor.Println(strings.Repeat("=", len(text)+4))
	headerColor.Printf("= %s =\n", text)
	headerColor.Println(strings.Repeat("=", len(text)+4))
	fmt.Println()
}

func printTestHeader(text string) {
	testColor.Printf("[TEST] %s\n", text)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	okColor.Printf("✓ %s\n", text)
}

func printError(text string) {
	failColor.Printf("✗ %s\n", text)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		noteColor.Println("\nResponse:")
		fmt.Println(prettyJSON.String())
	}
}
