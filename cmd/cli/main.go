package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/isekco/vestia/internal/ingest"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vestia-cli",
		Short: "Vestia CLI tool",
		Long:  `A command line interface for interacting with the Vestia position API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Vestia API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Position commands
	positionsCmd := &cobra.Command{
		Use:   "positions",
		Short: "Position operations",
	}

	var refresh bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List current positions",
		Run: func(cmd *cobra.Command, args []string) {
			listPositions(refresh)
		},
	}
	listCmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cached ledger")

	positionsCmd.AddCommand(listCmd)
	rootCmd.AddCommand(positionsCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the active ledger summary",
		Run: func(cmd *cobra.Command, args []string) {
			showSummary()
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a ledger document locally",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			validateDocument(args[0])
		},
	}

	pushCmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Store a ledger document as the new active revision",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			pushDocument(args[0])
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Invalidate the server's cached ledger",
		Run: func(cmd *cobra.Command, args []string) {
			refreshLedger()
		},
	}

	ledgerCmd.AddCommand(summaryCmd, validateCmd, pushCmd, refreshCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listPositions(refresh bool) {
	url := baseURL + "/api/v1/positions"
	if refresh {
		url += "?refresh=true"
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var positions []map[string]any
	if err := json.Unmarshal(body, &positions); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(positions) == 0 {
		fmt.Println("No open positions")
		return
	}

	for _, p := range positions {
		fmt.Printf("%s / %s  %s\n", p["ownerId"], p["accountId"], p["assetKey"])
		fmt.Printf("  quantity: %v  wac: %v  total cost: %v\n",
			p["quantity"], p["weightedAverageCost"], p["totalCost"])
	}
}

func showSummary() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var summary map[string]any
	if err := json.Unmarshal(body, &summary); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Schema version: %v\n", summary["schemaVersion"])
	fmt.Printf("Base currency:  %v\n", summary["baseCurrency"])
	fmt.Printf("Owners:         %v\n", summary["ownerCount"])
	fmt.Printf("Accounts:       %v\n", summary["accountCount"])
	fmt.Printf("Transactions:   %v\n", summary["transactionCount"])
}

func validateDocument(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	mapper := ingest.NewMapper(zerolog.Nop())
	ledger, err := mapper.Parse(data)
	if err != nil {
		fmt.Printf("Document is INVALID: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Document is valid\n")
	fmt.Printf("Owners: %d  Accounts: %d  Transactions: %d\n",
		len(ledger.Owners), len(ledger.Accounts), len(ledger.Transactions))
}

func pushDocument(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}

	req, err := http.NewRequest(http.MethodPut, baseURL+"/api/v1/ledger", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Push FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Pushed new revision: %v\n", result["revisionId"])
}

func refreshLedger() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/ledger/refresh", "application/json", nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Refresh FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println("Ledger cache invalidated")
}
