package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	provider := flag.String("provider", "Foras.ps", "provider used by the per-provider calls")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobhub-test-client",
		Version: "0.2.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	call(ctx, session, "list_providers", map[string]any{})
	call(ctx, session, "list_jobs", map[string]any{
		"query":       "developer",
		"active_only": true,
		"limit":       5,
	})
	call(ctx, session, "list_jobs", map[string]any{
		"provider": *provider,
		"limit":    3,
	})
	call(ctx, session, "refresh_provider", map[string]any{"provider": *provider})
	call(ctx, session, "job_stats", map[string]any{"horizon_days": 14})

	fmt.Println("\nAll calls completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: tools/list")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("tools/list failed: %v", err)
		return
	}
	for _, t := range res.Tools {
		fmt.Printf("  %s: %s\n", t.Name, t.Description)
	}
}

func call(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	fmt.Printf("\nTEST: %s %v\n", name, args)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		log.Printf("%s failed: %v", name, err)
		return
	}
	if result.IsError {
		log.Printf("%s returned a tool error", name)
	}

	printResult(result)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
