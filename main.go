package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/Leeevai/AHxAI/assistant"
	"github.com/Leeevai/AHxAI/internal/mock"
	"github.com/Leeevai/AHxAI/sdk/gateway"
	"github.com/Leeevai/AHxAI/tui"
)

var (
	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func main() {
	app := &cli.App{
		Name:  "ahxai",
		Usage: "A coding assistant with interactive TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Aliases: []string{"b"},
				Value:   "http://localhost:8000",
				Usage:   "Backend base URL",
				EnvVars: []string{"AHXAI_BACKEND"},
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Bearer token for the backend",
				EnvVars: []string{"AHXAI_TOKEN"},
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "Run against an in-process mock backend",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:   "health",
				Usage:  "Check backend connectivity",
				Action: runHealth,
			},
			{
				Name:      "analyze",
				Usage:     "Analyze a source file and print the result",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "language",
						Aliases: []string{"l"},
						Usage:   "Override language detection",
					},
				},
				Action: runAnalyze,
			},
			{
				Name:  "sessions",
				Usage: "Manage chat sessions",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List sessions",
						Action: runSessionsList,
					},
					{
						Name:      "delete",
						Usage:     "Delete a session",
						ArgsUsage: "<id>",
						Action:    runSessionsDelete,
					},
				},
			},
			{
				Name:  "mock",
				Usage: "Serve the mock backend",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   8000,
						Usage:   "Port to listen on",
					},
				},
				Action: func(c *cli.Context) error {
					return mock.NewServer().ListenAndServe(c.Int("port"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newClient builds the gateway client from global flags, spinning up an
// in-process mock backend when --mock is set.
func newClient(c *cli.Context) (*gateway.Client, error) {
	baseURL := c.String("backend")
	if c.Bool("mock") {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return nil, fmt.Errorf("start mock backend: %w", err)
		}
		go http.Serve(ln, mock.NewServer().Handler())
		baseURL = "http://" + ln.Addr().String()
	}

	opts := []gateway.ClientOption{
		gateway.WithLogger(gateway.NewLoggerFromEnv()),
	}
	if token := c.String("token"); token != "" {
		opts = append(opts, gateway.WithToken(token))
	}
	return gateway.NewClient(baseURL, opts...), nil
}

func runTUI(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}
	controller := assistant.NewController(client)

	p := tea.NewProgram(tui.New(controller, client), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runHealth(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		fmt.Println(errStyle.Render("✗ backend unreachable: " + err.Error()))
		return cli.Exit("", 1)
	}
	fmt.Println(okStyle.Render("✓ " + health.Status))

	stats, err := client.Stats(ctx)
	if err == nil {
		fmt.Println(dimStyle.Render(fmt.Sprintf("  %d chats, %d messages, api v%s",
			stats.TotalChats, stats.TotalMessages, stats.APIVersion)))
	}
	return nil
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: ahxai analyze <file>")
	}
	path := c.Args().First()

	code, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	language := c.String("language")
	if language == "" {
		language = assistant.DetectLanguage(string(code))
	}

	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := client.AnalyzeCode(ctx, &gateway.AnalyzeRequest{
		Code:     string(code),
		Language: language,
		Context:  fmt.Sprintf("Analyze %s", filepath.Base(path)),
	})
	if err != nil {
		return err
	}

	analysis := resp.AIResponse
	fmt.Println(labelStyle.Render("Corrected code"))
	fmt.Println(analysis.CorrectedCode)
	fmt.Println()
	fmt.Println(labelStyle.Render("Explanation"))
	fmt.Println(analysis.Explanation)
	for _, s := range analysis.Suggestions {
		fmt.Println(okStyle.Render("• " + s))
	}
	for _, w := range analysis.Warnings {
		fmt.Println(errStyle.Render("! " + w))
	}
	return nil
}

func runSessionsList(c *cli.Context) error {
	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	chats, err := client.ListChats(ctx)
	if err != nil {
		return err
	}
	if len(chats) == 0 {
		fmt.Println(dimStyle.Render("no sessions"))
		return nil
	}
	for _, chat := range chats {
		title := chat.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s  %s\n",
			labelStyle.Render(chat.ID),
			title,
			dimStyle.Render(chat.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

func runSessionsDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: ahxai sessions delete <id>")
	}
	id := strings.TrimSpace(c.Args().First())

	client, err := newClient(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.DeleteChat(ctx, id); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("deleted " + id))
	return nil
}
