package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"docsum/internal/config"
	"docsum/internal/domain"
	"docsum/internal/embedding/tfidf"
	"docsum/internal/export"
	"docsum/internal/extract"
	"docsum/internal/extract/tesseract"
	"docsum/internal/history"
	historymem "docsum/internal/history/memory"
	historysqlite "docsum/internal/history/sqlite"
	"docsum/internal/logging"
	"docsum/internal/service"
	"docsum/internal/summarizer"
	"docsum/internal/tui"
	"docsum/internal/vectorstore/memory"
)

func main() {
	var (
		cfgPath   string
		policyArg string
		plain     bool
		outPath   string
		copyOut   bool
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/docsum/config.yaml if not provided)")
	flag.StringVar(&policyArg, "policy", "", "Summary length: short, medium or long (overrides config)")
	flag.BoolVar(&plain, "plain", false, "Print summaries to stdout instead of opening the UI")
	flag.StringVar(&outPath, "out", "", "Also write the summaries to this file")
	flag.BoolVar(&copyOut, "copy", false, "Also copy the summaries to the clipboard")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: docsum [--config=config.yaml] [--policy=medium] [--plain] [--out=file] [--copy] file1.pdf [file2.png ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("log config rejected, fallback to zap production logger", zap.Error(err))
	}
	if !plain {
		logger = logging.ForTerminalUI(cfg.Log, logger)
	}
	defer func() { _ = logger.Sync() }()

	policy := cfg.Policy()
	if policyArg != "" {
		if policy, err = domain.ParsePolicy(policyArg); err != nil {
			logger.Fatal("invalid --policy", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, closeStore, err := openHistory(ctx, cfg.History)
	if err != nil {
		logger.Fatal("failed to open history", zap.Error(err))
	}
	defer closeStore()

	sum := summarizer.NewExtractiveSummarizer(summarizer.Options{
		MinWords: cfg.Summarizer.MinWords,
		Weights:  cfg.Summarizer.Weights,
	})
	ext := extract.New(tesseract.New(cfg.Extract.OCRLanguages), extract.Options{PageMarker: cfg.Extract.PageMarker})
	index := history.NewIndex(tfidf.NewEmbedder(), memory.NewStorage())
	svc := service.NewDocService(extract.NewLoader(), ext, sum, store, index, history.NewEntry, logger)

	if err := svc.WarmHistory(ctx, cfg.History.Limit); err != nil {
		logger.Warn("history search unavailable", zap.Error(err))
	}

	results, err := svc.Process(ctx, inputs, policy)
	if err != nil {
		logger.Fatal("processing interrupted", zap.Error(err))
	}

	var items []tui.Item
	for _, r := range results {
		if r.Err == nil {
			items = append(items, tui.Item{Document: r.Document, Summary: r.Summary})
		}
	}

	if text := combined(items); text != "" {
		if outPath != "" {
			if err := export.NewFileSink(outPath).Write(ctx, text); err != nil {
				logger.Error("write summary file", zap.String("path", outPath), zap.Error(err))
			}
		}
		if copyOut {
			if err := export.NewClipboardSink().Write(ctx, text); err != nil {
				logger.Error("copy summary", zap.Error(err))
			}
		}
	}

	if plain {
		printPlain(results)
		if len(items) == 0 {
			os.Exit(1)
		}
		return
	}
	if len(items) == 0 {
		printPlain(results)
		os.Exit(1)
	}

	var clip domain.Sink
	if cs := export.NewClipboardSink(); cs.Available() {
		clip = cs
	}
	m := tui.New(svc, items, policy, clip)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("ui error", zap.Error(err))
	}
}

func openHistory(ctx context.Context, cfg config.HistoryConfig) (domain.HistoryStore, func(), error) {
	switch cfg.Type {
	case "memory", "":
		return historymem.NewStore(), func() {}, nil
	case "sqlite":
		s, err := historysqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown history type: %s", cfg.Type)
}

// combined joins the summaries of several documents under their sources.
func combined(items []tui.Item) string {
	if len(items) == 1 {
		return items[0].Summary.Text
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, "# "+it.Document.Source+"\n"+it.Summary.Text)
	}
	return strings.Join(parts, "\n\n")
}

func printPlain(results []service.Result) {
	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		if r.Err != nil {
			var insufficient *summarizer.InsufficientInputError
			switch {
			case errors.As(r.Err, &insufficient):
				fmt.Fprintf(os.Stderr, "%s: text too short to summarize (%d words)\n", r.Source, insufficient.Words)
			case errors.Is(r.Err, summarizer.ErrEmptyInput), errors.Is(r.Err, extract.ErrNoText):
				fmt.Fprintf(os.Stderr, "%s: no readable text\n", r.Source)
			default:
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Source, r.Err)
			}
			continue
		}
		st := r.Summary.Stats
		fmt.Printf("== %s (%s) ==\n%s\n", r.Source, r.Summary.Policy, r.Summary.Text)
		fmt.Printf("sentences %d  words %d -> %d  ratio %d%%\n",
			st.SourceSentenceCount, st.SourceWordCount, st.SummaryWordCount, st.CompressionRatioPercent)
	}
}
