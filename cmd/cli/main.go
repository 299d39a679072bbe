// Package main provides an interactive console front end for the map bot.
// It runs the same resolution pipeline as the server against a single
// local session, which makes it handy for trying out catalog data and
// oracle prompts without HTTP in the way.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/campusnav/hku-mapbot-go/internal/catalog"
	"github.com/campusnav/hku-mapbot-go/internal/config"
	"github.com/campusnav/hku-mapbot-go/internal/dialog"
	"github.com/campusnav/hku-mapbot-go/internal/intent"
	"github.com/campusnav/hku-mapbot-go/internal/logger"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
	"github.com/campusnav/hku-mapbot-go/internal/oracle"
	"github.com/campusnav/hku-mapbot-go/internal/resolver"
	"github.com/campusnav/hku-mapbot-go/internal/session"
	"github.com/campusnav/hku-mapbot-go/internal/storage"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so the conversation stays readable on stdout.
	log := logger.NewWithWriter(cfg.LogLevel, os.Stderr)

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	cat, err := catalog.Load(cfg.EntitiesPath, cfg.FacilitiesPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load place catalog")
	}

	oracleClient := oracle.NewClient(oracle.Config{
		APIKey:  cfg.OracleAPIKey,
		BaseURL: cfg.OracleBaseURL,
		Model:   cfg.OracleModel,
		Timeout: cfg.OracleTimeout,
	}, log, m)

	intentCache := intent.NewCache()
	extractor := intent.New(oracleClient, intentCache, db, log, m)
	if err := extractor.LoadPersisted(context.Background()); err != nil {
		log.WithError(err).Warn("Failed to load persisted intents")
	}

	res := resolver.New(cat, extractor, log, m)

	sessions := session.NewStore(session.Config{
		TTL:     cfg.SessionTTL,
		Metrics: m,
	})
	defer sessions.Stop()

	engine := dialog.New(res, sessions, nil, log, m)

	sessionID := uuid.NewString()
	fmt.Printf("HKU MapBot (%d places loaded", cat.Len())
	if oracleClient.IsEnabled() {
		fmt.Print(", oracle enabled")
	}
	fmt.Println(")")
	fmt.Println("输入地点描述开始查询，输入 exit 退出。")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("你: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" || text == "退出" {
			break
		}

		reply := engine.HandleTurn(context.Background(), sessionID, text)
		fmt.Println(reply)
	}

	fmt.Println("再见！")
}
