package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"github.com/tcriess/lightspeed-frontdesk/config"
	"github.com/tcriess/lightspeed-frontdesk/globals"
	"github.com/tcriess/lightspeed-frontdesk/language"
	"github.com/tcriess/lightspeed-frontdesk/lifecycle"
	"github.com/tcriess/lightspeed-frontdesk/pipeline"
	"github.com/tcriess/lightspeed-frontdesk/store"
	"github.com/tcriess/lightspeed-frontdesk/transcribe"
	"github.com/tcriess/lightspeed-frontdesk/translate"
	"github.com/tcriess/lightspeed-frontdesk/ws"
)

var (
	configPath = pflag.StringP("config", "c", "", "path to config file or directory")
	addr       = pflag.String("addr", "localhost:8000", "service address (including port)")
	sslCert    = pflag.String("ssl-cert", "", "SSL cert (optional)")
	sslKey     = pflag.String("ssl-key", "", "SSL key (optional)")
)

func main() {
	flagSet := config.GetFlagSet()
	pflag.CommandLine.AddFlagSet(flagSet)
	pflag.Parse()

	globalConfig, err := config.ReadConfiguration(*configPath, flagSet)
	if err != nil {
		panic(err)
	}
	if globalConfig.LogLevel != "" {
		globals.AppLogger.SetLevel(hclog.LevelFromString(globalConfig.LogLevel))
	}

	ctx := context.Background()

	st := store.New()
	resolver := language.Resolver{
		Staff:        globalConfig.StaffLanguage,
		DefaultGuest: globalConfig.DefaultGuestLanguage,
	}
	hub := ws.NewHub(st)

	translator := newTranslator(ctx, globalConfig)
	transcriber := newTranscriber(ctx, globalConfig)

	manager := lifecycle.NewManager(st, resolver, hub, globalConfig.RoomCleanupDelay)
	pipe := pipeline.New(st, resolver, transcriber, translator, hub)
	hub.Lifecycle = manager
	hub.Pipeline = pipe
	go hub.Run()

	// janitor sweep behind the per-room cleanup timers
	cronRunner := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := cronRunner.AddFunc("@every 1m", manager.Sweep); err != nil {
		panic(err)
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	router := mux.NewRouter()
	router.HandleFunc("/ws", websocketHandler(hub)).Methods(http.MethodGet)
	router.HandleFunc("/health", healthHandler(globalConfig, st, hub)).Methods(http.MethodGet)
	router.HandleFunc("/api/generate-room", generateRoomHandler(globalConfig, manager)).Methods(http.MethodPost)
	router.HandleFunc("/api/tts", ttsHandler).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:    *addr,
		Handler: router,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		globals.AppLogger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			globals.AppLogger.Error("forced shutdown", "error", err)
		}
	}()

	globals.AppLogger.Info("listening", "addr", *addr)
	if *sslCert != "" && *sslKey != "" {
		err = srv.ListenAndServeTLS(*sslCert, *sslKey)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		globals.AppLogger.Error("stopped listening", "error", err)
		os.Exit(1)
	}
}

func newTranslator(ctx context.Context, cfg *config.Config) translate.Translator {
	if cfg.TranslateConfig.ProjectId == "" {
		globals.AppLogger.Warn("no translate project configured, translation disabled")
		return translate.Unavailable{}
	}
	gt, err := translate.NewGoogleTranslator(ctx, cfg.TranslateConfig.ProjectId, cfg.GoogleConfig.CredentialsFile)
	if err != nil {
		globals.AppLogger.Error("could not create translation client, translation disabled", "error", err)
		return translate.Unavailable{}
	}
	cached, err := translate.NewCached(gt, cfg.TranslateConfig.CacheSize)
	if err != nil {
		globals.AppLogger.Error("could not create translation cache", "error", err)
		return gt
	}
	return cached
}

func newTranscriber(ctx context.Context, cfg *config.Config) transcribe.Transcriber {
	gt, err := transcribe.NewGoogleTranscriber(ctx, cfg.SpeechConfig.SampleRateHertz, cfg.GoogleConfig.CredentialsFile)
	if err != nil {
		globals.AppLogger.Error("could not create speech client, transcription disabled", "error", err)
		return transcribe.Unavailable{}
	}
	return gt
}
