// Package main provides the focusbox CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/focusbox/internal/infra/config"
	"github.com/osa030/focusbox/internal/infra/logger"
	"github.com/osa030/focusbox/internal/infra/store"
)

var (
	app        = kingpin.New("focusbox", "Terminal productivity toolbox: timers, todos, notes and focus mode")
	configPath = app.Flag("config", "Path to config file").Envar("FOCUSBOX_CONFIG").Default(defaultConfigPath()).String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr, discarded in live views)").String()

	// timer command
	timerCmd      = app.Command("timer", "Run the countdown timer")
	timerDuration = timerCmd.Arg("duration", "Initial duration, e.g. 90s or 5m").Duration()
	timerHeadless = timerCmd.Flag("headless", "Run without the live view").Bool()

	// pomodoro command
	pomodoroCmd      = app.Command("pomodoro", "Run the Pomodoro timer")
	pomodoroHeadless = pomodoroCmd.Flag("headless", "Run without the live view").Bool()
	pomodoroAuto     = pomodoroCmd.Flag("auto", "Headless: start the next phase after the cool-down").Bool()
	pomodoroSessions = pomodoroCmd.Flag("sessions", "Headless: stop after this many work sessions").Default("1").Int()

	// todo commands
	todoCmd     = app.Command("todo", "Manage todos")
	todoListCmd = todoCmd.Command("list", "List todos").Default()
	todoAddCmd  = todoCmd.Command("add", "Add a todo")
	todoAddText = todoAddCmd.Arg("text", "Todo text").Required().Strings()
	todoDoneCmd = todoCmd.Command("done", "Toggle a todo's completion")
	todoDoneRef = todoDoneCmd.Arg("todo", "Position, ID or ID prefix").Required().String()
	todoRmCmd   = todoCmd.Command("rm", "Delete a todo")
	todoRmRef   = todoRmCmd.Arg("todo", "Position, ID or ID prefix").Required().String()

	// note commands
	noteCmd        = app.Command("note", "Manage notes")
	noteListCmd    = noteCmd.Command("list", "List notes").Default()
	noteNewCmd     = noteCmd.Command("new", "Create a note")
	noteNewTitle   = noteNewCmd.Arg("title", "Note title").String()
	noteNewContent = noteNewCmd.Flag("content", "Note content").Short('c').String()
	noteEditCmd    = noteCmd.Command("edit", "Edit a note in the terminal editor")
	noteEditID     = noteEditCmd.Arg("note", "Note ID or ID prefix").Required().String()
	noteShowCmd    = noteCmd.Command("show", "Show a note")
	noteShowID     = noteShowCmd.Arg("note", "Note ID or ID prefix").Required().String()
	noteRmCmd      = noteCmd.Command("rm", "Delete a note")
	noteRmID       = noteRmCmd.Arg("note", "Note ID or ID prefix").Required().String()

	// theme commands
	themeCmd     = app.Command("theme", "Manage the color theme")
	themeListCmd = themeCmd.Command("list", "List themes").Default()
	themeSetCmd  = themeCmd.Command("set", "Select a theme")
	themeSetID   = themeSetCmd.Arg("theme", "Theme ID").Required().String()

	// settings commands
	settingsCmd     = app.Command("settings", "Show or change settings")
	settingsShowCmd = settingsCmd.Command("show", "Show settings").Default()
	settingsSetCmd  = settingsCmd.Command("set", "Change settings, e.g. sound_enabled=false")
	settingsValues  = settingsSetCmd.Arg("values", "key=value pairs").Required().StringMap()

	// focus commands
	focusCmd       = app.Command("focus", "Focus mode with ambient sound")
	focusStartCmd  = focusCmd.Command("start", "Enter focus mode in the live view")
	focusSound     = focusStartCmd.Flag("sound", "Ambient sound (none, rain, forest, ocean, piano)").String()
	focusVolume    = focusStartCmd.Flag("volume", "Volume 0-100").Default("-1").Int()
	focusStopCmd   = focusCmd.Command("stop", "Leave focus mode")
	focusStatusCmd = focusCmd.Command("status", "Show focus mode state").Default()

	// data commands
	dataCmd        = app.Command("data", "Backup and restore")
	dataExportCmd  = dataCmd.Command("export", "Export all data as JSON")
	dataExportPath = dataExportCmd.Flag("output", "Output file (default: dated file name, '-' for stdout)").Short('o').String()
	dataImportCmd  = dataCmd.Command("import", "Import a JSON backup")
	dataImportPath = dataImportCmd.Arg("file", "Backup file").Required().ExistingFile()
	dataClearCmd   = dataCmd.Command("clear", "Delete all stored data")
	dataClearYes   = dataClearCmd.Flag("yes", "Confirm deletion").Bool()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(command); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string) error {
	live := isLive(command)

	// Initialize logger
	loggerConfig := logger.Config{Output: "stderr", Level: "info"}
	if live {
		loggerConfig.Output = "discard"
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	closer, err := logger.Init(loggerConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer closer.Close()

	zlog.Debug().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	a := &application{cfg: cfg, repo: store.NewRepository(st)}

	// Execute command
	switch command {
	case timerCmd.FullCommand():
		return a.timer(ctx, *timerDuration, *timerHeadless)
	case pomodoroCmd.FullCommand():
		return a.pomodoro(ctx, *pomodoroHeadless, *pomodoroAuto, *pomodoroSessions)
	case todoListCmd.FullCommand():
		return a.todoList(ctx)
	case todoAddCmd.FullCommand():
		return a.todoAdd(ctx, *todoAddText)
	case todoDoneCmd.FullCommand():
		return a.todoDone(ctx, *todoDoneRef)
	case todoRmCmd.FullCommand():
		return a.todoRemove(ctx, *todoRmRef)
	case noteListCmd.FullCommand():
		return a.noteList(ctx)
	case noteNewCmd.FullCommand():
		return a.noteNew(ctx, *noteNewTitle, *noteNewContent)
	case noteEditCmd.FullCommand():
		return a.noteEdit(ctx, *noteEditID)
	case noteShowCmd.FullCommand():
		return a.noteShow(ctx, *noteShowID)
	case noteRmCmd.FullCommand():
		return a.noteRemove(ctx, *noteRmID)
	case themeListCmd.FullCommand():
		return a.themeList(ctx)
	case themeSetCmd.FullCommand():
		return a.themeSet(ctx, *themeSetID)
	case settingsShowCmd.FullCommand():
		return a.settingsShow(ctx)
	case settingsSetCmd.FullCommand():
		return a.settingsSet(ctx, *settingsValues)
	case focusStartCmd.FullCommand():
		return a.focusStart(ctx, *focusSound, *focusVolume)
	case focusStopCmd.FullCommand():
		return a.focusStop(ctx)
	case focusStatusCmd.FullCommand():
		return a.focusStatus(ctx)
	case dataExportCmd.FullCommand():
		return a.dataExport(ctx, *dataExportPath)
	case dataImportCmd.FullCommand():
		return a.dataImport(ctx, *dataImportPath)
	case dataClearCmd.FullCommand():
		return a.dataClear(ctx, *dataClearYes)
	}
	return nil
}

// isLive reports whether command takes over the terminal.
func isLive(command string) bool {
	switch command {
	case timerCmd.FullCommand():
		return !*timerHeadless
	case pomodoroCmd.FullCommand():
		return !*pomodoroHeadless
	case focusStartCmd.FullCommand(), noteEditCmd.FullCommand():
		return true
	default:
		return false
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "focusbox.yaml"
	}
	return filepath.Join(dir, "focusbox", "config.yaml")
}
