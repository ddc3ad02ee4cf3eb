package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"worktimer/internal/core/inactivity"
	"worktimer/internal/core/model"
	"worktimer/internal/core/session"
	"worktimer/internal/core/timer"
	"worktimer/internal/logging"
	"worktimer/internal/platform"
	"worktimer/internal/storage"
	"worktimer/internal/ui/dashboard"
	"worktimer/internal/ui/notice"
	"worktimer/internal/ui/preferences"
	"worktimer/internal/ui/tray"
	"worktimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
)

const (
	appID = "com.worktimer.app"

	refreshInterval = time.Second
)

var (
	background bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "worktimer",
	Short:        "Tray work timer that pauses itself while you are away",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(logging.Init(logging.Options{Verbose: verbose}))
	},
}

func init() {
	rootCmd.Flags().BoolVar(&background, "background", false, "start in the tray without opening the dashboard")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	guard, err := platform.AcquireSingleInstance(platform.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is running", "error", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()
	logger.Debug("instance lock held", "address", guard.Address())

	service := platform.NewService()
	dataDir, err := platform.DataDir(service)
	if err != nil {
		return err
	}

	settings, err := storage.LoadSettings(dataDir)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "error", err)
	}

	journal, err := storage.OpenJournal(storage.JournalPath(dataDir))
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer journal.Close()

	workSession, err := session.New(settings.MonitorConfig(), session.Options{
		Idle:   platform.NewIdleSource(),
		Logger: logger,
		OnSegment: func(segment timer.Segment) {
			if err := journal.RecordSegment(segment.Start, segment.End); err != nil {
				logger.Warn("record segment", "error", err)
			}
		},
	})
	if err != nil {
		logger.Error("inactivity monitor setup failed", "error", err)
		return err
	}

	registered, err := service.AutostartEnabled(platform.AppName)
	if err != nil {
		logger.Warn("autostart status", "error", err)
	}
	if registered || settings.Autostart {
		if err := platform.SyncAutostart(service, platform.AppName, settings.Autostart); err != nil {
			logger.Warn("sync autostart entry", "error", err)
		}
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.IconActive))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	dashboardWindow := dashboard.New(fyneApp, workSession, journal, logger)
	desktopApp.SetSystemTrayWindow(dashboardWindow.Window())

	noticeWindow := notice.New(fyneApp, resources.MustLogo(resources.IconIdle))

	var trayManager *tray.Manager
	refresh := func() {
		snapshot := workSession.Snapshot()
		away := snapshot.State == inactivity.StateAutoPaused
		dashboardWindow.Refresh()
		trayManager.SetStatus(dashboard.FormatElapsed(snapshot.Elapsed))
		trayManager.SetState(snapshot.Running, away)
		noticeWindow.Update(away && settings.ShowIdleNotice, snapshot.Diagnostics.EffectiveIdle)
	}

	noticeWindow.SetOnResume(func() {
		workSession.Activity()
		refresh()
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated model.Settings) {
		autostartChanged := updated.Autostart != settings.Autostart
		settings = updated
		if err := storage.SaveSettings(dataDir, settings); err != nil {
			logger.Warn("save settings", "error", err)
		}
		workSession.Apply(settings.MonitorConfig())
		if autostartChanged {
			if err := platform.SyncAutostart(service, platform.AppName, settings.Autostart); err != nil {
				logger.Warn("update autostart", "error", err)
			}
		}
		refresh()
	})

	trayManager = tray.New(desktopApp, tray.Icons{
		Running: resources.MustLogo(resources.IconActive),
		Paused:  resources.MustLogo(resources.IconPaused),
		Away:    resources.MustLogo(resources.IconIdle),
	}, tray.Callbacks{
		OnShow: dashboardWindow.Show,
		OnToggle: func() {
			workSession.Toggle()
			refresh()
		},
		OnReset: func() {
			workSession.Reset()
			refresh()
		},
		OnPreferences: prefsWindow.Show,
		OnQuit:        fyneApp.Quit,
	})
	desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.IconPaused))

	events := workSession.Subscribe(16)
	go func() {
		for event := range events {
			if event.Type == session.EventStateChange {
				logger.Debug("session state changed", "state", event.State, "elapsed", event.Elapsed)
			}
			segment := event.Type == session.EventSegment
			fyne.Do(func() {
				if segment {
					dashboardWindow.RefreshStats()
				}
				refresh()
			})
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(refresh)
			}
		}
	}()

	workSession.Run()
	if !background {
		dashboardWindow.Show()
	}
	fyneApp.Run()

	cancel()
	workSession.Stop()
	logger.Info("stopped", "worked", dashboard.FormatElapsed(workSession.Snapshot().Elapsed))
	return nil
}
