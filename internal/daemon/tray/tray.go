package tray

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/charmbracelet/x/ansi"
	"github.com/getlantern/systray"

	"github.com/yettinmoor/bard/internal/daemon/publish"
)

// maxTitleWidth bounds the bar text shown next to the icon.
const maxTitleWidth = 48

var (
	state   DaemonState
	onStart func()
	onExit  func()
	ready   atomic.Bool

	barItem     *systray.MenuItem
	problemItem *systray.MenuItem
	updateItem  *systray.MenuItem
	restartItem *systray.MenuItem
	quitItem    *systray.MenuItem

	// bars holds the latest published bar until the render loop shows it.
	bars = make(chan string, 1)
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the bus server here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s DaemonState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

// Publisher mirrors every drawn bar into the tray title and tooltip.
// It runs under the server lock, so it only queues the bar and never reads
// DaemonState.
func Publisher() publish.Publisher {
	return publish.Func(func(_ context.Context, bar string) error {
		SetBar(bar)
		return nil
	})
}

// SetBar queues bar for display, replacing any bar not yet shown. It never
// blocks.
func SetBar(bar string) {
	select {
	case <-bars:
	default:
	}
	select {
	case bars <- bar:
	default:
	}
}

// Refresh re-reads the bar and config problem from the daemon state. It
// must not be called while the server lock is held.
func Refresh() {
	if state == nil || !ready.Load() {
		return
	}
	showProblem(state.Bar(), state.Problem())
}

func onReady() {
	systray.SetTemplateIcon(iconData, iconData)
	systray.SetTooltip(formatTooltip("", ""))

	header := systray.AddMenuItem("bard", "")
	header.Disable()

	barItem = systray.AddMenuItem("Starting...", "")
	barItem.Disable()

	problemItem = systray.AddMenuItem("", "")
	problemItem.Disable()
	problemItem.Hide()

	systray.AddSeparator()

	updateItem = systray.AddMenuItem("Update all", "Run every block and redraw")
	restartItem = systray.AddMenuItem("Restart", "Reload the config file")
	quitItem = systray.AddMenuItem("Quit", "Shut down the bard daemon")

	ready.Store(true)

	if onStart != nil {
		onStart()
	}

	// a degraded start draws nothing, so show the problem now
	Refresh()

	go renderBars()
	go handleClicks()
}

// renderBars shows each queued bar. A drawn bar means the config loaded,
// so the problem line is cleared.
func renderBars() {
	for bar := range bars {
		if !ready.Load() {
			return
		}
		showBar(bar)
		showProblem(bar, "")
	}
}

func onQuit() {
	ready.Store(false)
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-updateItem.ClickedCh:
			if state != nil {
				log.Println("[tray] update all")
				go state.UpdateAll()
			}

		case <-restartItem.ClickedCh:
			if state != nil {
				log.Println("[tray] restart")
				go func() {
					state.Restart()
					Refresh()
				}()
			}

		case <-quitItem.ClickedCh:
			if state != nil {
				state.RequestShutdown()
			}
		}
	}
}

func showBar(bar string) {
	systray.SetTitle(formatTitle(bar))
	barItem.SetTitle(formatTitle(bar))
}

// showProblem updates the tooltip and shows or hides the config error line.
func showProblem(bar, problem string) {
	systray.SetTooltip(formatTooltip(bar, problem))
	if problem == "" {
		problemItem.Hide()
		return
	}
	problemItem.SetTitle(formatTitle(problem))
	problemItem.Show()
}

func formatTitle(bar string) string {
	if bar == "" {
		return "(empty bar)"
	}
	return ansi.Truncate(bar, maxTitleWidth, "…")
}

func formatTooltip(bar, problem string) string {
	if problem != "" {
		return fmt.Sprintf("bard (degraded): %s", problem)
	}
	if bar == "" {
		return "bard"
	}
	return fmt.Sprintf("bard: %s", bar)
}
