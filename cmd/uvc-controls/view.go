package main

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/kevmo314/uvc-controls/pkg/render"
	"github.com/kevmo314/uvc-controls/pkg/session"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const help = "↑/k ↓/j select   ←/h →/l adjust   q quit"

type view struct {
	app      *tview.Application
	controls *tview.TextView
	logs     *tview.TextView

	// err is the fatal error that stopped the app, if any.
	err error
}

func newView() *view {
	controls := tview.NewTextView().SetDynamicColors(true).SetWrap(false)
	controls.SetBorder(true).SetTitle("Controls")

	logs := tview.NewTextView()
	logs.SetMaxLines(10).SetBorder(true).SetTitle("Log")

	helpText := tview.NewTextView().SetText(help).SetTextAlign(tview.AlignCenter)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(controls, 0, 1, false).
		AddItem(logs, 12, 0, false).
		AddItem(helpText, 1, 0, false)

	return &view{
		app:      tview.NewApplication().SetRoot(layout, true),
		controls: controls,
		logs:     logs,
	}
}

// keyIntent maps a key press to a session intent.
func keyIntent(ev *tcell.EventKey) (session.Intent, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return session.IntentUp, true
	case tcell.KeyDown:
		return session.IntentDown, true
	case tcell.KeyLeft:
		return session.IntentLeft, true
	case tcell.KeyRight:
		return session.IntentRight, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return session.IntentUp, true
		case 'j':
			return session.IntentDown, true
		case 'h':
			return session.IntentLeft, true
		case 'l':
			return session.IntentRight, true
		case 'q':
			return session.IntentQuit, true
		}
	}
	return 0, false
}

func (v *view) refresh(s *session.Session) {
	if len(s.Fields()) == 0 {
		v.controls.SetText("no adjustable controls")
		return
	}
	v.controls.SetText(render.List(s.Fields(), s.Active()))
}

// run blocks until the user quits or a write fails.
func (v *view) run(ctx context.Context, s *session.Session, log *zap.Logger) error {
	if err := s.Rebuild(ctx); err != nil {
		return err
	}
	v.refresh(s)

	v.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		intent, ok := keyIntent(ev)
		if !ok {
			return ev
		}
		err := s.Handle(ctx, intent)
		var rebuildErr *session.RebuildError
		switch {
		case err == nil:
		case errors.Is(err, session.ErrQuit):
			v.app.Stop()
			return nil
		case errors.As(err, &rebuildErr):
			log.Error("rebuild failed", zap.Error(err))
		default:
			v.err = err
			v.app.Stop()
			return nil
		}
		v.refresh(s)
		return nil
	})

	if err := v.app.Run(); err != nil {
		return err
	}
	return v.err
}
