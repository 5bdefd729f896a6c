package tui

import (
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const panicMessage = "Unexpected error (see logs)"

// safeModel keeps a panic in Update or View from tearing down the terminal.
type safeModel struct {
	m   model
	log *zap.Logger
}

func wrapSafe(m model, log *zap.Logger) safeModel {
	if log == nil {
		log = zap.NewNop()
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) logPanic(where string, r any) {
	s.log.Error("panic.recovered",
		zap.String("where", where),
		zap.String("panic", fmt.Sprint(r)),
		zap.ByteString("stack", debug.Stack()),
	)
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.update", r)
			s.m.busy = false
			s.m.toast = panicMessage
			tm, cmd = s, nil
		}
	}()

	next, c := s.m.Update(msg)
	switch v := next.(type) {
	case model:
		s.m = v
	case safeModel:
		s = v
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = panicMessage
		}
	}()
	return s.m.View()
}

var _ tea.Model = (*safeModel)(nil)
