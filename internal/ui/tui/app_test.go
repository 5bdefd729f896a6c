package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/usecase"
)

type fakeComposer struct {
	got []usecase.ComposeRequest
	err error
}

func (f *fakeComposer) Execute(_ context.Context, req usecase.ComposeRequest) (domain.Joke, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return domain.Joke{}, f.err
	}
	return domain.Joke{Variant: "en", FirstName: "Alice", Surname: "Liddell", Text: "Knock, knock!\nWho's there?"}, nil
}

type fakePoster struct {
	got []usecase.PostRequest
}

func (f *fakePoster) Execute(_ context.Context, req usecase.PostRequest) (usecase.PostResult, error) {
	f.got = append(f.got, req)
	return usecase.PostResult{Publish: domain.PublishResult{PostID: "1", Permalink: "https://twitter.com/bot/status/1"}}, nil
}

func testDeps(c *fakeComposer, p *fakePoster) Deps {
	cfg := domain.DefaultConfig()
	return Deps{
		Config:   cfg,
		Compose:  c,
		Post:     p,
		NextSeed: func() uint64 { return 42 },
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes a tea.Cmd and returns the first message that is one of ours.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			switch m := c().(type) {
			case jokeComposedMsg, jokePostedMsg:
				return m
			}
		}
		t.Fatal("batch held no joke message")
	}
	return msg
}

func TestModel_ComposeThenPost(t *testing.T) {
	c := &fakeComposer{}
	p := &fakePoster{}
	m := newModel(testDeps(c, p))

	next, cmd := m.Update(key("n"))
	m = next.(model)
	if !m.busy {
		t.Fatal("expected busy while composing")
	}

	next, _ = m.Update(runCmd(t, cmd))
	m = next.(model)
	if m.busy || !m.hasJoke {
		t.Fatalf("expected a joke, got busy=%v hasJoke=%v", m.busy, m.hasJoke)
	}
	if m.seed != 42 {
		t.Fatalf("expected seed 42, got %d", m.seed)
	}
	if !strings.Contains(m.View(), "Who's there?") {
		t.Fatalf("expected joke in view:\n%s", m.View())
	}

	next, cmd = m.Update(key("p"))
	m = next.(model)
	next, _ = m.Update(runCmd(t, cmd))
	m = next.(model)

	if len(p.got) != 1 {
		t.Fatalf("expected one post, got %d", len(p.got))
	}
	if p.got[0].Seed != 42 || p.got[0].DryRun {
		t.Fatalf("unexpected post request %+v", p.got[0])
	}
	if m.permalink != "https://twitter.com/bot/status/1" || m.toast != "Posted" {
		t.Fatalf("unexpected state permalink=%q toast=%q", m.permalink, m.toast)
	}
}

func TestModel_PostNeedsJoke(t *testing.T) {
	p := &fakePoster{}
	m := newModel(testDeps(&fakeComposer{}, p))

	next, cmd := m.Update(key("p"))
	m = next.(model)
	if cmd != nil {
		t.Fatal("expected no command")
	}
	if m.toast == "" || len(p.got) != 0 {
		t.Fatalf("expected a hint and no post, toast=%q posts=%d", m.toast, len(p.got))
	}
}

func TestModel_ToggleTestMode(t *testing.T) {
	p := &fakePoster{}
	m := newModel(testDeps(&fakeComposer{}, p))
	m.hasJoke = true

	next, _ := m.Update(key("t"))
	m = next.(model)
	if !m.dryRun {
		t.Fatal("expected test mode on")
	}

	next, cmd := m.Update(key("p"))
	m = next.(model)
	next, _ = m.Update(runCmd(t, cmd))
	m = next.(model)

	if len(p.got) != 1 || !p.got[0].DryRun {
		t.Fatalf("expected a dry-run post, got %+v", p.got)
	}
	if m.toast != "Test mode, not posted" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestModel_ComposeErrorShowsMessage(t *testing.T) {
	c := &fakeComposer{err: &domain.OpError{Op: "compose", Kind: domain.KindEmptyCorpus, Err: errors.New("no surnames")}}
	m := newModel(testDeps(c, &fakePoster{}))

	_, cmd := m.Update(key("n"))
	next, _ := m.Update(runCmd(t, cmd))
	m = next.(model)

	if m.hasJoke {
		t.Fatal("did not expect a joke")
	}
	if m.toast != "A name list is empty" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m := newModel(testDeps(&fakeComposer{}, &fakePoster{}))
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestSafeModel_WrapsUpdates(t *testing.T) {
	s := wrapSafe(newModel(testDeps(&fakeComposer{}, &fakePoster{})), nil)

	next, _ := s.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if sm.m.width != 100 {
		t.Fatalf("expected width 100, got %d", sm.m.width)
	}
	if !strings.Contains(sm.View(), "knockbot") {
		t.Fatal("expected header in view")
	}
}
