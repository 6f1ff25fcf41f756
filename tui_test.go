package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/victhorio/cachebench/bench/core"
)

func testBenchModel(events chan core.Event, done chan benchDoneMsg) benchModel {
	return newBenchModel(events, done, func() {}, false, true)
}

func sampleTurn() core.TurnResult {
	return core.TurnResult{
		Turn:     1,
		Question: "What is SmartWidget?",
		Answer:   "A widget platform.",
		Latency:  1200 * time.Millisecond,
		Usage: core.Usage{
			Input:      45,
			CacheRead:  1100,
			Output:     180,
			Total:      1325,
			Cost:       640_000_000,
		},
	}
}

func TestBenchModelTurnFlow(t *testing.T) {
	events := make(chan core.Event, 4)
	done := make(chan benchDoneMsg, 1)
	m := testBenchModel(events, done)

	next, _ := m.Update(benchEventMsg(core.NewEvRunStart("id", "amazon.nova-pro-v1:0", core.ModeCached)))
	m = next.(benchModel)
	if !strings.Contains(m.View(), "amazon.nova-pro-v1:0") {
		t.Errorf("view should show the model after run start:\n%s", m.View())
	}

	next, _ = m.Update(benchEventMsg(core.NewEvTurnStart("id", "What is SmartWidget?")))
	m = next.(benchModel)
	if !strings.Contains(m.View(), "What is SmartWidget?") {
		t.Errorf("view should show the in-flight question:\n%s", m.View())
	}

	next, _ = m.Update(benchEventMsg(core.NewEvTurnDone("id", sampleTurn())))
	m = next.(benchModel)
	view := m.View()
	if !strings.Contains(view, "Turn 1") {
		t.Errorf("view should show the finished turn line:\n%s", view)
	}
	if len(m.lines) != 1 {
		t.Errorf("expected 1 finished line, got %d", len(m.lines))
	}
	if m.question != "" {
		t.Errorf("question should clear once the turn finishes, got %q", m.question)
	}
}

func TestBenchModelShowsAnswers(t *testing.T) {
	events := make(chan core.Event, 1)
	done := make(chan benchDoneMsg, 1)
	m := newBenchModel(events, done, func() {}, true, true)

	next, _ := m.Update(benchEventMsg(core.NewEvTurnDone("id", sampleTurn())))
	m = next.(benchModel)
	if len(m.lines) != 2 {
		t.Fatalf("expected turn line plus answer, got %d lines", len(m.lines))
	}
	if !strings.Contains(m.lines[1], "widget platform") {
		t.Errorf("answer line missing answer text: %q", m.lines[1])
	}
}

func TestBenchModelDone(t *testing.T) {
	events := make(chan core.Event, 1)
	done := make(chan benchDoneMsg, 1)
	m := testBenchModel(events, done)

	result := &core.RunResult{ID: "id", Model: "amazon.nova-pro-v1:0", Mode: core.ModeCached}
	next, cmd := m.Update(benchDoneMsg{result: result})
	m = next.(benchModel)

	if !m.finished {
		t.Error("model should be finished after done message")
	}
	if m.result != result {
		t.Error("model should hold the final result")
	}
	if cmd == nil {
		t.Fatal("done message should quit the program")
	}
	if !strings.Contains(m.View(), "Done.") {
		t.Errorf("view should show completion:\n%s", m.View())
	}
}

func TestBenchModelError(t *testing.T) {
	events := make(chan core.Event, 1)
	done := make(chan benchDoneMsg, 1)
	m := testBenchModel(events, done)

	next, _ := m.Update(benchDoneMsg{err: errors.New("throttled")})
	m = next.(benchModel)
	if !strings.Contains(m.View(), "Error: throttled") {
		t.Errorf("view should surface the error:\n%s", m.View())
	}
}

func TestBenchModelDrainsDoneAfterEventsClose(t *testing.T) {
	events := make(chan core.Event)
	done := make(chan benchDoneMsg, 1)
	m := testBenchModel(events, done)

	close(events)
	msg := m.waitForEvent()()
	if _, ok := msg.(eventsClosedMsg); !ok {
		t.Fatalf("expected eventsClosedMsg, got %T", msg)
	}

	done <- benchDoneMsg{err: context.Canceled}
	next, cmd := m.Update(msg)
	m = next.(benchModel)
	if cmd == nil {
		t.Fatal("events-closed should chain into waiting for the done message")
	}
	dm, ok := cmd().(benchDoneMsg)
	if !ok || !errors.Is(dm.err, context.Canceled) {
		t.Fatalf("expected the cancelled done message, got %#v", dm)
	}
}
