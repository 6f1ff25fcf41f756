package core

type Event struct {
	Type     EventType
	RunID    string
	Model    string
	Mode     Mode
	Turn     TurnResult
	Question string
	Result   *RunResult
	Err      error
}

type EventType int

const (
	EvUnk EventType = iota
	EvRunStart
	EvTurnStart
	EvTurnDone
	EvRunDone
	EvRunSkipped
)

func NewEvRunStart(runID, model string, mode Mode) Event {
	return Event{
		Type:  EvRunStart,
		RunID: runID,
		Model: model,
		Mode:  mode,
	}
}

func NewEvTurnStart(runID, question string) Event {
	return Event{
		Type:     EvTurnStart,
		RunID:    runID,
		Question: question,
	}
}

func NewEvTurnDone(runID string, turn TurnResult) Event {
	return Event{
		Type:  EvTurnDone,
		RunID: runID,
		Turn:  turn,
	}
}

func NewEvRunDone(result *RunResult) Event {
	return Event{
		Type:   EvRunDone,
		RunID:  result.ID,
		Result: result,
	}
}

func NewEvRunSkipped(model string, mode Mode, err error) Event {
	return Event{
		Type:  EvRunSkipped,
		Model: model,
		Mode:  mode,
		Err:   err,
	}
}
