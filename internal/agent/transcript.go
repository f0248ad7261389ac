package agent

import (
	"fmt"
	"strings"
)

// Transcript is the growing dialogue fed back to the model on every think
// step: the priming prompt plus each action taken and its observation.
// Growth is bounded; once maxTurns is exceeded the oldest action/observation
// pair after the priming prompt is dropped.
type Transcript struct {
	priming  string
	turns    []turn
	maxTurns int
}

type turn struct {
	action      string
	observation string
}

const defaultMaxTurns = 16

func NewTranscript(priming string, maxTurns int) *Transcript {
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	return &Transcript{priming: priming, maxTurns: maxTurns}
}

// Observe appends one action/observation pair, evicting the oldest pair when
// the bound is hit.
func (t *Transcript) Observe(action, observation string) {
	t.turns = append(t.turns, turn{action: action, observation: observation})
	if len(t.turns) > t.maxTurns {
		t.turns = t.turns[len(t.turns)-t.maxTurns:]
	}
}

func (t *Transcript) Turns() int {
	return len(t.turns)
}

// Render produces the prompt for the next think step.
func (t *Transcript) Render() string {
	if len(t.turns) == 0 {
		return t.priming
	}

	var sb strings.Builder
	sb.WriteString(t.priming)
	sb.WriteString("\n")
	for _, turn := range t.turns {
		fmt.Fprintf(&sb, "Function Call: %s\nObservation: %s\n", turn.action, turn.observation)
	}
	sb.WriteString("What is the next tool call you should make to continue the process?")
	return sb.String()
}
