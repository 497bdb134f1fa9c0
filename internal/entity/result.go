package entity

import "fmt"

const (
	OutcomeContinue = "continue"
	OutcomeWon      = "won"
	OutcomeDraw     = "draw"
)

// GameState is the state of the rules engine.
type GameState string

const (
	StateInProgress GameState = "in_progress"
	StateWon        GameState = "won"
	StateDraw       GameState = "draw"
)

func (that GameState) IsTerminal() bool {
	return that == StateWon || that == StateDraw
}

// MatchResult is the evaluation of a board after a move.
type MatchResult struct {
	Outcome string  `json:"outcome"`
	Winner  Mark    `json:"winner,omitempty"`
	Pattern Pattern `json:"pattern,omitempty"`
}

func ContinueResult() MatchResult {
	return MatchResult{Outcome: OutcomeContinue}
}

func DrawResult() MatchResult {
	return MatchResult{Outcome: OutcomeDraw}
}

func WinResult(winner Mark, pattern Pattern) MatchResult {
	line := make(Pattern, len(pattern))
	copy(line, pattern)

	return MatchResult{Outcome: OutcomeWon, Winner: winner, Pattern: line}
}

func (that MatchResult) IsOver() bool {
	return that.Outcome == OutcomeWon || that.Outcome == OutcomeDraw
}

func (that MatchResult) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

// Message is the human-readable announcement of a finished game.
func (that MatchResult) Message() string {
	switch {
	case that.IsDraw():
		return "It's a draw"
	case that.Outcome == OutcomeWon:
		return fmt.Sprintf("Player %s wins", that.Winner)
	default:
		return ""
	}
}

// State maps the result onto the engine state machine.
func (that MatchResult) State() GameState {
	switch that.Outcome {
	case OutcomeWon:
		return StateWon
	case OutcomeDraw:
		return StateDraw
	default:
		return StateInProgress
	}
}
