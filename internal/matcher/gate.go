// file: internal/matcher/gate.go
// version: 1.0.0
// guid: 1a3b5c7d-9e0f-1a2b-3c4d-5e6f7a8b9c0d

package matcher

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Default confidence thresholds. Low scores are the dangerous case: a wrong
// accept mis-tags files, so the posture below the accept threshold is
// default-deny.
const (
	DefaultAcceptScore  = 70
	DefaultSuggestScore = 80
)

// PromptFunc asks the operator a yes/no question with a default answer.
type PromptFunc func(question string, def bool) bool

// Gate decides whether a scored match is applied.
type Gate struct {
	AcceptScore  int // >= this: accept without prompting
	SuggestScore int // > this: interactive default flips to yes
	AutoYes      bool
	AutoNo       bool
	Prompt       PromptFunc // nil uses the console prompt
}

// NewGate builds a gate with the default thresholds.
func NewGate(autoYes, autoNo bool) Gate {
	return Gate{
		AcceptScore:  DefaultAcceptScore,
		SuggestScore: DefaultSuggestScore,
		AutoYes:      autoYes,
		AutoNo:       autoNo,
	}
}

// Decide applies the confirmation policy to a score:
//
//	score >= AcceptScore        accept, no prompt
//	AutoYes                     accept, no prompt
//	AutoNo                      reject, no prompt
//	otherwise                   prompt; default reject, suggested accept
//	                            only when score > SuggestScore
func (g Gate) Decide(score int) bool {
	if score >= g.AcceptScore {
		return true
	}
	if g.AutoYes {
		return true
	}
	if g.AutoNo {
		return false
	}
	prompt := g.Prompt
	if prompt == nil {
		prompt = consolePrompt
	}
	return prompt("  tag with this metadata?", score > g.SuggestScore)
}

// consolePrompt reads a y/n answer from stdin; empty input takes the default.
func consolePrompt(question string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Printf("%s [%s] ", question, hint)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return def
	}
	ans := strings.ToLower(strings.TrimSpace(line))
	if ans == "" {
		return def
	}
	return ans == "y" || ans == "yes"
}
