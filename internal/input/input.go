// Package input provides interactive terminal input for the Kindling CLI.
//
// The interview layer renders every question through these helpers so
// prompts look the same whether they come from the intro sequence, a
// plugin, or the package-manager outro.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	choiceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Interactive reports whether stdin is attached to a terminal. The
// creation workflow falls back to defaults when it is not.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompt asks for text input with an optional default value. Pressing
// Enter without typing returns the default.
//
// Example:
//
//	name := input.Prompt("Project name", "my-app")
//	// Displays: Project name (my-app): _
func Prompt(message, defaultValue string) string {
	reader := bufio.NewReader(os.Stdin)

	if defaultValue != "" {
		fmt.Print(promptStyle.Render(message) + " " +
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue)) + ": ")
	} else {
		fmt.Print(promptStyle.Render(message) + ": ")
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

// Confirm asks a yes/no question. Returns true for y/Y/yes/YES. Pressing
// Enter returns defaultYes.
func Confirm(message string, defaultYes bool) bool {
	reader := bufio.NewReader(os.Stdin)

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Print(promptStyle.Render(message) + " " + hintStyle.Render(hint) + ": ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return defaultYes
	}
	return line == "y" || line == "yes"
}

// Select asks the user to pick one of choices by number. Pressing Enter
// picks defaultIdx. Invalid input falls back to the default as well.
//
//	Pick a preset:
//	  1) default
//	  2) full
//	  3) manual
//	Choice (1): _
func Select(message string, choices []string, defaultIdx int) string {
	if len(choices) == 0 {
		return ""
	}
	if defaultIdx < 0 || defaultIdx >= len(choices) {
		defaultIdx = 0
	}

	fmt.Println(promptStyle.Render(message))
	for i, c := range choices {
		fmt.Println(choiceStyle.Render(fmt.Sprintf("  %d) %s", i+1, c)))
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print(hintStyle.Render(fmt.Sprintf("Choice (%d)", defaultIdx+1)) + ": ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return choices[defaultIdx]
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return choices[defaultIdx]
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(choices) {
		return choices[defaultIdx]
	}
	return choices[n-1]
}

// MultiSelect asks the user to pick any number of choices as a
// comma-separated list of numbers. Empty input selects nothing.
//
//	Pick features:
//	  1) router
//	  2) typescript
//	Choices (e.g. 1,2): _
func MultiSelect(message string, choices []string) []string {
	if len(choices) == 0 {
		return nil
	}

	fmt.Println(promptStyle.Render(message))
	for i, c := range choices {
		fmt.Println(choiceStyle.Render(fmt.Sprintf("  %d) %s", i+1, c)))
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print(hintStyle.Render("Choices (e.g. 1,2)") + ": ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return nil
	}

	var picked []string
	seen := make(map[int]bool)
	for _, part := range strings.Split(strings.TrimSpace(line), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > len(choices) || seen[n] {
			continue
		}
		seen[n] = true
		picked = append(picked, choices[n-1])
	}
	return picked
}
