package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/liuhuayun/spider-flow/lang/ops"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "ops", "clear", "quit"}

// keywords are the literal keywords of the template language.
var keywords = []string{"true", "false", "null"}

// isWordBoundary reports whether the rune delimits a completion word.
// This covers whitespace, the member-access dot, and the language's
// operator and punctuation characters.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']', '{', '}',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!', '^',
		'&', '|', ',', '?', ':', ';',
		'$', '"', '\'':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor position and its byte
// boundaries within input. The word is empty when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// afterDot reports whether the word at wordStart is a member access, in
// which case operation names are the only candidates.
func afterDot(input string, wordStart int) bool {
	r, _ := utf8.DecodeLastRuneInString(input[:wordStart])

	return r == '.'
}

// candidatesFor returns the completion candidates for the word position.
func candidatesFor(mode inputMode, input string, wordStart int) []string {
	if mode == modeCtrl {
		return ctrlCommands
	}

	if afterDot(input, wordStart) {
		return ops.Names()
	}

	return append(ops.Names(), keywords...)
}

// computeMatches calculates the fuzzy matches for the word at the
// cursor: the ranked matches, the word boundaries, and nothing when the
// word is empty outside a member access.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()
	cursor := m.input.Position()

	word, wordStart, wordEnd := wordBounds(input, cursor)

	if word == "" {
		// After a dot, offer every operation so the user can browse.
		if m.mode == modeExpr && afterDot(input, wordStart) {
			names := ops.Names()

			matches = make(fuzzy.Matches, len(names))
			for i, name := range names {
				matches[i] = fuzzy.Match{Str: name, Index: i}
			}

			return matches, wordStart, wordEnd
		}

		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidatesFor(m.mode, input, wordStart)), wordStart, wordEnd
}

// refreshMatches recomputes fuzzy matches for the current input state.
func refreshMatches(m *model) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}
}

// replaceCurrentWord replaces the word boundaries in the input with the
// given completion and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// renderCandidateBar builds the single-line completion bar, ellipsized
// to fit the terminal width. The selected candidate (when tabbing) uses
// the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
