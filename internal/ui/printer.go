// Package ui renders workflow output for the terminal: the interview
// transcript, knowledge-base facets, and success/error notices.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jihoon/resume-pilot/internal/chat"
	"github.com/jihoon/resume-pilot/internal/knowledge"
)

// Printer handles formatted output for the CLI.
type Printer struct {
	out io.Writer

	assistant *color.Color
	user      *color.Color
	heading   *color.Color
	errColor  *color.Color
	okColor   *color.Color
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:       out,
		assistant: color.New(color.FgCyan),
		user:      color.New(color.FgWhite, color.Bold),
		heading:   color.New(color.FgYellow, color.Bold),
		errColor:  color.New(color.FgRed),
		okColor:   color.New(color.FgGreen),
	}
}

// PrintMessage renders one transcript message with a role-colored prefix.
func (p *Printer) PrintMessage(m chat.Message) {
	switch m.Role {
	case chat.RoleAssistant:
		p.assistant.Fprint(p.out, "interviewer> ")
	default:
		p.user.Fprint(p.out, "you> ")
	}
	fmt.Fprintln(p.out, m.Content)
}

// PrintTranscript renders the whole transcript in order.
func (p *Printer) PrintTranscript(messages []chat.Message) {
	for _, m := range messages {
		p.PrintMessage(m)
	}
}

// Error prints a failure notice.
func (p *Printer) Error(format string, args ...any) {
	p.errColor.Fprintf(p.out, "error: "+format+"\n", args...)
}

// Success prints a success notice.
func (p *Printer) Success(format string, args ...any) {
	p.okColor.Fprintf(p.out, format+"\n", args...)
}

// Info prints a plain informational line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// PrintKnowledge renders the knowledge base facet by facet. Absent facets
// are skipped; one missing facet never hides the others.
func (p *Printer) PrintKnowledge(kb *knowledge.KnowledgeBase) {
	if kb == nil {
		fmt.Fprintln(p.out, "no data")
		return
	}

	if len(kb.PersonalInfo) > 0 {
		p.heading.Fprintln(p.out, "Personal info")
		for key, value := range kb.PersonalInfo {
			fmt.Fprintf(p.out, "  %s: %s\n", key, value)
		}
	}

	if len(kb.Careers) > 0 {
		p.heading.Fprintln(p.out, "Careers")
		for _, career := range kb.Careers {
			fmt.Fprintf(p.out, "  %s - %s (%s)\n", career.Company, career.Position, career.Duration)
			for _, project := range career.Projects {
				fmt.Fprintf(p.out, "    · %s\n", project.Name)
			}
		}
	}

	if len(kb.Skills) > 0 {
		p.heading.Fprintln(p.out, "Skills")
		fmt.Fprintf(p.out, "  %s\n", strings.Join(kb.Skills, ", "))
	}

	if len(kb.Education) > 0 {
		p.heading.Fprintln(p.out, "Education")
		for _, edu := range kb.Education {
			fmt.Fprintf(p.out, "  %s, %s %s (%s)\n", edu.Institution, edu.Degree, edu.Major, edu.Duration)
		}
	}

	if len(kb.Extra) > 0 {
		p.heading.Fprintln(p.out, "Other")
		for name := range kb.Extra {
			fmt.Fprintf(p.out, "  %s\n", name)
		}
	}
}
