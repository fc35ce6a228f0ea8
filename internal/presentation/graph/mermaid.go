// Package graph renders sequence timelines as Mermaid diagrams.
package graph

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/reel/pkg/domain"
)

// Overlay marks playback progress on the chart. Spans closed before Index are
// tagged done and the span containing Index is tagged active.
type Overlay struct {
	Index int
}

type span struct {
	label      string
	start, end time.Duration
	first      int // step index that opened the span
	last       int // step index that closed it
}

// GenerateMermaid produces a Mermaid gantt chart of seq: one section for the
// dialogue box, one for the lines spoken, and cues as milestones.
func GenerateMermaid(seq *domain.Sequence, overlay *Overlay) string {
	var box, lines, cues []span

	boxOpen := seq.Meta().BoxVisible
	boxFrom, boxIdx := time.Duration(0), 0
	var line *span

	closeLine := func(at time.Duration, idx int) {
		if line != nil {
			line.end, line.last = at, idx
			lines = append(lines, *line)
			line = nil
		}
	}

	for _, e := range seq.Timeline() {
		switch e.Step.Kind {
		case domain.StepDialogue:
			closeLine(e.Offset, e.Index)
			line = &span{
				label: e.Step.Dialogue.Speaker + " - " + truncate(e.Step.Dialogue.Text, 40),
				start: e.Offset,
				first: e.Index,
			}
		case domain.StepBox:
			switch {
			case e.Step.Visible && !boxOpen:
				boxOpen, boxFrom, boxIdx = true, e.Offset, e.Index
			case !e.Step.Visible && boxOpen:
				closeLine(e.Offset, e.Index)
				box = append(box, span{label: "dialogue box", start: boxFrom, end: e.Offset, first: boxIdx, last: e.Index})
				boxOpen = false
			}
		case domain.StepCue:
			cues = append(cues, span{label: e.Step.String(), start: e.Offset, end: e.Offset, first: e.Index, last: e.Index})
		}
	}
	end := seq.Duration()
	closeLine(end, seq.Len())
	if boxOpen {
		box = append(box, span{label: "dialogue box", start: boxFrom, end: end, first: boxIdx, last: seq.Len()})
	}

	var sb strings.Builder
	sb.WriteString("gantt\n")
	fmt.Fprintf(&sb, "    title %s\n", sanitize(title(seq)))
	sb.WriteString("    dateFormat x\n")
	sb.WriteString("    axisFormat %M:%S\n")

	writeSection(&sb, "Box", box, overlay, false)
	writeSection(&sb, "Dialogue", lines, overlay, false)
	writeSection(&sb, "Cues", cues, overlay, true)
	return sb.String()
}

func writeSection(sb *strings.Builder, name string, spans []span, overlay *Overlay, milestone bool) {
	if len(spans) == 0 {
		return
	}
	fmt.Fprintf(sb, "    section %s\n", name)
	for _, s := range spans {
		var tags []string
		if milestone {
			tags = append(tags, "milestone")
		}
		if t := status(s, overlay); t != "" {
			tags = append(tags, t)
		}
		tags = append(tags, fmt.Sprintf("s%d", s.first))

		fmt.Fprintf(sb, "    %s :%s, %d, %dms\n",
			sanitize(s.label), strings.Join(tags, ", "), s.start.Milliseconds(), (s.end - s.start).Milliseconds())
	}
}

func status(s span, overlay *Overlay) string {
	switch {
	case overlay == nil:
		return ""
	case s.last <= overlay.Index && s.last > s.first:
		return "done"
	case s.first < overlay.Index && s.last == s.first:
		return "done"
	case s.first <= overlay.Index && overlay.Index < s.last:
		return "active"
	}
	return ""
}

func title(seq *domain.Sequence) string {
	if t := seq.Meta().Title; t != "" {
		return t
	}
	return seq.Name()
}

// sanitize removes characters that terminate a Mermaid gantt task name.
func sanitize(s string) string {
	r := strings.NewReplacer(":", " ", ";", " ", "#", "", "\n", " ")
	return strings.TrimSpace(r.Replace(s))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
