/*
Package dsl provides a fluent API for authoring reel sequences in Go.

It is the code-first counterpart of the YAML script format and produces the same
validated, immutable domain.Sequence.

# Usage

	seq, err := dsl.New("rooftop").
		Completion("Rooftop complete").
		Cast(domain.Character{ID: "Kai"}).
		Show().
		Pause(1.0).
		Animate("Kai", "Point_Urgent").
		Line("Kai", "Now!", 700*time.Millisecond, 8*time.Second).Voice("kai_01").
		Hide().
		Build()
*/
package dsl
