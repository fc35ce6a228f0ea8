/*
Package script reads and writes cutscene sequences in the reel YAML format.

A script is a YAML document with authored metadata and an ordered list of steps.
Each step is a single-key mapping:

	name: rooftop
	title: Rooftop Standoff
	completion: "Cinematic Sequence Complete: [Rooftop]"
	cast:
	  - id: Kai
	    voice: kai
	steps:
	  - cue: {kind: scene, note: Disable player controls}
	  - box: true
	  - wait: 1.0          # seconds, or a Go duration string such as "750ms"
	  - say: {speaker: Kai, text: "Now!", voice: kai_01}
	  - cue: {kind: animation, target: Kai, action: Point_Urgent}
	  - box: false

Parsed sequences are validated before they are returned.
*/
package script
