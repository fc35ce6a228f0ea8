package script

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/reel/internal/validator"
	"github.com/aretw0/reel/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type document struct {
	Name       string             `yaml:"name"`
	Title      string             `yaml:"title,omitempty"`
	Synopsis   string             `yaml:"synopsis,omitempty"`
	Completion string             `yaml:"completion,omitempty"`
	BoxVisible bool               `yaml:"box_visible,omitempty"`
	Cast       []domain.Character `yaml:"cast,omitempty"`
	Steps      []map[string]any   `yaml:"steps"`
}

type waitStep struct {
	Duration time.Duration `mapstructure:"duration"`
}

type boxStep struct {
	Visible bool `mapstructure:"visible"`
}

type sayStep struct {
	Speaker string `mapstructure:"speaker"`
	Text    string `mapstructure:"text"`
	Voice   string `mapstructure:"voice"`
}

type cueStep struct {
	Kind   string `mapstructure:"kind"`
	Target string `mapstructure:"target"`
	Action string `mapstructure:"action"`
	Note   string `mapstructure:"note"`
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsHook lets plain numbers stand for seconds, matching how cutscene
// timings are usually authored.
func secondsHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	}
	return data, nil
}

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(secondsHook),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*domain.Sequence, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	steps := make([]domain.Step, 0, len(doc.Steps))
	for i, raw := range doc.Steps {
		step, err := decodeStep(raw)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}

	seq := domain.NewSequence(domain.Meta{
		Name:              doc.Name,
		Title:             doc.Title,
		Synopsis:          strings.TrimSpace(doc.Synopsis),
		CompletionMessage: doc.Completion,
		BoxVisible:        doc.BoxVisible,
		Cast:              doc.Cast,
	}, steps...)

	if err := validator.ValidateSequence(seq); err != nil {
		return nil, fmt.Errorf("invalid script %q: %w", doc.Name, err)
	}
	return seq, nil
}

func decodeStep(raw map[string]any) (domain.Step, error) {
	if len(raw) != 1 {
		keys := make([]string, 0, len(raw))
		for k := range raw {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return domain.Step{}, fmt.Errorf("expected exactly one of wait, say, box, cue; got %v", keys)
	}

	for key, value := range raw {
		switch key {
		case "wait":
			var w waitStep
			if err := decode(map[string]any{"duration": value}, &w); err != nil {
				return domain.Step{}, fmt.Errorf("wait: %w", err)
			}
			return domain.Wait(w.Duration), nil
		case "box":
			var b boxStep
			if err := decode(map[string]any{"visible": value}, &b); err != nil {
				return domain.Step{}, fmt.Errorf("box: %w", err)
			}
			return domain.Box(b.Visible), nil
		case "say":
			var s sayStep
			if err := decode(value, &s); err != nil {
				return domain.Step{}, fmt.Errorf("say: %w", err)
			}
			return domain.SayWithVoice(s.Speaker, s.Text, s.Voice), nil
		case "cue":
			var c cueStep
			if err := decode(value, &c); err != nil {
				return domain.Step{}, fmt.Errorf("cue: %w", err)
			}
			return domain.Annotate(domain.Cue{
				Kind:   domain.CueKind(c.Kind),
				Target: c.Target,
				Action: c.Action,
				Note:   c.Note,
			}), nil
		default:
			return domain.Step{}, fmt.Errorf("unknown step %q", key)
		}
	}
	return domain.Step{}, nil
}

// Marshal encodes seq in the script format. Waits are written in seconds.
func Marshal(seq *domain.Sequence) ([]byte, error) {
	meta := seq.Meta()
	doc := document{
		Name:       meta.Name,
		Title:      meta.Title,
		Synopsis:   meta.Synopsis,
		Completion: meta.CompletionMessage,
		BoxVisible: meta.BoxVisible,
		Cast:       meta.Cast,
		Steps:      make([]map[string]any, 0, seq.Len()),
	}

	for _, step := range seq.Steps() {
		switch step.Kind {
		case domain.StepWait:
			doc.Steps = append(doc.Steps, map[string]any{"wait": step.Duration.Seconds()})
		case domain.StepBox:
			doc.Steps = append(doc.Steps, map[string]any{"box": step.Visible})
		case domain.StepDialogue:
			say := map[string]any{"speaker": step.Dialogue.Speaker, "text": step.Dialogue.Text}
			if step.Dialogue.Voice != "" {
				say["voice"] = step.Dialogue.Voice
			}
			doc.Steps = append(doc.Steps, map[string]any{"say": say})
		case domain.StepCue:
			cue := map[string]any{"kind": string(step.Cue.Kind)}
			for k, v := range map[string]string{"target": step.Cue.Target, "action": step.Cue.Action, "note": step.Cue.Note} {
				if v != "" {
					cue[k] = v
				}
			}
			doc.Steps = append(doc.Steps, map[string]any{"cue": cue})
		default:
			return nil, fmt.Errorf("cannot encode step kind %q", step.Kind)
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode script: %w", err)
	}
	return out, nil
}
