package compiler

import (
	"fmt"
	"sort"
)

// ArgErrorKind separates wrong argument shapes from out-of-range values.
type ArgErrorKind uint8

const (
	TypeError ArgErrorKind = iota
	ValueError
)

func (k ArgErrorKind) String() string {
	if k == ValueError {
		return "value error"
	}
	return "type error"
}

// ArgError is a signature violation found in a call's literal arguments.
type ArgError struct {
	Kind  ArgErrorKind
	Usage string
	Msg   string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Usage, e.Msg)
}

// Signature describes one allow-listed member call.
type Signature struct {
	Name  string
	Usage string
	Forms []string // accepted argument shapes, for documentation
	Check func(sig *Signature, subject *Value) error
}

func (s *Signature) fail(kind ArgErrorKind, format string, args ...any) error {
	return &ArgError{Kind: kind, Usage: s.Usage, Msg: fmt.Sprintf(format, args...)}
}

var pointForms = []string{
	"(x, y)        two numbers",
	"((x, y))      one tuple or list of two numbers",
}

var signatures = map[string]*Signature{
	"setpos":   {Name: "setpos", Usage: "setpos(x, y=None)", Forms: pointForms, Check: checkPoint},
	"towards":  {Name: "towards", Usage: "towards(x, y=None)", Forms: pointForms, Check: checkPoint},
	"distance": {Name: "distance", Usage: "distance(x, y=None)", Forms: pointForms, Check: checkPoint},
	"color": {
		Name:  "color",
		Usage: "color(*args)",
		Forms: []string{
			"()                           no arguments",
			"(\"name\")                     one color string",
			"((r, g, b))                  one RGB tuple, components <= 1.0",
			"(r, g, b)                    three RGB components <= 1.0",
			"((r, g, b), (r, g, b))       pen and fill RGB tuples",
			"([r, g, b])                  one RGB list, components <= 1.0",
			"([\"pen\", \"fill\"])            list of two color strings",
		},
		Check: checkColor,
	},
}

// LookupSignature returns the allow-listed signature for a member name.
func LookupSignature(name string) (*Signature, bool) {
	s, ok := signatures[name]
	return s, ok
}

// Signatures returns every allow-listed signature sorted by name.
func Signatures() []*Signature {
	out := make([]*Signature, 0, len(signatures))
	for _, s := range signatures {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SignatureNames returns the allow-listed member names, sorted.
func SignatureNames() []string {
	var names []string
	for _, s := range Signatures() {
		names = append(names, s.Name)
	}
	return names
}

func checkPoint(sig *Signature, subj *Value) error {
	if subj == nil {
		return sig.fail(TypeError, "expects 2 numbers, got no arguments")
	}
	if subj.IsTuple() && len(subj.Items) == 1 {
		return sig.fail(TypeError, "tuple must contain 2 numbers")
	}
	if (!subj.IsTuple() && !subj.IsList()) || len(subj.Items) != 2 {
		return sig.fail(TypeError, "expects 2 numbers, got %s", subj)
	}
	if !subj.allNumbers() {
		return sig.fail(TypeError, "argument is not a number in %s", subj)
	}
	return nil
}

func checkColor(sig *Signature, subj *Value) error {
	if subj == nil {
		return nil
	}
	switch subj.Kind {
	case StringValue:
		return nil
	case TupleValue:
		switch {
		case len(subj.Items) == 3:
			return checkRGB(sig, *subj)
		case len(subj.Items) == 2 && subj.Items[0].IsTuple() && subj.Items[1].IsTuple():
			for _, rgb := range subj.Items {
				if len(rgb.Items) != 3 {
					return sig.fail(TypeError, "RGB tuple %s must have 3 components", rgb)
				}
				if err := checkRGB(sig, rgb); err != nil {
					return err
				}
			}
			return nil
		}
		return sig.fail(TypeError, "incorrect RGB tuple format %s", subj)
	case ListValue:
		switch {
		case len(subj.Items) == 3 && subj.allNumbers():
			return checkRGB(sig, *subj)
		case len(subj.Items) == 2 && subj.Items[0].IsString() && subj.Items[1].IsString():
			return nil
		}
		return sig.fail(TypeError, "incorrect argument combination %s", subj)
	}
	return sig.fail(TypeError, "unsupported argument %s", subj)
}

// checkRGB validates a three-component color sequence.
func checkRGB(sig *Signature, rgb Value) error {
	if !rgb.allNumbers() {
		return sig.fail(TypeError, "RGB components must be numbers in %s", rgb)
	}
	for _, c := range rgb.Items {
		if c.Num > 1.0 {
			return sig.fail(ValueError, "RGB component %s exceeds 1.0 in %s", c, rgb)
		}
	}
	return nil
}
