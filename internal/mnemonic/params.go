package mnemonic

import (
	"fmt"
	"maps"
	"slices"
)

// Params holds the values of a prompt, keyed by section name.
// Values are strings or (nested) mappings of strings; JSON decoded
// map[string]any values are accepted.
type Params map[string]any

// NonFilledOut returns, sorted, the parameters without content. A string is
// filled out when not empty, a mapping when at least one of its leaves is.
func (p Params) NonFilledOut() ([]string, error) {
	var missing []string
	for _, name := range slices.Sorted(maps.Keys(p)) {
		filled, err := filledOut(name, p[name])
		if err != nil {
			return nil, err
		}
		if !filled {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// FilledOut returns a copy of the parameters without empty fields and
// without empty subfields.
func (p Params) FilledOut() (Params, error) {
	out := make(Params, len(p))
	for name, value := range p {
		pruned, keep, err := prune(name, value)
		if err != nil {
			return nil, err
		}
		if keep {
			out[name] = pruned
		}
	}
	return out, nil
}

// String returns the text value of a one-dimensional parameter.
func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

func filledOut(name string, value any) (bool, error) {
	_, keep, err := prune(name, value)
	return keep, err
}

// prune drops empty leaves and reports whether anything is left.
func prune(name string, value any) (any, bool, error) {
	switch v := value.(type) {
	case string:
		return v, v != "", nil
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			if s != "" {
				out[k] = s
			}
		}
		return out, len(out) > 0, nil
	case map[string]map[string]string:
		out := make(map[string]any, len(v))
		for k, sub := range v {
			pruned, keep, _ := prune(name+"."+k, sub)
			if keep {
				out[k] = pruned
			}
		}
		return out, len(out) > 0, nil
	case map[string]any:
		if mixedLevels(v) {
			return nil, false, &PromptFieldTypeError{Field: name, Type: "a mapping mixing text and mappings"}
		}
		out := make(map[string]any, len(v))
		for k, sub := range v {
			pruned, keep, err := prune(name+"."+k, sub)
			if err != nil {
				return nil, false, err
			}
			if keep {
				out[k] = pruned
			}
		}
		return out, len(out) > 0, nil
	default:
		return nil, false, &PromptFieldTypeError{Field: name, Type: fmt.Sprintf("%T", value)}
	}
}

// mixedLevels reports whether m holds both text values and sub-mappings.
// Values of other types are left for prune to reject.
func mixedLevels(m map[string]any) bool {
	var text, nested bool
	for _, v := range m {
		switch v.(type) {
		case string:
			text = true
		case map[string]any, map[string]string:
			nested = true
		}
	}
	return text && nested
}
