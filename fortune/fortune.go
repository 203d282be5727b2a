package fortune

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownMethod is returned for method selectors outside the supported set.
var ErrUnknownMethod = errors.New("unknown divination method")

// Method selects a divination technique.
type Method string

const (
	MethodTarot    Method = "tarot"
	MethodZhouYi   Method = "zhouyi"
	MethodGuangong Method = "guangong"
	// MethodAll draws once with every concrete method.
	MethodAll Method = "all"
)

// Methods returns the concrete methods in presentation order.
func Methods() []Method {
	return []Method{MethodTarot, MethodZhouYi, MethodGuangong}
}

// ParseMethod maps a selector to a Method. The empty string selects MethodAll.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MethodAll, nil
	case MethodTarot, MethodZhouYi, MethodGuangong, MethodAll:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Fortune is the outcome of a single draw.
type Fortune struct {
	Method  Method `json:"method"`
	Symbol  string `json:"symbol"`
	Title   string `json:"title"`
	Verse   string `json:"verse,omitempty"`
	Meaning string `json:"meaning"`
	Advice  string `json:"advice,omitempty"`
	Prompt  string `json:"prompt"`
}

// Reading maps a method name to the fortune drawn with it.
type Reading map[string]Fortune

// Drawer draws fortunes from the built-in decks. The zero value uses a
// RandomSeeder.
type Drawer struct {
	Seeder Seeder
}

// Draw casts the requested method for prompt. MethodAll yields one entry per
// concrete method.
func (d *Drawer) Draw(prompt string, method Method) (Reading, error) {
	methods := []Method{method}
	switch method {
	case MethodAll:
		methods = Methods()
	case MethodTarot, MethodZhouYi, MethodGuangong:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	seeder := d.Seeder
	if seeder == nil {
		seeder = RandomSeeder{}
	}

	out := make(Reading, len(methods))
	for _, m := range methods {
		seed := seeder.Seed(prompt, m)
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

		var f Fortune
		switch m {
		case MethodTarot:
			f = drawTarot(rng)
		case MethodZhouYi:
			f = drawZhouYi(rng)
		case MethodGuangong:
			f = drawGuangong(rng)
		}
		f.Method = m
		f.Prompt = prompt
		out[string(m)] = f
	}
	return out, nil
}

// Draw casts with a zero Drawer.
func Draw(prompt string, method Method) (Reading, error) {
	var d Drawer
	return d.Draw(prompt, method)
}

// Lines renders one "<method> (<symbol>): <title>" line per fortune, in
// Methods() order.
func (r Reading) Lines() []string {
	lines := make([]string, 0, len(r))
	for _, m := range Methods() {
		f, ok := r[string(m)]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s (%s): %s", f.Method, f.Symbol, f.Title))
	}
	return lines
}

// Summary joins Lines with blank lines between entries.
func (r Reading) Summary() string {
	return strings.Join(r.Lines(), "\n\n")
}
