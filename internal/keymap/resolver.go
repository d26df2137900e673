package keymap

// Command is a resolved key press.
type Command struct {
	Action Action
	// Percent is the seek target of ActionSeekPercent.
	Percent float64
	// Playback is set for actions that drive the player; they need a bound
	// layout.
	Playback bool
}

// Resolver maps key strings to commands.
type Resolver struct {
	bindings map[string]Binding
}

// NewResolver indexes bindings by key. A key listed twice keeps its last
// binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{bindings: make(map[string]Binding)}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.bindings[k] = b
		}
	}
	return r
}

// Resolve returns the command bound to key; ok is false for unbound keys.
func (r *Resolver) Resolve(key string) (cmd Command, ok bool) {
	b, ok := r.bindings[key]
	if !ok {
		return Command{}, false
	}
	cmd = Command{Action: b.Action, Playback: b.Context == ContextPlayback}
	if b.Action == ActionSeekPercent {
		cmd.Percent, ok = digitPercent(key)
	}
	return cmd, ok
}
