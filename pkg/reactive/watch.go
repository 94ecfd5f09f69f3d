package reactive

// Change describes one observed mutation. Immediate watches deliver the
// initial snapshot with an empty Prop and the raw map as NewVal.
type Change struct {
	Prop   string
	NewVal any
	OldVal any
}

// WatchOption configures a Watch.
type WatchOption func(*watchConfig)

type watchConfig struct {
	immediate bool
}

// Immediate makes the watch fire once with the current raw snapshot
// before any change arrives.
func Immediate() WatchOption {
	return func(c *watchConfig) {
		c.immediate = true
	}
}

// Watch invokes cb for every subsequent change on n. The returned func
// stops the watch.
func Watch(n *Node, cb func(Change), opts ...WatchOption) (stop func()) {
	var cfg watchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.immediate {
		cb(Change{NewVal: n.Snapshot()})
	}

	return n.Subscribe(func(key string, newValue, oldValue any) {
		cb(Change{Prop: key, NewVal: newValue, OldVal: oldValue})
	})
}
