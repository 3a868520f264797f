package evlog

// ProxyOpts seeds a proxy logger's own gating and prefix. Zero values
// inherit everything from the chain.
type ProxyOpts struct {
	Prefix string
	Debug  bool
	Muted  bool
}

// Proxy derives a logger that writes through the receiver. The child
// holds its own prefix and gating flags; effective mute and debug are
// computed over the whole chain at call time, so flipping a parent
// affects every descendant immediately.
func (l *Logger) Proxy(opts ProxyOpts) *Logger {
	return &Logger{
		root:   l.root,
		parent: l,
		prefix: opts.Prefix,
		debug:  opts.Debug,
		muted:  opts.Muted,
	}
}

// SetMuted flips the receiver's own mute flag. Ancestors and
// descendants keep theirs.
func (l *Logger) SetMuted(muted bool) {
	l.mu.Lock()
	l.muted = muted
	l.mu.Unlock()
}

// SetDebug flips the receiver's own debug flag.
func (l *Logger) SetDebug(debug bool) {
	l.mu.Lock()
	l.debug = debug
	l.mu.Unlock()
}

// SetPrefix replaces the receiver's own prefix.
func (l *Logger) SetPrefix(prefix string) {
	l.mu.Lock()
	l.prefix = prefix
	l.mu.Unlock()
}

// ClearPrefix removes the receiver's own prefix.
func (l *Logger) ClearPrefix() {
	l.SetPrefix("")
}

// GetPrefix returns the receiver's own prefix, not the composed chain.
func (l *Logger) GetPrefix() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.prefix
}

// IsMuted reports whether the receiver or any ancestor is muted.
func (l *Logger) IsMuted() bool { return l.effectiveMuted() }

// IsDebug reports whether the receiver or any ancestor has debug set.
func (l *Logger) IsDebug() bool { return l.effectiveDebug() }

func (l *Logger) effectiveMuted() bool {
	for cur := l; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		muted := cur.muted
		cur.mu.RUnlock()
		if muted {
			return true
		}
	}
	return false
}

func (l *Logger) effectiveDebug() bool {
	for cur := l; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		debug := cur.debug
		cur.mu.RUnlock()
		if debug {
			return true
		}
	}
	return false
}
