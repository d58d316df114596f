package logging

import (
	"sync"

	"go.uber.org/zap/zapcore"
)

// Entry is one journal line.
type Entry struct {
	Level   zapcore.Level
	Message string
}

// Journal is a zapcore.Core that keeps the most recent entries in memory so
// the debug overlay can show them. Fields are discarded.
type Journal struct {
	zapcore.LevelEnabler

	mu      *sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewJournal keeps the last size entries at or above level. A size of zero
// disables recording.
func NewJournal(size int, level zapcore.LevelEnabler) *Journal {
	return &Journal{
		LevelEnabler: level,
		mu:           &sync.Mutex{},
		entries:      make([]Entry, size),
	}
}

func (j *Journal) With([]zapcore.Field) zapcore.Core { return j }

func (j *Journal) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if j.Enabled(ent.Level) {
		return ce.AddCore(ent, j)
	}
	return ce
}

func (j *Journal) Write(ent zapcore.Entry, _ []zapcore.Field) error {
	if len(j.entries) == 0 {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[j.next] = Entry{Level: ent.Level, Message: ent.Message}
	j.next = (j.next + 1) % len(j.entries)
	if j.next == 0 {
		j.full = true
	}
	return nil
}

func (j *Journal) Sync() error { return nil }

// Entries returns the recorded entries, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.full {
		return append([]Entry(nil), j.entries[:j.next]...)
	}
	out := make([]Entry, 0, len(j.entries))
	out = append(out, j.entries[j.next:]...)
	return append(out, j.entries[:j.next]...)
}

// Tail returns at most n of the newest entries, oldest first.
func (j *Journal) Tail(n int) []Entry {
	all := j.Entries()
	if n < len(all) {
		return all[len(all)-n:]
	}
	return all
}
