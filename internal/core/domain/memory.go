package domain

import (
	"slices"
	"strings"
)

// MemoryState is the process-wide persisted memory.
// It is mutated only through the memory service's learn operations.
type MemoryState struct {
	// SelfName is the single learned identity fact. Last write wins.
	SelfName string `json:"selfName" yaml:"selfName"`

	// Facts is append-only and deduplicated by exact text.
	Facts []string `json:"facts" yaml:"facts"`

	// CompanyAlias is reserved. It is persisted but unused by retrieval.
	CompanyAlias map[string]string `json:"companyAlias" yaml:"companyAlias"`
}

// EmptyMemory returns a state with no self name and no facts.
func EmptyMemory() MemoryState {
	return MemoryState{
		Facts:        []string{},
		CompanyAlias: map[string]string{},
	}
}

// Clone returns a deep copy so snapshots never share backing arrays.
func (m MemoryState) Clone() MemoryState {
	out := MemoryState{
		SelfName:     m.SelfName,
		Facts:        slices.Clone(m.Facts),
		CompanyAlias: make(map[string]string, len(m.CompanyAlias)),
	}
	if out.Facts == nil {
		out.Facts = []string{}
	}
	for k, v := range m.CompanyAlias {
		out.CompanyAlias[k] = v
	}
	return out
}

// AddFact appends fact unless an identical fact already exists.
// Returns true if the fact was appended.
func (m *MemoryState) AddFact(fact string) bool {
	if fact == "" || slices.Contains(m.Facts, fact) {
		return false
	}
	m.Facts = append(m.Facts, fact)
	return true
}

// SelfNameFact is the canonical fact sentence recorded for a learned self name.
func SelfNameFact(name string) string {
	return "ผู้ใช้คนนี้คือ " + name
}

// NotesHeading opens the rendered notes document.
const NotesHeading = "# Memory notes"

// Notes renders the state as the markdown notes document that the indexer
// ingests. An empty state renders as an empty document so it is not indexed.
func (m MemoryState) Notes() string {
	if m.SelfName == "" && len(m.Facts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(NotesHeading)
	b.WriteString("\n\n")
	if m.SelfName != "" {
		b.WriteString(SelfNameFact(m.SelfName))
		b.WriteString("\n\n")
	}
	for _, f := range m.Facts {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	return b.String()
}

// LoadStatus reports how a memory load resolved.
type LoadStatus string

// Load outcomes. Only LoadStatusLoaded carries persisted data.
const (
	LoadStatusLoaded           LoadStatus = "loaded"
	LoadStatusDefaultedMissing LoadStatus = "defaulted_missing"
	LoadStatusDefaultedCorrupt LoadStatus = "defaulted_corrupt"
)

// Degraded returns true if the load fell back to defaults because of bad data.
func (s LoadStatus) Degraded() bool {
	return s == LoadStatusDefaultedCorrupt
}

// MemorySummary is the short view of memory reported by health checks.
type MemorySummary struct {
	SelfName string `json:"selfName"`
	Facts    int    `json:"facts"`
}

// Summary returns the health view of the state.
func (m MemoryState) Summary() MemorySummary {
	return MemorySummary{SelfName: m.SelfName, Facts: len(m.Facts)}
}
