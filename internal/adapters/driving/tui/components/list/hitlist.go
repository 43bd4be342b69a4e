// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/kbchat/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/kbchat/internal/core/domain"
)

// HitList displays a query's ranking in a navigable list.
type HitList struct {
	hits     []domain.DebugHit
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates a new hit list component.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the hit list.
func (r *HitList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation. Only arrow keys move the selection so the
// list can share the screen with a text input.
func (r *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the hit list.
func (r *HitList) View() string {
	if len(r.hits) == 0 {
		return r.styles.Muted.Render("No hits")
	}

	lines := make([]string, 0, len(r.hits)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Hits (%d)", len(r.hits))), "")

	// Each hit takes two lines
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(r.hits))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderHit(i, &r.hits[i]))
	}

	return strings.Join(lines, "\n")
}

// renderHit formats one hit with its scores and preview.
func (r *HitList) renderHit(index int, hit *domain.DebugHit) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	head := fmt.Sprintf("%s[%d] %s", indicator, hit.Rank, hit.Source)
	scores := fmt.Sprintf("overlap=%d tfidf=%.4f score=%.4f", hit.Overlap, hit.TFIDF, hit.Score)

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(head + "  " + scores)
	} else {
		titleLine = r.styles.Normal.Render(head+"  ") + r.styles.Muted.Render(scores)
	}

	preview := []rune(hit.Preview)
	maxPreviewLen := max(r.width-6, 20)
	if len(preview) > maxPreviewLen {
		preview = append(preview[:maxPreviewLen-3], []rune("...")...)
	}

	return titleLine + "\n" + r.styles.Muted.Render("    "+string(preview))
}

// SetHits replaces the ranking and resets the selection.
func (r *HitList) SetHits(hits []domain.DebugHit) {
	r.hits = hits
	r.selected = 0
}

// Hits returns the current ranking.
func (r *HitList) Hits() []domain.DebugHit {
	return r.hits
}

// Selected returns the index of the selected hit.
func (r *HitList) Selected() int {
	return r.selected
}

// SelectedHit returns the currently selected hit, or nil if none.
func (r *HitList) SelectedHit() *domain.DebugHit {
	if r.selected < 0 || r.selected >= len(r.hits) {
		return nil
	}
	return &r.hits[r.selected]
}

// MoveUp moves selection up.
func (r *HitList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *HitList) MoveDown() {
	if r.selected < len(r.hits)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *HitList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of hits.
func (r *HitList) Count() int {
	return len(r.hits)
}
