package dashboard

import (
	"html/template"
	"sync"
	"time"

	"github.com/angeloszaimis/feed-dashboard/internal/indicator"
)

const InitialLoadingText = "Loading..."

// Page is the mutable state behind the dashboard markup.
type Page struct {
	mutex          sync.RWMutex
	loadingText    string
	loadingVisible bool
	tableBody      template.HTML
	countLabel     string
	updatedAt      time.Time

	indicator *indicator.State
	refresh   time.Duration
}

// Snapshot is a consistent copy of the page state.
type Snapshot struct {
	LoadingText    string        `json:"loading_text"`
	LoadingVisible bool          `json:"loading_visible"`
	TableBody      template.HTML `json:"table_body"`
	CountLabel     string        `json:"count_label"`
	UpdatedAt      time.Time     `json:"updated_at,omitempty"`
	Healthy        bool          `json:"healthy"`
	StatusClass    string        `json:"status_class"`
}

// NewPage returns a page showing the loading placeholder. refresh is the
// browser reload interval of the served HTML; zero disables reloading.
func NewPage(ind *indicator.State, refresh time.Duration) *Page {
	return &Page{
		loadingText:    InitialLoadingText,
		loadingVisible: true,
		indicator:      ind,
		refresh:        refresh,
	}
}

// SetLoading shows the placeholder with text.
func (p *Page) SetLoading(text string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.loadingText = text
	p.loadingVisible = true
}

// HideLoading hides the placeholder, keeping its text.
func (p *Page) HideLoading() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.loadingVisible = false
}

// ReplaceRows swaps the whole table body and the count label.
func (p *Page) ReplaceRows(body template.HTML, countLabel string, at time.Time) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.tableBody = body
	p.countLabel = countLabel
	p.updatedAt = at
}

func (p *Page) Snapshot() Snapshot {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return Snapshot{
		LoadingText:    p.loadingText,
		LoadingVisible: p.loadingVisible,
		TableBody:      p.tableBody,
		CountLabel:     p.countLabel,
		UpdatedAt:      p.updatedAt,
		Healthy:        p.indicator.Healthy(),
		StatusClass:    p.indicator.Class(),
	}
}
