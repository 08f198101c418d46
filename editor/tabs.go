package editor

import (
	"image"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lightplay/sprite"
)

// untitled is the display name of a tab that has never been saved.
const untitled = "Untitled"

// tab is one open document with its own history and view.
type tab struct {
	id        int
	stack     *sprite.LayerStack
	history   *sprite.History
	selection image.Rectangle
	floating  *FloatingPaste
	fileName  string
	dirty     bool
	hasImage  bool
	view      ViewState
}

// TabInfo describes an open tab for display.
type TabInfo struct {
	ID       int
	Name     string
	FileName string
	Dirty    bool
	HasImage bool
	Active   bool
	Width    int
	Height   int
}

// displayName strips the extension from a file name.
func displayName(fileName string) string {
	if fileName == "" {
		return untitled
	}
	base := filepath.Base(fileName)
	if ext := filepath.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

func (e *Editor) newTab() *tab {
	t := &tab{
		id:      e.nextTabID,
		stack:   sprite.NewLayerStack(e.opts.defaultWidth, e.opts.defaultHeight, sprite.DefaultColorDepth),
		history: sprite.NewHistory(e.opts.historyOpts...),
		view:    ViewState{Zoom: DefaultZoom},
	}
	e.nextTabID++
	return t
}

func (e *Editor) tabIndex(id int) int {
	return slices.IndexFunc(e.tabs, func(t *tab) bool { return t.id == id })
}

// activate makes t the live tab and notifies listeners.
func (e *Editor) activate(t *tab) {
	e.cur = t
	if e.opts.onTabChange != nil {
		e.opts.onTabChange(t.id)
	}
	if e.opts.onDirtyChange != nil {
		e.opts.onDirtyChange(t.dirty)
	}
	e.redraw()
}

// NewTab opens a blank tab and makes it active. It returns the tab id.
func (e *Editor) NewTab() int {
	if e.busy.Load() {
		return e.cur.id
	}
	t := e.newTab()
	e.tabs = append(e.tabs, t)
	e.activate(t)
	sprite.Logger().Info("editor: tab opened", "tab", t.id)
	return t.id
}

// SwitchTab makes tab id active. The outgoing tab keeps its selection and
// any floating paste until it is switched back to.
func (e *Editor) SwitchTab(id int) bool {
	if e.busy.Load() {
		return false
	}
	i := e.tabIndex(id)
	if i < 0 {
		return false
	}
	if e.tabs[i] == e.cur {
		return true
	}
	e.activate(e.tabs[i])
	return true
}

// CloseTab closes tab id. Closing the last tab opens a blank one, so the
// editor always has an active tab.
func (e *Editor) CloseTab(id int) bool {
	if e.busy.Load() {
		return false
	}
	i := e.tabIndex(id)
	if i < 0 {
		return false
	}
	if e.opts.onTabClose != nil {
		e.opts.onTabClose(id)
	}
	closing := e.tabs[i]
	e.tabs = slices.Delete(e.tabs, i, i+1)
	sprite.Logger().Info("editor: tab closed", "tab", id, "dirty", closing.dirty)

	switch {
	case len(e.tabs) == 0:
		t := e.newTab()
		e.tabs = []*tab{t}
		e.activate(t)
	case closing == e.cur:
		e.activate(e.tabs[min(i, len(e.tabs)-1)])
	}
	return true
}

// RenameTab changes the file name of tab id. Blank names are rejected.
func (e *Editor) RenameTab(id int, name string) bool {
	name = sprite.NormalizeName(name)
	i := e.tabIndex(id)
	if e.busy.Load() || i < 0 || name == "" {
		return false
	}
	e.tabs[i].fileName = name
	return true
}

// ReorderTab moves tab id to the position of tab targetID.
func (e *Editor) ReorderTab(id, targetID int) bool {
	from, to := e.tabIndex(id), e.tabIndex(targetID)
	if from < 0 || to < 0 || from == to {
		return false
	}
	t := e.tabs[from]
	e.tabs = slices.Delete(e.tabs, from, from+1)
	e.tabs = slices.Insert(e.tabs, to, t)
	return true
}

// Tabs describes the open tabs in display order.
func (e *Editor) Tabs() []TabInfo {
	infos := make([]TabInfo, len(e.tabs))
	for i, t := range e.tabs {
		infos[i] = TabInfo{
			ID:       t.id,
			Name:     displayName(t.fileName),
			FileName: t.fileName,
			Dirty:    t.dirty,
			HasImage: t.hasImage,
			Active:   t == e.cur,
			Width:    t.stack.Width(),
			Height:   t.stack.Height(),
		}
	}
	return infos
}

// ActiveTabID returns the id of the active tab.
func (e *Editor) ActiveTabID() int {
	return e.cur.id
}

// View returns the view state of the active tab.
func (e *Editor) View() ViewState {
	return e.cur.view
}

// SetView stores the view state of the active tab. A non-positive zoom
// is ignored.
func (e *Editor) SetView(v ViewState) {
	if v.Zoom <= 0 {
		v.Zoom = e.cur.view.Zoom
	}
	e.cur.view = v
}

// openInTab installs stack as a freshly opened document. The active tab is
// reused unless it already holds an image.
func (e *Editor) openInTab(stack *sprite.LayerStack, fileName string) int {
	e.CommitFloatingPaste()
	t := e.cur
	if t.hasImage {
		t = e.newTab()
		e.tabs = append(e.tabs, t)
	}
	t.stack = stack
	t.history = sprite.NewHistory(e.opts.historyOpts...)
	t.selection = image.Rectangle{}
	t.floating = nil
	t.fileName = fileName
	t.dirty = false
	t.hasImage = true
	t.view = ViewState{Zoom: DefaultZoom}
	e.activate(t)
	return t.id
}
