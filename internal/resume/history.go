package resume

// edit is one recorded mutation. Applying it moves the document to after;
// inverting it restores before.
type edit struct {
	label  string
	before Document
	after  Document
}

// history is a bounded undo/redo stack of edits.
type history struct {
	limit  int
	done   []edit
	undone []edit
}

func newHistory(limit int) *history {
	if limit < 0 {
		limit = 0
	}
	return &history{limit: limit}
}

func (h *history) record(e edit) {
	if h.limit == 0 {
		return
	}
	h.done = append(h.done, e)
	if len(h.done) > h.limit {
		h.done = append([]edit(nil), h.done[len(h.done)-h.limit:]...)
	}
	h.undone = nil
}

func (h *history) undo() (edit, bool) {
	if len(h.done) == 0 {
		return edit{}, false
	}
	e := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, e)
	return e, true
}

func (h *history) redo() (edit, bool) {
	if len(h.undone) == 0 {
		return edit{}, false
	}
	e := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, e)
	return e, true
}

func (h *history) clear() {
	h.done = nil
	h.undone = nil
}

// HistoryState reports what undo and redo would do.
type HistoryState struct {
	CanUndo   bool   `json:"canUndo"`
	CanRedo   bool   `json:"canRedo"`
	UndoLabel string `json:"undoLabel,omitempty"`
	RedoLabel string `json:"redoLabel,omitempty"`
}

func (h *history) state() HistoryState {
	st := HistoryState{CanUndo: len(h.done) > 0, CanRedo: len(h.undone) > 0}
	if st.CanUndo {
		st.UndoLabel = h.done[len(h.done)-1].label
	}
	if st.CanRedo {
		st.RedoLabel = h.undone[len(h.undone)-1].label
	}
	return st
}
