package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// entry is implemented by pointers to list section items.
type entry[T any] interface {
	*T
	itemID() *ItemID
	setCurrent(bool)
}

func (e *Experience) itemID() *ItemID { return &e.ID }
func (e *Education) itemID() *ItemID  { return &e.ID }
func (p *Project) itemID() *ItemID    { return &p.ID }

func (e *Experience) setCurrent(current bool) {
	e.Current = current
	if current {
		e.EndDate = ""
	}
}

func (e *Education) setCurrent(current bool) {
	e.Current = current
	if current {
		e.EndDate = ""
	}
}

func (p *Project) setCurrent(current bool) {
	p.Current = current
	if current {
		p.EndDate = ""
	}
}

func indexOf[T any, P entry[T]](items []T, id ItemID) int {
	for i := range items {
		if *P(&items[i]).itemID() == id {
			return i
		}
	}
	return -1
}

// appendEntry appends the decoded item, or a stub when raw is empty. The
// appended item always carries an id unique within items.
func appendEntry[T any, P entry[T]](items *[]T, raw json.RawMessage) (ItemID, error) {
	var item T
	if !isEmptyValue(raw) {
		if err := decodeValue(raw, P(&item)); err != nil {
			return "", err
		}
	}
	id := *P(&item).itemID()
	if id == "" || indexOf[T, P](*items, id) >= 0 {
		id = NewItemID()
		*P(&item).itemID() = id
	}
	*items = append(*items, item)
	return id, nil
}

// mergeEntry overlays the fields present in partial onto the item with id.
func mergeEntry[T any, P entry[T]](items []T, id ItemID, partial json.RawMessage) (bool, error) {
	i := indexOf[T, P](items, id)
	if i < 0 {
		return false, nil
	}
	updated := items[i]
	if err := decodeValue(partial, P(&updated)); err != nil {
		return false, err
	}
	*P(&updated).itemID() = id
	items[i] = updated
	return true, nil
}

func removeEntry[T any, P entry[T]](items *[]T, id ItemID) bool {
	i := indexOf[T, P](*items, id)
	if i < 0 {
		return false
	}
	out := make([]T, 0, len(*items)-1)
	out = append(out, (*items)[:i]...)
	out = append(out, (*items)[i+1:]...)
	*items = out
	return true
}

func setEntryCurrent[T any, P entry[T]](items []T, id ItemID, current bool) bool {
	i := indexOf[T, P](items, id)
	if i < 0 {
		return false
	}
	P(&items[i]).setCurrent(current)
	return true
}

func isEmptyValue(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeValue(raw json.RawMessage, dst any) error {
	if isEmptyValue(raw) {
		return fmt.Errorf("%w: value is required", ErrInvalidInput)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
