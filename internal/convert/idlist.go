package convert

import "container/list"

// IDList is an ordered list of unique identifiers supporting insertion right
// after an existing identifier in constant time.
type IDList struct {
	order *list.List
	index map[string]*list.Element
}

// NewIDList creates an empty list.
func NewIDList() *IDList {
	return &IDList{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

// Len returns the number of identifiers.
func (l *IDList) Len() int {
	return l.order.Len()
}

// Contains reports whether id is in the list.
func (l *IDList) Contains(id string) bool {
	_, ok := l.index[id]
	return ok
}

// Append adds id at the end. It reports false if id was already present.
func (l *IDList) Append(id string) bool {
	if l.Contains(id) {
		return false
	}
	l.index[id] = l.order.PushBack(id)
	return true
}

// InsertAfter adds id directly after the identifier after, or at the end
// when after is not in the list. It reports false if id was already present.
func (l *IDList) InsertAfter(id, after string) bool {
	if l.Contains(id) {
		return false
	}
	mark, ok := l.index[after]
	if !ok {
		return l.Append(id)
	}
	l.index[id] = l.order.InsertAfter(id, mark)
	return true
}

// InsertAfterFunc is like InsertAfter but also steps over the identifiers
// directly following after for which skip returns true, so id lands after
// that whole run.
func (l *IDList) InsertAfterFunc(id, after string, skip func(string) bool) bool {
	if l.Contains(id) {
		return false
	}
	mark, ok := l.index[after]
	if !ok {
		return l.Append(id)
	}
	for next := mark.Next(); next != nil && skip(next.Value.(string)); next = next.Next() {
		mark = next
	}
	l.index[id] = l.order.InsertAfter(id, mark)
	return true
}

// IDs returns the identifiers in order.
func (l *IDList) IDs() []string {
	ids := make([]string, 0, l.order.Len())
	for e := l.order.Front(); e != nil; e = e.Next() {
		ids = append(ids, e.Value.(string))
	}
	return ids
}
