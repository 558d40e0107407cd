package adql

import "fmt"

// WithItem names a sub-query so later clauses can reference it as a table.
// Explicit column labels, when given, override the sub-query's own output
// names positionally.
//
// Traversal order: the single sub-query; the slot is required.
type WithItem struct {
	base
	label        string
	delimited    bool
	query        *Query
	columnLabels []string
}

// NewWithItem builds a named sub-query entry.
func NewWithItem(label string, query *Query) (*WithItem, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: the label of a WITH item", ErrNullArgument)
	}
	if query == nil {
		return nil, fmt.Errorf("%w: the query of a WITH item", ErrNullArgument)
	}
	if err := adopt(query); err != nil {
		return nil, err
	}
	return &WithItem{label: label, query: query}, nil
}

// Label returns the name the item binds.
func (w *WithItem) Label() string { return w.label }

// SetLabel renames the item; delimited records whether the label is quoted.
func (w *WithItem) SetLabel(label string, delimited bool) error {
	if label == "" {
		return fmt.Errorf("%w: the label of a WITH item", ErrNullArgument)
	}
	w.label = label
	w.delimited = delimited
	w.invalidatePosition()
	return nil
}

// Delimited reports whether the label is a quoted identifier.
func (w *WithItem) Delimited() bool { return w.delimited }

// Query returns the named sub-query.
func (w *WithItem) Query() *Query { return w.query }

// SetColumnLabels replaces the explicit column labels; nil clears them.
func (w *WithItem) SetColumnLabels(labels []string) {
	if len(labels) == 0 {
		w.columnLabels = nil
	} else {
		w.columnLabels = append([]string(nil), labels...)
	}
	w.invalidatePosition()
}

// ColumnLabels returns the explicit column labels, or nil.
func (w *WithItem) ColumnLabels() []string {
	return append([]string(nil), w.columnLabels...)
}

// Columns returns the output column names the item exposes: the sub-query's
// output names, overlaid positionally with the explicit labels. The result
// is recomputed on every call, so it tracks later edits to the sub-query.
func (w *WithItem) Columns() []string {
	cols := w.query.OutputColumns()
	for i, label := range w.columnLabels {
		if i >= len(cols) {
			cols = append(cols, label)
			continue
		}
		cols[i] = label
	}
	return cols
}

func (w *WithItem) Name() string       { return w.label }
func (w *WithItem) Category() Category { return CategoryClause }

func (w *WithItem) Copy() (Node, error) {
	q, err := copyAs(w.query, "query of a WITH item")
	if err != nil {
		return nil, err
	}
	clone, err := NewWithItem(w.label, q)
	if err != nil {
		return nil, copyFailed("WITH item", err)
	}
	clone.delimited = w.delimited
	clone.columnLabels = append([]string(nil), w.columnLabels...)
	clone.SetPosition(w.Position().Copy())
	return clone, nil
}

func (w *WithItem) ToADQL() string {
	out := renderIdent(w.label, w.delimited)
	if len(w.columnLabels) > 0 {
		out += "("
		for i, label := range w.columnLabels {
			if i > 0 {
				out += ", "
			}
			out += label
		}
		out += ")"
	}
	return out + " AS (" + w.query.ToADQL() + ")"
}

func (w *WithItem) Iterator() *Iterator { return newIterator(w) }

func (w *WithItem) childSlots() []slot {
	return []slot{{
		name: "query",
		get:  func() Node { return w.query },
		set: func(node Node) (Node, error) {
			q, ok := node.(*Query)
			if !ok {
				return nil, categoryErr("a WITH item", "query", CategoryQuery, node)
			}
			if err := adopt(q); err != nil {
				return nil, err
			}
			old := w.query
			w.query = q
			return old, nil
		},
	}}
}

// WithClause is the ordered list of WITH items.
//
// Traversal order: the items in insertion order; every slot is removable.
type WithClause struct {
	nodeList[*WithItem]
}

// NewWithClause builds an empty WITH clause.
func NewWithClause() *WithClause {
	return &WithClause{nodeList[*WithItem]{label: "WITH", elemCat: CategoryClause}}
}

func (w *WithClause) Category() Category { return CategoryContainer }

func (w *WithClause) Copy() (Node, error) {
	elems, err := w.copyElems()
	if err != nil {
		return nil, err
	}
	clone := NewWithClause()
	for _, el := range elems {
		if err := clone.Append(el); err != nil {
			return nil, copyFailed("WITH", err)
		}
	}
	clone.SetPosition(w.Position().Copy())
	return clone, nil
}

func (w *WithClause) ToADQL() string      { return w.joinADQL(", ") }
func (w *WithClause) Iterator() *Iterator { return newIterator(w) }
func (w *WithClause) childSlots() []slot  { return w.elemSlots(true) }
