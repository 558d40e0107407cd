package adql

import (
	"fmt"
	"strconv"
)

// SelectItem is one entry of a SELECT clause: an operand with an optional
// alias, or the wildcard (*).
//
// Traversal order: the single operand (the wildcard has no children).
type SelectItem struct {
	base
	operand        Operand // nil for the wildcard
	alias          string
	aliasDelimited bool
}

// NewSelectItem builds a SELECT entry; alias may be empty.
func NewSelectItem(op Operand, alias string) (*SelectItem, error) {
	if err := requireOperand(op, "a SELECT item", "operand"); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	return &SelectItem{operand: op, alias: alias}, nil
}

// NewWildcardItem builds the wildcard entry (*).
func NewWildcardItem() *SelectItem { return &SelectItem{} }

// Operand returns the selected operand, or nil for the wildcard.
func (s *SelectItem) Operand() Operand { return s.operand }

// Wildcard reports whether the item is the wildcard (*).
func (s *SelectItem) Wildcard() bool { return s.operand == nil }

// Alias returns the output alias, or "".
func (s *SelectItem) Alias() string { return s.alias }

// SetAlias changes the output alias; delimited records whether the alias is
// a quoted (case-sensitive) identifier.
func (s *SelectItem) SetAlias(alias string, delimited bool) {
	s.alias = alias
	s.aliasDelimited = delimited
	s.invalidatePosition()
}

// AliasDelimited reports whether the alias is a quoted identifier.
func (s *SelectItem) AliasDelimited() bool { return s.aliasDelimited }

// OutputName returns the column label this item contributes to the query's
// output: the alias when present, the column name for a bare column
// reference, and "" for an unnamed expression. The wildcard answers "*".
func (s *SelectItem) OutputName() string {
	if s.alias != "" {
		return s.alias
	}
	if s.operand == nil {
		return "*"
	}
	if c, ok := s.operand.(*Column); ok {
		return c.ColumnName()
	}
	return ""
}

func (s *SelectItem) Name() string {
	if s.operand == nil {
		return "*"
	}
	if s.alias != "" {
		return s.alias
	}
	return s.operand.Name()
}

func (s *SelectItem) Category() Category { return CategoryClause }

func (s *SelectItem) Copy() (Node, error) {
	if s.operand == nil {
		clone := NewWildcardItem()
		clone.SetPosition(s.Position().Copy())
		return clone, nil
	}
	op, err := copyAs(s.operand, "operand of a SELECT item")
	if err != nil {
		return nil, err
	}
	clone, err := NewSelectItem(op, s.alias)
	if err != nil {
		return nil, copyFailed("SELECT item", err)
	}
	clone.aliasDelimited = s.aliasDelimited
	clone.SetPosition(s.Position().Copy())
	return clone, nil
}

func (s *SelectItem) ToADQL() string {
	if s.operand == nil {
		return "*"
	}
	out := s.operand.ToADQL()
	if s.alias != "" {
		out += " AS " + renderIdent(s.alias, s.aliasDelimited)
	}
	return out
}

func (s *SelectItem) Iterator() *Iterator { return newIterator(s) }

func (s *SelectItem) childSlots() []slot {
	if s.operand == nil {
		return nil
	}
	return []slot{
		operandSlot("a SELECT item", "operand", func() Node { return s.operand },
			func(op Operand) (Node, error) { return slotSet(&s.operand, op, nil) }),
	}
}

// SelectClause is the ordered list of SELECT items, with the DISTINCT flag
// and the TOP row limit.
//
// Traversal order: the items in insertion order; every slot is removable.
type SelectClause struct {
	nodeList[*SelectItem]
	distinct bool
	limit    int // TOP n; -1 = no limit
}

// NewSelectClause builds an empty SELECT clause.
func NewSelectClause() *SelectClause {
	return &SelectClause{
		nodeList: nodeList[*SelectItem]{label: "SELECT", elemCat: CategoryClause},
		limit:    -1,
	}
}

// Distinct reports whether the clause selects DISTINCT rows.
func (s *SelectClause) Distinct() bool { return s.distinct }

// SetDistinct toggles DISTINCT.
func (s *SelectClause) SetDistinct(v bool) {
	s.distinct = v
	s.invalidatePosition()
}

// Limit returns the TOP row limit, or -1 when unlimited.
func (s *SelectClause) Limit() int { return s.limit }

// SetLimit changes the TOP row limit; any negative value removes it.
func (s *SelectClause) SetLimit(n int) {
	if n < 0 {
		n = -1
	}
	s.limit = n
	s.invalidatePosition()
}

func (s *SelectClause) Category() Category { return CategoryContainer }

func (s *SelectClause) Copy() (Node, error) {
	elems, err := s.copyElems()
	if err != nil {
		return nil, err
	}
	clone := NewSelectClause()
	clone.distinct = s.distinct
	clone.limit = s.limit
	for _, el := range elems {
		if err := clone.Append(el); err != nil {
			return nil, copyFailed("SELECT", err)
		}
	}
	clone.SetPosition(s.Position().Copy())
	return clone, nil
}

func (s *SelectClause) ToADQL() string {
	out := "SELECT"
	if s.distinct {
		out += " DISTINCT"
	}
	if s.limit >= 0 {
		out += " TOP " + strconv.Itoa(s.limit)
	}
	return out + " " + s.joinADQL(", ")
}

func (s *SelectClause) Iterator() *Iterator { return newIterator(s) }
func (s *SelectClause) childSlots() []slot  { return s.elemSlots(true) }

// FromContent is anything that can appear in a FROM clause: a table, a
// sub-query with an alias, or a join of two FROM contents.
type FromContent interface {
	Node

	fromContent() // Marker method - seals FROM content to this package
}

// Table is a FROM entry: a named table or an aliased sub-query.
//
// Traversal order: the sub-query when present; a named table has no
// children.
type Table struct {
	base
	name           string
	delimited      bool
	alias          string
	aliasDelimited bool
	subquery       *Query
}

// NewTable builds a named table reference.
func NewTable(name string) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: the name of a table", ErrNullArgument)
	}
	return &Table{name: name}, nil
}

// NewSubQueryTable builds an aliased sub-query FROM entry. The alias is
// required: a nested query is unnameable without it.
func NewSubQueryTable(sub *Query, alias string) (*Table, error) {
	if sub == nil {
		return nil, fmt.Errorf("%w: the sub-query of a FROM entry", ErrNullArgument)
	}
	if alias == "" {
		return nil, fmt.Errorf("%w: the alias of a sub-query FROM entry", ErrNullArgument)
	}
	if err := adopt(sub); err != nil {
		return nil, err
	}
	return &Table{alias: alias, subquery: sub}, nil
}

// TableName returns the table name, or "" for a sub-query entry.
func (t *Table) TableName() string { return t.name }

// Delimited reports whether the table name was quoted in the source.
func (t *Table) Delimited() bool { return t.delimited }

// SetDelimited records whether the table name is a delimited identifier.
func (t *Table) SetDelimited(v bool) { t.delimited = v }

// Alias returns the table alias, or "".
func (t *Table) Alias() string { return t.alias }

// AliasDelimited reports whether the alias was quoted in the source.
func (t *Table) AliasDelimited() bool { return t.aliasDelimited }

// SetAlias changes the alias; delimited records whether it is quoted.
func (t *Table) SetAlias(alias string, delimited bool) error {
	if alias == "" && t.subquery != nil {
		return fmt.Errorf("%w: the alias of a sub-query FROM entry", ErrNullArgument)
	}
	t.alias = alias
	t.aliasDelimited = delimited
	t.invalidatePosition()
	return nil
}

// SubQuery returns the nested query, or nil for a named table.
func (t *Table) SubQuery() *Query { return t.subquery }

func (t *Table) Name() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

func (t *Table) Category() Category { return CategoryClause }
func (t *Table) fromContent()       {}

func (t *Table) Copy() (Node, error) {
	if t.subquery != nil {
		sub, err := copyAs(t.subquery, "sub-query of a FROM entry")
		if err != nil {
			return nil, err
		}
		clone, err := NewSubQueryTable(sub, t.alias)
		if err != nil {
			return nil, copyFailed("FROM entry", err)
		}
		clone.aliasDelimited = t.aliasDelimited
		clone.SetPosition(t.Position().Copy())
		return clone, nil
	}
	clone := &Table{
		name:           t.name,
		delimited:      t.delimited,
		alias:          t.alias,
		aliasDelimited: t.aliasDelimited,
	}
	clone.SetPosition(t.Position().Copy())
	return clone, nil
}

func (t *Table) ToADQL() string {
	var out string
	if t.subquery != nil {
		out = "(" + t.subquery.ToADQL() + ")"
	} else {
		out = renderIdent(t.name, t.delimited)
	}
	if t.alias != "" {
		out += " AS " + renderIdent(t.alias, t.aliasDelimited)
	}
	return out
}

func (t *Table) Iterator() *Iterator { return newIterator(t) }

func (t *Table) childSlots() []slot {
	if t.subquery == nil {
		return nil
	}
	return []slot{{
		name: "sub-query",
		get:  func() Node { return t.subquery },
		set: func(node Node) (Node, error) {
			q, ok := node.(*Query)
			if !ok {
				return nil, categoryErr("a FROM entry", "sub-query", CategoryQuery, node)
			}
			if err := adopt(q); err != nil {
				return nil, err
			}
			old := t.subquery
			t.subquery = q
			return old, nil
		},
	}}
}

// JoinType enumerates the supported join flavors.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
	JoinCross
)

func (t JoinType) String() string {
	switch t {
	case JoinLeft:
		return "LEFT OUTER JOIN"
	case JoinRight:
		return "RIGHT OUTER JOIN"
	case JoinFull:
		return "FULL OUTER JOIN"
	case JoinCross:
		return "CROSS JOIN"
	default:
		return "INNER JOIN"
	}
}

// Join combines two FROM contents. The join condition is either NATURAL or
// an ON constraint list (or absent, for CROSS joins).
//
// Traversal order: left content, right content, then the ON condition when
// present. Left and right are required; the condition is removable.
type Join struct {
	base
	typ     JoinType
	left    FromContent
	right   FromContent
	natural bool
	on      *ConstraintList
}

// NewJoin builds a join of two FROM contents.
func NewJoin(left FromContent, typ JoinType, right FromContent) (*Join, error) {
	if left == nil {
		return nil, fmt.Errorf("%w: the left side of a join", ErrNullArgument)
	}
	if right == nil {
		return nil, fmt.Errorf("%w: the right side of a join", ErrNullArgument)
	}
	if err := adopt(left); err != nil {
		return nil, err
	}
	if err := adopt(right); err != nil {
		release(left)
		return nil, err
	}
	return &Join{typ: typ, left: left, right: right}, nil
}

// Type returns the join flavor.
func (j *Join) Type() JoinType { return j.typ }

// Left returns the left FROM content.
func (j *Join) Left() FromContent { return j.left }

// Right returns the right FROM content.
func (j *Join) Right() FromContent { return j.right }

// Natural reports whether the join is NATURAL.
func (j *Join) Natural() bool { return j.natural }

// SetNatural toggles NATURAL; a natural join drops any ON condition.
func (j *Join) SetNatural(v bool) {
	j.natural = v
	if v && j.on != nil {
		release(j.on)
		j.on = nil
	}
	j.invalidatePosition()
}

// On returns the ON condition, or nil.
func (j *Join) On() *ConstraintList { return j.on }

// SetOn replaces the ON condition (nil clears it) and returns the displaced
// one. Setting a condition drops NATURAL.
func (j *Join) SetOn(on *ConstraintList) (*ConstraintList, error) {
	if on != nil {
		if err := adopt(on); err != nil {
			return nil, err
		}
		j.natural = false
	}
	old := j.on
	j.on = on
	j.invalidatePosition()
	if old != nil {
		release(old)
	}
	return old, nil
}

func (j *Join) Name() string       { return j.typ.String() }
func (j *Join) Category() Category { return CategoryClause }
func (j *Join) fromContent()       {}

func (j *Join) Copy() (Node, error) {
	left, err := copyAs(j.left, "left side of a join")
	if err != nil {
		return nil, err
	}
	right, err := copyAs(j.right, "right side of a join")
	if err != nil {
		return nil, err
	}
	clone, err := NewJoin(left, j.typ, right)
	if err != nil {
		return nil, copyFailed("join", err)
	}
	clone.natural = j.natural
	if j.on != nil {
		on, err := copyAs(j.on, "ON condition of a join")
		if err != nil {
			return nil, err
		}
		if _, err := clone.SetOn(on); err != nil {
			return nil, copyFailed("join", err)
		}
	}
	clone.SetPosition(j.Position().Copy())
	return clone, nil
}

func (j *Join) ToADQL() string {
	kw := j.typ.String()
	if j.natural {
		kw = "NATURAL " + kw
	}
	out := j.left.ToADQL() + " " + kw + " " + j.right.ToADQL()
	if j.on != nil {
		out += " ON " + j.on.ToADQL()
	}
	return out
}

func (j *Join) Iterator() *Iterator { return newIterator(j) }

func (j *Join) childSlots() []slot {
	fromSlot := func(name string, side *FromContent) slot {
		return slot{
			name: name,
			get:  func() Node { return *side },
			set: func(node Node) (Node, error) {
				fc, ok := node.(FromContent)
				if !ok {
					return nil, categoryErr("a join", name, CategoryClause, node)
				}
				if err := adopt(fc); err != nil {
					return nil, err
				}
				old := *side
				*side = fc
				return old, nil
			},
		}
	}
	slots := []slot{fromSlot("left side", &j.left), fromSlot("right side", &j.right)}
	if j.on != nil {
		slots = append(slots, slot{
			name: "ON condition",
			get:  func() Node { return j.on },
			set: func(node Node) (Node, error) {
				on, ok := node.(*ConstraintList)
				if !ok {
					return nil, categoryErr("a join", "ON condition", CategoryContainer, node)
				}
				if err := adopt(on); err != nil {
					return nil, err
				}
				old := j.on
				j.on = on
				j.natural = false
				return old, nil
			},
			remove: func() (Node, error) {
				old := j.on
				j.on = nil
				return old, nil
			},
		})
	}
	return slots
}

// OrderItem is one entry of an ORDER BY clause.
//
// Traversal order: the single sort operand; the slot is required.
type OrderItem struct {
	base
	operand    Operand
	descending bool
}

// NewOrderItem builds a sort entry.
func NewOrderItem(op Operand, descending bool) (*OrderItem, error) {
	if err := requireOperand(op, "an ORDER BY item", "operand"); err != nil {
		return nil, err
	}
	if err := adopt(op); err != nil {
		return nil, err
	}
	return &OrderItem{operand: op, descending: descending}, nil
}

// Operand returns the sort operand.
func (o *OrderItem) Operand() Operand { return o.operand }

// Descending reports whether the entry sorts in descending order.
func (o *OrderItem) Descending() bool { return o.descending }

// SetDescending changes the sort direction.
func (o *OrderItem) SetDescending(v bool) {
	o.descending = v
	o.invalidatePosition()
}

func (o *OrderItem) Name() string       { return o.operand.Name() }
func (o *OrderItem) Category() Category { return CategoryClause }

func (o *OrderItem) Copy() (Node, error) {
	op, err := copyAs(o.operand, "operand of an ORDER BY item")
	if err != nil {
		return nil, err
	}
	clone, err := NewOrderItem(op, o.descending)
	if err != nil {
		return nil, copyFailed("ORDER BY item", err)
	}
	clone.SetPosition(o.Position().Copy())
	return clone, nil
}

func (o *OrderItem) ToADQL() string {
	if o.descending {
		return o.operand.ToADQL() + " DESC"
	}
	return o.operand.ToADQL()
}

func (o *OrderItem) Iterator() *Iterator { return newIterator(o) }

func (o *OrderItem) childSlots() []slot {
	return []slot{
		operandSlot("an ORDER BY item", "operand", func() Node { return o.operand },
			func(op Operand) (Node, error) { return slotSet(&o.operand, op, nil) }),
	}
}

// OrderByClause is the ordered list of sort entries.
//
// Traversal order: the items in insertion order; every slot is removable.
type OrderByClause struct {
	nodeList[*OrderItem]
}

// NewOrderByClause builds an empty ORDER BY clause.
func NewOrderByClause() *OrderByClause {
	return &OrderByClause{nodeList[*OrderItem]{label: "ORDER BY", elemCat: CategoryClause}}
}

func (o *OrderByClause) Category() Category { return CategoryContainer }

func (o *OrderByClause) Copy() (Node, error) {
	elems, err := o.copyElems()
	if err != nil {
		return nil, err
	}
	clone := NewOrderByClause()
	for _, el := range elems {
		if err := clone.Append(el); err != nil {
			return nil, copyFailed("ORDER BY", err)
		}
	}
	clone.SetPosition(o.Position().Copy())
	return clone, nil
}

func (o *OrderByClause) ToADQL() string      { return o.joinADQL(", ") }
func (o *OrderByClause) Iterator() *Iterator { return newIterator(o) }
func (o *OrderByClause) childSlots() []slot  { return o.elemSlots(true) }

// GroupByClause is the ordered list of grouping operands.
//
// Traversal order: the operands in insertion order; every slot is removable.
type GroupByClause struct {
	nodeList[Operand]
}

// NewGroupByClause builds an empty GROUP BY clause.
func NewGroupByClause() *GroupByClause {
	return &GroupByClause{nodeList[Operand]{label: "GROUP BY", elemCat: CategoryOperand}}
}

func (g *GroupByClause) Category() Category { return CategoryContainer }

func (g *GroupByClause) Copy() (Node, error) {
	elems, err := g.copyElems()
	if err != nil {
		return nil, err
	}
	clone := NewGroupByClause()
	for _, el := range elems {
		if err := clone.Append(el); err != nil {
			return nil, copyFailed("GROUP BY", err)
		}
	}
	clone.SetPosition(g.Position().Copy())
	return clone, nil
}

func (g *GroupByClause) ToADQL() string      { return g.joinADQL(", ") }
func (g *GroupByClause) Iterator() *Iterator { return newIterator(g) }
func (g *GroupByClause) childSlots() []slot  { return g.elemSlots(true) }

// Query is a full SELECT query, usable at the top level or nested inside IN,
// EXISTS, a FROM entry or a WITH item.
//
// Traversal order: WITH, SELECT, FROM, WHERE, GROUP BY, HAVING, ORDER BY -
// skipping absent clauses. SELECT and FROM are required; every other clause
// slot is removable.
type Query struct {
	base
	with    *WithClause
	sel     *SelectClause
	from    FromContent
	where   *ConstraintList
	groupBy *GroupByClause
	having  *ConstraintList
	orderBy *OrderByClause
	offset  int // -1 = no offset
}

// NewQuery builds a query from its two required clauses.
func NewQuery(sel *SelectClause, from FromContent) (*Query, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: the SELECT clause of a query", ErrNullArgument)
	}
	if from == nil {
		return nil, fmt.Errorf("%w: the FROM clause of a query", ErrNullArgument)
	}
	if err := adopt(sel); err != nil {
		return nil, err
	}
	if err := adopt(from); err != nil {
		release(sel)
		return nil, err
	}
	return &Query{sel: sel, from: from, offset: -1}, nil
}

// With returns the WITH clause, or nil.
func (q *Query) With() *WithClause { return q.with }

// Select returns the SELECT clause.
func (q *Query) Select() *SelectClause { return q.sel }

// From returns the FROM content.
func (q *Query) From() FromContent { return q.from }

// Where returns the WHERE constraints, or nil.
func (q *Query) Where() *ConstraintList { return q.where }

// GroupBy returns the GROUP BY clause, or nil.
func (q *Query) GroupBy() *GroupByClause { return q.groupBy }

// Having returns the HAVING constraints, or nil.
func (q *Query) Having() *ConstraintList { return q.having }

// OrderBy returns the ORDER BY clause, or nil.
func (q *Query) OrderBy() *OrderByClause { return q.orderBy }

// Offset returns the OFFSET row count, or -1 when absent.
func (q *Query) Offset() int { return q.offset }

// SetSelect replaces the SELECT clause and returns the displaced one.
func (q *Query) SetSelect(sel *SelectClause) (*SelectClause, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: the SELECT clause of a query", ErrNullArgument)
	}
	if err := adopt(sel); err != nil {
		return nil, err
	}
	old := q.sel
	q.sel = sel
	q.invalidatePosition()
	release(old)
	return old, nil
}

// SetFrom replaces the FROM content and returns the displaced one.
func (q *Query) SetFrom(from FromContent) (FromContent, error) {
	if from == nil {
		return nil, fmt.Errorf("%w: the FROM clause of a query", ErrNullArgument)
	}
	if err := adopt(from); err != nil {
		return nil, err
	}
	old := q.from
	q.from = from
	q.invalidatePosition()
	release(old)
	return old, nil
}

// SetWith replaces the WITH clause (nil clears it) and returns the displaced
// one.
func (q *Query) SetWith(w *WithClause) (*WithClause, error) {
	if w != nil {
		if err := adopt(w); err != nil {
			return nil, err
		}
	}
	old := q.with
	q.with = w
	q.invalidatePosition()
	if old != nil {
		release(old)
	}
	return old, nil
}

// SetWhere replaces the WHERE constraints (nil clears them) and returns the
// displaced list.
func (q *Query) SetWhere(w *ConstraintList) (*ConstraintList, error) {
	if w != nil {
		if err := adopt(w); err != nil {
			return nil, err
		}
	}
	old := q.where
	q.where = w
	q.invalidatePosition()
	if old != nil {
		release(old)
	}
	return old, nil
}

// SetGroupBy replaces the GROUP BY clause (nil clears it) and returns the
// displaced one.
func (q *Query) SetGroupBy(g *GroupByClause) (*GroupByClause, error) {
	if g != nil {
		if err := adopt(g); err != nil {
			return nil, err
		}
	}
	old := q.groupBy
	q.groupBy = g
	q.invalidatePosition()
	if old != nil {
		release(old)
	}
	return old, nil
}

// SetHaving replaces the HAVING constraints (nil clears them) and returns
// the displaced list.
func (q *Query) SetHaving(h *ConstraintList) (*ConstraintList, error) {
	if h != nil {
		if err := adopt(h); err != nil {
			return nil, err
		}
	}
	old := q.having
	q.having = h
	q.invalidatePosition()
	if old != nil {
		release(old)
	}
	return old, nil
}

// SetOrderBy replaces the ORDER BY clause (nil clears it) and returns the
// displaced one.
func (q *Query) SetOrderBy(o *OrderByClause) (*OrderByClause, error) {
	if o != nil {
		if err := adopt(o); err != nil {
			return nil, err
		}
	}
	old := q.orderBy
	q.orderBy = o
	q.invalidatePosition()
	if old != nil {
		release(old)
	}
	return old, nil
}

// SetOffset changes the OFFSET row count; any negative value removes it.
func (q *Query) SetOffset(n int) {
	if n < 0 {
		n = -1
	}
	q.offset = n
	q.invalidatePosition()
}

// OutputColumns returns the labels the query's SELECT clause contributes,
// in order: aliases, bare column names, "*" for the wildcard, "" for
// unnamed expressions. Recomputed on every call.
func (q *Query) OutputColumns() []string {
	out := make([]string, 0, q.sel.Len())
	for i := 0; i < q.sel.Len(); i++ {
		item, _ := q.sel.Get(i)
		out = append(out, item.OutputName())
	}
	return out
}

func (q *Query) Name() string       { return "QUERY" }
func (q *Query) Category() Category { return CategoryQuery }

func (q *Query) Copy() (Node, error) {
	sel, err := copyAs(q.sel, "SELECT clause of a query")
	if err != nil {
		return nil, err
	}
	from, err := copyAs(q.from, "FROM clause of a query")
	if err != nil {
		return nil, err
	}
	clone, err := NewQuery(sel, from)
	if err != nil {
		return nil, copyFailed("query", err)
	}
	clone.offset = q.offset
	if q.with != nil {
		w, err := copyAs(q.with, "WITH clause of a query")
		if err != nil {
			return nil, err
		}
		if _, err := clone.SetWith(w); err != nil {
			return nil, copyFailed("query", err)
		}
	}
	if q.where != nil {
		w, err := copyAs(q.where, "WHERE clause of a query")
		if err != nil {
			return nil, err
		}
		if _, err := clone.SetWhere(w); err != nil {
			return nil, copyFailed("query", err)
		}
	}
	if q.groupBy != nil {
		g, err := copyAs(q.groupBy, "GROUP BY clause of a query")
		if err != nil {
			return nil, err
		}
		if _, err := clone.SetGroupBy(g); err != nil {
			return nil, copyFailed("query", err)
		}
	}
	if q.having != nil {
		h, err := copyAs(q.having, "HAVING clause of a query")
		if err != nil {
			return nil, err
		}
		if _, err := clone.SetHaving(h); err != nil {
			return nil, copyFailed("query", err)
		}
	}
	if q.orderBy != nil {
		o, err := copyAs(q.orderBy, "ORDER BY clause of a query")
		if err != nil {
			return nil, err
		}
		if _, err := clone.SetOrderBy(o); err != nil {
			return nil, copyFailed("query", err)
		}
	}
	clone.SetPosition(q.Position().Copy())
	return clone, nil
}

func (q *Query) ToADQL() string {
	out := ""
	if q.with != nil && q.with.Len() > 0 {
		out = "WITH " + q.with.ToADQL() + " "
	}
	out += q.sel.ToADQL() + " FROM " + q.from.ToADQL()
	if q.where != nil && q.where.Len() > 0 {
		out += " WHERE " + q.where.ToADQL()
	}
	if q.groupBy != nil && q.groupBy.Len() > 0 {
		out += " GROUP BY " + q.groupBy.ToADQL()
	}
	if q.having != nil && q.having.Len() > 0 {
		out += " HAVING " + q.having.ToADQL()
	}
	if q.orderBy != nil && q.orderBy.Len() > 0 {
		out += " ORDER BY " + q.orderBy.ToADQL()
	}
	if q.offset >= 0 {
		out += " OFFSET " + strconv.Itoa(q.offset)
	}
	return out
}

func (q *Query) Iterator() *Iterator { return newIterator(q) }

func (q *Query) childSlots() []slot {
	var slots []slot
	if q.with != nil {
		slots = append(slots, slot{
			name: "WITH clause",
			get:  func() Node { return q.with },
			set: func(node Node) (Node, error) {
				w, ok := node.(*WithClause)
				if !ok {
					return nil, categoryErr("a query", "WITH clause", CategoryContainer, node)
				}
				if err := adopt(w); err != nil {
					return nil, err
				}
				old := q.with
				q.with = w
				return old, nil
			},
			remove: func() (Node, error) {
				old := q.with
				q.with = nil
				return old, nil
			},
		})
	}
	slots = append(slots, slot{
		name: "SELECT clause",
		get:  func() Node { return q.sel },
		set: func(node Node) (Node, error) {
			sel, ok := node.(*SelectClause)
			if !ok {
				return nil, categoryErr("a query", "SELECT clause", CategoryContainer, node)
			}
			if err := adopt(sel); err != nil {
				return nil, err
			}
			old := q.sel
			q.sel = sel
			return old, nil
		},
	}, slot{
		name: "FROM clause",
		get:  func() Node { return q.from },
		set: func(node Node) (Node, error) {
			from, ok := node.(FromContent)
			if !ok {
				return nil, categoryErr("a query", "FROM clause", CategoryClause, node)
			}
			if err := adopt(from); err != nil {
				return nil, err
			}
			old := q.from
			q.from = from
			return old, nil
		},
	})
	constraintSlot := func(name string, field **ConstraintList) slot {
		return slot{
			name: name,
			get:  func() Node { return *field },
			set: func(node Node) (Node, error) {
				cl, ok := node.(*ConstraintList)
				if !ok {
					return nil, categoryErr("a query", name, CategoryContainer, node)
				}
				if err := adopt(cl); err != nil {
					return nil, err
				}
				old := *field
				*field = cl
				return old, nil
			},
			remove: func() (Node, error) {
				old := *field
				*field = nil
				return old, nil
			},
		}
	}
	if q.where != nil {
		slots = append(slots, constraintSlot("WHERE clause", &q.where))
	}
	if q.groupBy != nil {
		slots = append(slots, slot{
			name: "GROUP BY clause",
			get:  func() Node { return q.groupBy },
			set: func(node Node) (Node, error) {
				g, ok := node.(*GroupByClause)
				if !ok {
					return nil, categoryErr("a query", "GROUP BY clause", CategoryContainer, node)
				}
				if err := adopt(g); err != nil {
					return nil, err
				}
				old := q.groupBy
				q.groupBy = g
				return old, nil
			},
			remove: func() (Node, error) {
				old := q.groupBy
				q.groupBy = nil
				return old, nil
			},
		})
	}
	if q.having != nil {
		slots = append(slots, constraintSlot("HAVING clause", &q.having))
	}
	if q.orderBy != nil {
		slots = append(slots, slot{
			name: "ORDER BY clause",
			get:  func() Node { return q.orderBy },
			set: func(node Node) (Node, error) {
				o, ok := node.(*OrderByClause)
				if !ok {
					return nil, categoryErr("a query", "ORDER BY clause", CategoryContainer, node)
				}
				if err := adopt(o); err != nil {
					return nil, err
				}
				old := q.orderBy
				q.orderBy = o
				return old, nil
			},
			remove: func() (Node, error) {
				old := q.orderBy
				q.orderBy = nil
				return old, nil
			},
		})
	}
	return slots
}
