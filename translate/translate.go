package translate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skyquery/adql"
)

// Dialect translates ADQL trees into one concrete SQL dialect. The zero
// value translates nothing useful; build one with Postgres or SQLite, or
// fill the fields for a custom target.
//
// Dialect implements adql.Translator, so function nodes can delegate their
// parameter rendering back to it.
type Dialect struct {
	// Name identifies the dialect in error messages.
	Name string

	// FunctionNames renames built-in math functions. A kind with no entry
	// keeps its ADQL name.
	FunctionNames map[adql.MathFunctionKind]string

	// TypeNames renames CAST target datatypes. A kind with no entry keeps
	// its ADQL name; geometric kinds with no entry are unsupported.
	TypeNames map[adql.DatatypeKind]string

	// NativeILike reports whether the engine has ILIKE. Without it, the
	// case-insensitive match is lowered to LOWER(a) LIKE LOWER(b).
	NativeILike bool
}

// Translate renders a node in the dialect. It dispatches on the node kind
// and recurses through children; the first unsupported construct aborts the
// whole pass.
func (d *Dialect) Translate(n adql.Node) (string, error) {
	switch node := n.(type) {
	case *adql.Query:
		return d.translateQuery(node)
	case *adql.SelectClause:
		return d.translateSelect(node)
	case *adql.SelectItem:
		return d.translateSelectItem(node)
	case *adql.Table:
		return d.translateTable(node)
	case *adql.Join:
		return d.translateJoin(node)
	case *adql.WithClause:
		return translateSeq(d, node.Len(), node.Get, ", ")
	case *adql.WithItem:
		return d.translateWithItem(node)
	case *adql.GroupByClause:
		return translateSeq(d, node.Len(), node.Get, ", ")
	case *adql.OrderByClause:
		return translateSeq(d, node.Len(), node.Get, ", ")
	case *adql.OrderItem:
		return d.translateOrderItem(node)
	case *adql.ConstraintList:
		return d.translateConstraints(node)
	case *adql.Group:
		inner, err := d.translateConstraints(&node.ConstraintList)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *adql.Comparison:
		return d.translateComparison(node)
	case *adql.Between:
		return d.translateBetween(node)
	case *adql.In:
		return d.translateIn(node)
	case *adql.Exists:
		sub, err := d.Translate(node.SubQuery())
		if err != nil {
			return "", err
		}
		return "EXISTS(" + sub + ")", nil
	case *adql.IsNull:
		col, err := d.Translate(node.Column())
		if err != nil {
			return "", err
		}
		return col + " " + node.Name(), nil
	case *adql.Not:
		inner, err := d.Translate(node.Inner())
		if err != nil {
			return "", err
		}
		return "NOT " + inner, nil
	case *adql.Operation:
		return d.translateOperation(node)
	case *adql.Negation:
		inner, err := d.translateGrouped(node.Inner())
		if err != nil {
			return "", err
		}
		return "-" + inner, nil
	case *adql.Concatenation:
		return translateSeq(d, node.Len(), node.Get, " || ")
	case *adql.OperandList:
		inner, err := translateSeq(d, node.Len(), node.Get, ", ")
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *adql.MathFunction:
		return d.translateMath(node)
	case *adql.AggregateFunction:
		return d.translateAggregate(node)
	case *adql.Cast:
		return d.translateCast(node)
	case *adql.UserFunction:
		// Hand-off: the UDF composes its own shell around parameters it
		// sends back through this dialect.
		return node.Translate(d)
	case *adql.Column, *adql.NumericLiteral, *adql.StringLiteral:
		// Leaves keep their canonical form; delimited-identifier quoting is
		// double quotes in every supported target.
		return n.ToADQL(), nil
	case *adql.Datatype:
		return d.translateDatatype(node)
	default:
		return "", fmt.Errorf("%w: no %s rendering for %s node %q", ErrUnsupported, d.Name, n.Category(), n.Name())
	}
}

func (d *Dialect) translateQuery(q *adql.Query) (string, error) {
	var out strings.Builder
	if w := q.With(); w != nil && w.Len() > 0 {
		s, err := d.Translate(w)
		if err != nil {
			return "", err
		}
		out.WriteString("WITH " + s + " ")
	}
	sel, err := d.translateSelect(q.Select())
	if err != nil {
		return "", err
	}
	out.WriteString(sel)
	from, err := d.Translate(q.From())
	if err != nil {
		return "", err
	}
	out.WriteString(" FROM " + from)
	if w := q.Where(); w != nil && w.Len() > 0 {
		s, err := d.translateConstraints(w)
		if err != nil {
			return "", err
		}
		out.WriteString(" WHERE " + s)
	}
	if g := q.GroupBy(); g != nil && g.Len() > 0 {
		s, err := d.Translate(g)
		if err != nil {
			return "", err
		}
		out.WriteString(" GROUP BY " + s)
	}
	if h := q.Having(); h != nil && h.Len() > 0 {
		s, err := d.translateConstraints(h)
		if err != nil {
			return "", err
		}
		out.WriteString(" HAVING " + s)
	}
	if o := q.OrderBy(); o != nil && o.Len() > 0 {
		s, err := d.Translate(o)
		if err != nil {
			return "", err
		}
		out.WriteString(" ORDER BY " + s)
	}
	// ADQL's TOP becomes a trailing LIMIT in every supported target.
	if limit := q.Select().Limit(); limit >= 0 {
		out.WriteString(" LIMIT " + strconv.Itoa(limit))
	}
	if q.Offset() >= 0 {
		out.WriteString(" OFFSET " + strconv.Itoa(q.Offset()))
	}
	return out.String(), nil
}

func (d *Dialect) translateSelect(sel *adql.SelectClause) (string, error) {
	out := "SELECT"
	if sel.Distinct() {
		out += " DISTINCT"
	}
	items, err := translateSeq(d, sel.Len(), sel.Get, ", ")
	if err != nil {
		return "", err
	}
	return out + " " + items, nil
}

func (d *Dialect) translateSelectItem(item *adql.SelectItem) (string, error) {
	if item.Wildcard() {
		return "*", nil
	}
	s, err := d.Translate(item.Operand())
	if err != nil {
		return "", err
	}
	if item.Alias() != "" {
		s += " AS " + adql.RenderIdent(item.Alias(), item.AliasDelimited())
	}
	return s, nil
}

func (d *Dialect) translateTable(t *adql.Table) (string, error) {
	var out string
	if sub := t.SubQuery(); sub != nil {
		s, err := d.translateQuery(sub)
		if err != nil {
			return "", err
		}
		out = "(" + s + ")"
	} else {
		out = adql.RenderIdent(t.TableName(), t.Delimited())
	}
	if t.Alias() != "" {
		out += " AS " + adql.RenderIdent(t.Alias(), t.AliasDelimited())
	}
	return out, nil
}

func (d *Dialect) translateJoin(j *adql.Join) (string, error) {
	left, err := d.Translate(j.Left())
	if err != nil {
		return "", err
	}
	right, err := d.Translate(j.Right())
	if err != nil {
		return "", err
	}
	kw := j.Type().String()
	if j.Natural() {
		kw = "NATURAL " + kw
	}
	out := left + " " + kw + " " + right
	if on := j.On(); on != nil {
		s, err := d.translateConstraints(on)
		if err != nil {
			return "", err
		}
		out += " ON " + s
	}
	return out, nil
}

func (d *Dialect) translateWithItem(w *adql.WithItem) (string, error) {
	sub, err := d.translateQuery(w.Query())
	if err != nil {
		return "", err
	}
	out := adql.RenderIdent(w.Label(), w.Delimited())
	if labels := w.ColumnLabels(); len(labels) > 0 {
		out += "(" + strings.Join(labels, ", ") + ")"
	}
	return out + " AS (" + sub + ")", nil
}

func (d *Dialect) translateOrderItem(o *adql.OrderItem) (string, error) {
	s, err := d.Translate(o.Operand())
	if err != nil {
		return "", err
	}
	if o.Descending() {
		s += " DESC"
	}
	return s, nil
}

func (d *Dialect) translateConstraints(l *adql.ConstraintList) (string, error) {
	var out strings.Builder
	for i := 0; i < l.Len(); i++ {
		p, err := l.Get(i)
		if err != nil {
			return "", err
		}
		s, err := d.Translate(p)
		if err != nil {
			return "", err
		}
		if i > 0 {
			conn, err := l.Connector(i)
			if err != nil {
				return "", err
			}
			out.WriteString(" " + conn.String() + " ")
		}
		out.WriteString(s)
	}
	return out.String(), nil
}

func (d *Dialect) translateComparison(c *adql.Comparison) (string, error) {
	left, err := d.Translate(c.Left())
	if err != nil {
		return "", err
	}
	right, err := d.Translate(c.Right())
	if err != nil {
		return "", err
	}
	op := c.Operator()
	if !d.NativeILike {
		switch op {
		case adql.OpILike:
			return "LOWER(" + left + ") LIKE LOWER(" + right + ")", nil
		case adql.OpNotILike:
			return "LOWER(" + left + ") NOT LIKE LOWER(" + right + ")", nil
		}
	}
	return left + " " + op.String() + " " + right, nil
}

func (d *Dialect) translateBetween(b *adql.Between) (string, error) {
	left, err := d.Translate(b.Left())
	if err != nil {
		return "", err
	}
	min, err := d.Translate(b.Min())
	if err != nil {
		return "", err
	}
	max, err := d.Translate(b.Max())
	if err != nil {
		return "", err
	}
	return left + " " + b.Name() + " " + min + " AND " + max, nil
}

func (d *Dialect) translateIn(n *adql.In) (string, error) {
	left, err := d.Translate(n.Left())
	if err != nil {
		return "", err
	}
	var rhs string
	if sub := n.SubQuery(); sub != nil {
		s, err := d.translateQuery(sub)
		if err != nil {
			return "", err
		}
		rhs = "(" + s + ")"
	} else {
		rhs, err = d.Translate(n.Values())
		if err != nil {
			return "", err
		}
	}
	return left + " " + n.Name() + " " + rhs, nil
}

func (d *Dialect) translateOperation(o *adql.Operation) (string, error) {
	left, err := d.translateGrouped(o.Left())
	if err != nil {
		return "", err
	}
	right, err := d.translateGrouped(o.Right())
	if err != nil {
		return "", err
	}
	return left + o.Operator().String() + right, nil
}

// translateGrouped parenthesizes compound arithmetic sub-expressions, the
// same grouping the canonical serializer applies.
func (d *Dialect) translateGrouped(op adql.Operand) (string, error) {
	s, err := d.Translate(op)
	if err != nil {
		return "", err
	}
	switch op.(type) {
	case *adql.Operation, *adql.Negation:
		return "(" + s + ")", nil
	}
	return s, nil
}

func (d *Dialect) translateMath(f *adql.MathFunction) (string, error) {
	name := f.FunctionName()
	if renamed, ok := d.FunctionNames[f.Kind()]; ok {
		name = renamed
	}
	return d.translateCallShell(name, f.Parameters())
}

func (d *Dialect) translateAggregate(f *adql.AggregateFunction) (string, error) {
	if f.Star() {
		if f.Distinct() {
			return f.FunctionName() + "(DISTINCT *)", nil
		}
		return f.FunctionName() + "(*)", nil
	}
	p, err := f.Parameter(0)
	if err != nil {
		return "", err
	}
	s, err := d.Translate(p)
	if err != nil {
		return "", err
	}
	if f.Distinct() {
		return f.FunctionName() + "(DISTINCT " + s + ")", nil
	}
	return f.FunctionName() + "(" + s + ")", nil
}

func (d *Dialect) translateCast(c *adql.Cast) (string, error) {
	value, err := d.Translate(c.Value())
	if err != nil {
		return "", err
	}
	target, err := d.translateDatatype(c.Target())
	if err != nil {
		return "", err
	}
	return "CAST(" + value + " AS " + target + ")", nil
}

func (d *Dialect) translateDatatype(t *adql.Datatype) (string, error) {
	name := t.Kind().String()
	if renamed, ok := d.TypeNames[t.Kind()]; ok {
		name = renamed
	} else if t.TypeClass() == adql.TypeGeometry {
		return "", fmt.Errorf("%w: %s has no geometric datatypes (%s)", ErrUnsupported, d.Name, name)
	}
	if t.Length() > 0 {
		name += "(" + strconv.Itoa(t.Length()) + ")"
	}
	return name, nil
}

func (d *Dialect) translateCallShell(name string, params []adql.Operand) (string, error) {
	parts := make([]string, len(params))
	for i, p := range params {
		s, err := d.Translate(p)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return name + "(" + strings.Join(parts, ", ") + ")", nil
}

// translateSeq renders an indexable sequence joined by sep, using the
// container's own Get accessor.
func translateSeq[T adql.Node](d *Dialect, length int, get func(int) (T, error), sep string) (string, error) {
	parts := make([]string, length)
	for i := 0; i < length; i++ {
		el, err := get(i)
		if err != nil {
			return "", err
		}
		s, err := d.Translate(el)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, sep), nil
}
