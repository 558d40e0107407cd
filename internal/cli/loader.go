package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skyquery/adql"
)

// The loader turns a YAML query document into an ADQL tree. The document
// mirrors the query structure clause by clause; every operand and predicate
// is a small tagged mapping with exactly one populated alternative.
//
// Error codes for load failures.
const (
	ErrCodeNotFound = "E001" // file not found / unreadable
	ErrCodeParse    = "E002" // malformed YAML
	ErrCodeBuild    = "E003" // document violates tree construction rules
)

// LoadError represents an error that occurred while loading a document.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// queryDoc is the YAML shape of a full query.
type queryDoc struct {
	With    []withDoc      `yaml:"with"`
	Select  selectDoc      `yaml:"select"`
	From    *fromDoc       `yaml:"from"`
	Where   []predicateDoc `yaml:"where"`
	GroupBy []operandDoc   `yaml:"group_by"`
	Having  []predicateDoc `yaml:"having"`
	OrderBy []orderDoc     `yaml:"order_by"`
	Offset  *int           `yaml:"offset"`
}

type withDoc struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Query   queryDoc `yaml:"query"`
}

type selectDoc struct {
	Distinct bool      `yaml:"distinct"`
	Top      *int      `yaml:"top"`
	Items    []itemDoc `yaml:"items"`
}

type itemDoc struct {
	Star    bool        `yaml:"star"`
	Alias   string      `yaml:"alias"`
	Operand *operandDoc `yaml:"operand"`
}

type fromDoc struct {
	Table    string    `yaml:"table"`
	Alias    string    `yaml:"alias"`
	SubQuery *queryDoc `yaml:"query"`
	Join     *joinDoc  `yaml:"join"`
}

type joinDoc struct {
	Type    string         `yaml:"type"` // inner|left|right|full|cross
	Natural bool           `yaml:"natural"`
	Left    *fromDoc       `yaml:"left"`
	Right   *fromDoc       `yaml:"right"`
	On      []predicateDoc `yaml:"on"`
}

type orderDoc struct {
	Operand    operandDoc `yaml:"operand"`
	Descending bool       `yaml:"desc"`
}

// operandDoc is a tagged union: exactly one alternative populated.
type operandDoc struct {
	Column    string        `yaml:"column"`
	Table     string        `yaml:"table"` // qualifier for column
	Type      string        `yaml:"type"`  // numeric|string|geometry; optional binding
	Number    string        `yaml:"number"`
	String    *string       `yaml:"string"`
	Negate    *operandDoc   `yaml:"negate"`
	Concat    []operandDoc  `yaml:"concat"`
	Operation *operationDoc `yaml:"operation"`
	Function  *functionDoc  `yaml:"function"`
	Cast      *castDoc      `yaml:"cast"`
}

type operationDoc struct {
	Left     operandDoc `yaml:"left"`
	Operator string     `yaml:"op"` // + - * /
	Right    operandDoc `yaml:"right"`
}

type functionDoc struct {
	Name     string       `yaml:"name"`
	Args     []operandDoc `yaml:"args"`
	Distinct bool         `yaml:"distinct"` // aggregates only
	Star     bool         `yaml:"star"`     // COUNT(*) only
}

type castDoc struct {
	Value  operandDoc `yaml:"value"`
	Target string     `yaml:"target"` // datatype name
	Length int        `yaml:"length"`
}

// predicateDoc is a tagged union: exactly one alternative populated.
type predicateDoc struct {
	Connector string         `yaml:"connector"` // and|or joining to the previous entry
	Compare   *compareDoc    `yaml:"compare"`
	Between   *betweenDoc    `yaml:"between"`
	In        *inDoc         `yaml:"in"`
	IsNull    *isNullDoc     `yaml:"is_null"`
	Exists    *queryDoc      `yaml:"exists"`
	Not       *predicateDoc  `yaml:"not"`
	Group     []predicateDoc `yaml:"group"`
}

type compareDoc struct {
	Left     operandDoc `yaml:"left"`
	Operator string     `yaml:"op"`
	Right    operandDoc `yaml:"right"`
}

type betweenDoc struct {
	Operand operandDoc `yaml:"operand"`
	Min     operandDoc `yaml:"min"`
	Max     operandDoc `yaml:"max"`
	Negated bool       `yaml:"negated"`
}

type inDoc struct {
	Operand  operandDoc   `yaml:"operand"`
	Values   []operandDoc `yaml:"values"`
	SubQuery *queryDoc    `yaml:"query"`
	Negated  bool         `yaml:"negated"`
}

type isNullDoc struct {
	Column  operandDoc `yaml:"column"`
	Negated bool       `yaml:"negated"`
}

// LoadQuery reads a YAML query document and builds the ADQL tree.
func LoadQuery(path string) (*adql.Query, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	var doc queryDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("malformed document %s: %v", path, err)}
	}
	q, err := buildQuery(&doc)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBuild, Message: err.Error()}
	}
	return q, nil
}

func buildQuery(doc *queryDoc) (*adql.Query, error) {
	if len(doc.Select.Items) == 0 {
		return nil, fmt.Errorf("a query needs at least one select item")
	}
	sel := adql.NewSelectClause()
	sel.SetDistinct(doc.Select.Distinct)
	if doc.Select.Top != nil {
		sel.SetLimit(*doc.Select.Top)
	}
	for i, it := range doc.Select.Items {
		item, err := buildItem(&it)
		if err != nil {
			return nil, fmt.Errorf("select item %d: %w", i, err)
		}
		if err := sel.Append(item); err != nil {
			return nil, fmt.Errorf("select item %d: %w", i, err)
		}
	}
	if doc.From == nil {
		return nil, fmt.Errorf("a query needs a from clause")
	}
	from, err := buildFrom(doc.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	q, err := adql.NewQuery(sel, from)
	if err != nil {
		return nil, err
	}
	if len(doc.With) > 0 {
		with := adql.NewWithClause()
		for i, w := range doc.With {
			sub, err := buildQuery(&w.Query)
			if err != nil {
				return nil, fmt.Errorf("with %q: %w", w.Name, err)
			}
			item, err := adql.NewWithItem(w.Name, sub)
			if err != nil {
				return nil, fmt.Errorf("with %d: %w", i, err)
			}
			item.SetColumnLabels(w.Columns)
			if err := with.Append(item); err != nil {
				return nil, fmt.Errorf("with %q: %w", w.Name, err)
			}
		}
		if _, err := q.SetWith(with); err != nil {
			return nil, err
		}
	}
	if len(doc.Where) > 0 {
		where, err := buildConstraints("WHERE", doc.Where)
		if err != nil {
			return nil, fmt.Errorf("where: %w", err)
		}
		if _, err := q.SetWhere(where); err != nil {
			return nil, err
		}
	}
	if len(doc.GroupBy) > 0 {
		groupBy := adql.NewGroupByClause()
		for i, od := range doc.GroupBy {
			op, err := buildOperand(&od)
			if err != nil {
				return nil, fmt.Errorf("group_by %d: %w", i, err)
			}
			if err := groupBy.Append(op); err != nil {
				return nil, fmt.Errorf("group_by %d: %w", i, err)
			}
		}
		if _, err := q.SetGroupBy(groupBy); err != nil {
			return nil, err
		}
	}
	if len(doc.Having) > 0 {
		having, err := buildConstraints("HAVING", doc.Having)
		if err != nil {
			return nil, fmt.Errorf("having: %w", err)
		}
		if _, err := q.SetHaving(having); err != nil {
			return nil, err
		}
	}
	if len(doc.OrderBy) > 0 {
		orderBy := adql.NewOrderByClause()
		for i, od := range doc.OrderBy {
			op, err := buildOperand(&od.Operand)
			if err != nil {
				return nil, fmt.Errorf("order_by %d: %w", i, err)
			}
			item, err := adql.NewOrderItem(op, od.Descending)
			if err != nil {
				return nil, fmt.Errorf("order_by %d: %w", i, err)
			}
			if err := orderBy.Append(item); err != nil {
				return nil, fmt.Errorf("order_by %d: %w", i, err)
			}
		}
		if _, err := q.SetOrderBy(orderBy); err != nil {
			return nil, err
		}
	}
	if doc.Offset != nil {
		q.SetOffset(*doc.Offset)
	}
	return q, nil
}

func buildItem(doc *itemDoc) (*adql.SelectItem, error) {
	if doc.Star {
		return adql.NewWildcardItem(), nil
	}
	if doc.Operand == nil {
		return nil, fmt.Errorf("a select item needs an operand or star: true")
	}
	op, err := buildOperand(doc.Operand)
	if err != nil {
		return nil, err
	}
	return adql.NewSelectItem(op, doc.Alias)
}

func buildFrom(doc *fromDoc) (adql.FromContent, error) {
	if doc.Join != nil {
		return buildJoin(doc.Join)
	}
	if doc.SubQuery != nil {
		sub, err := buildQuery(doc.SubQuery)
		if err != nil {
			return nil, err
		}
		return adql.NewSubQueryTable(sub, doc.Alias)
	}
	t, err := adql.NewTable(doc.Table)
	if err != nil {
		return nil, err
	}
	if doc.Alias != "" {
		if err := t.SetAlias(doc.Alias, false); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func buildJoin(doc *joinDoc) (*adql.Join, error) {
	if doc.Left == nil || doc.Right == nil {
		return nil, fmt.Errorf("a join needs both left and right sides")
	}
	left, err := buildFrom(doc.Left)
	if err != nil {
		return nil, fmt.Errorf("join left: %w", err)
	}
	right, err := buildFrom(doc.Right)
	if err != nil {
		return nil, fmt.Errorf("join right: %w", err)
	}
	typ, err := joinTypeOf(doc.Type)
	if err != nil {
		return nil, err
	}
	j, err := adql.NewJoin(left, typ, right)
	if err != nil {
		return nil, err
	}
	if doc.Natural {
		j.SetNatural(true)
	}
	if len(doc.On) > 0 {
		on, err := buildConstraints("ON", doc.On)
		if err != nil {
			return nil, fmt.Errorf("join on: %w", err)
		}
		if _, err := j.SetOn(on); err != nil {
			return nil, err
		}
	}
	return j, nil
}

func joinTypeOf(name string) (adql.JoinType, error) {
	switch name {
	case "", "inner":
		return adql.JoinInner, nil
	case "left":
		return adql.JoinLeft, nil
	case "right":
		return adql.JoinRight, nil
	case "full":
		return adql.JoinFull, nil
	case "cross":
		return adql.JoinCross, nil
	default:
		return adql.JoinInner, fmt.Errorf("unknown join type %q", name)
	}
}

func buildConstraints(label string, docs []predicateDoc) (*adql.ConstraintList, error) {
	list := adql.NewConstraintList(label)
	for i, pd := range docs {
		p, err := buildPredicate(&pd)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		conn, err := connectorOf(pd.Connector)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		if err := list.AddWith(conn, p); err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	return list, nil
}

func connectorOf(name string) (adql.LogicalOp, error) {
	switch name {
	case "", "and":
		return adql.LogicalAnd, nil
	case "or":
		return adql.LogicalOr, nil
	default:
		return adql.LogicalAnd, fmt.Errorf("unknown connector %q", name)
	}
}

func buildPredicate(doc *predicateDoc) (adql.Predicate, error) {
	switch {
	case doc.Compare != nil:
		left, err := buildOperand(&doc.Compare.Left)
		if err != nil {
			return nil, err
		}
		op, err := adql.ComparisonOpOf(doc.Compare.Operator)
		if err != nil {
			return nil, err
		}
		right, err := buildOperand(&doc.Compare.Right)
		if err != nil {
			return nil, err
		}
		return adql.NewComparison(left, op, right)
	case doc.Between != nil:
		operand, err := buildOperand(&doc.Between.Operand)
		if err != nil {
			return nil, err
		}
		min, err := buildOperand(&doc.Between.Min)
		if err != nil {
			return nil, err
		}
		max, err := buildOperand(&doc.Between.Max)
		if err != nil {
			return nil, err
		}
		b, err := adql.NewBetween(operand, min, max)
		if err != nil {
			return nil, err
		}
		b.SetNegated(doc.Between.Negated)
		return b, nil
	case doc.In != nil:
		operand, err := buildOperand(&doc.In.Operand)
		if err != nil {
			return nil, err
		}
		if doc.In.SubQuery != nil {
			sub, err := buildQuery(doc.In.SubQuery)
			if err != nil {
				return nil, err
			}
			return adql.NewInSubQuery(operand, sub, doc.In.Negated)
		}
		values := make([]adql.Operand, 0, len(doc.In.Values))
		for _, vd := range doc.In.Values {
			v, err := buildOperand(&vd)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		list, err := adql.NewOperandList(values...)
		if err != nil {
			return nil, err
		}
		return adql.NewIn(operand, list, doc.In.Negated)
	case doc.IsNull != nil:
		op, err := buildOperand(&doc.IsNull.Column)
		if err != nil {
			return nil, err
		}
		col, ok := op.(*adql.Column)
		if !ok {
			return nil, fmt.Errorf("is_null applies to a column reference")
		}
		return adql.NewIsNull(col, doc.IsNull.Negated)
	case doc.Exists != nil:
		sub, err := buildQuery(doc.Exists)
		if err != nil {
			return nil, err
		}
		return adql.NewExists(sub)
	case doc.Not != nil:
		inner, err := buildPredicate(doc.Not)
		if err != nil {
			return nil, err
		}
		return adql.NewNot(inner)
	case len(doc.Group) > 0:
		g := adql.NewGroup()
		for i, pd := range doc.Group {
			p, err := buildPredicate(&pd)
			if err != nil {
				return nil, fmt.Errorf("group constraint %d: %w", i, err)
			}
			conn, err := connectorOf(pd.Connector)
			if err != nil {
				return nil, fmt.Errorf("group constraint %d: %w", i, err)
			}
			if err := g.AddWith(conn, p); err != nil {
				return nil, fmt.Errorf("group constraint %d: %w", i, err)
			}
		}
		return g, nil
	default:
		return nil, fmt.Errorf("a predicate needs exactly one of compare, between, in, is_null, exists, not, group")
	}
}

func buildOperand(doc *operandDoc) (adql.Operand, error) {
	switch {
	case doc.Column != "":
		var col *adql.Column
		var err error
		if doc.Table != "" {
			col, err = adql.NewQualifiedColumn(doc.Table, doc.Column)
		} else {
			col, err = adql.NewColumn(doc.Column)
		}
		if err != nil {
			return nil, err
		}
		if doc.Type != "" {
			class, err := typeClassOf(doc.Type)
			if err != nil {
				return nil, err
			}
			col.BindType(class)
		}
		return col, nil
	case doc.Number != "":
		return adql.NewNumericLiteral(doc.Number)
	case doc.String != nil:
		return adql.NewStringLiteral(*doc.String), nil
	case doc.Negate != nil:
		inner, err := buildOperand(doc.Negate)
		if err != nil {
			return nil, err
		}
		return adql.NewNegation(inner)
	case len(doc.Concat) > 0:
		parts := make([]adql.Operand, 0, len(doc.Concat))
		for _, pd := range doc.Concat {
			p, err := buildOperand(&pd)
			if err != nil {
				return nil, err
			}
			parts = append(parts, p)
		}
		return adql.NewConcatenation(parts...)
	case doc.Operation != nil:
		left, err := buildOperand(&doc.Operation.Left)
		if err != nil {
			return nil, err
		}
		right, err := buildOperand(&doc.Operation.Right)
		if err != nil {
			return nil, err
		}
		opType, err := operationTypeOf(doc.Operation.Operator)
		if err != nil {
			return nil, err
		}
		return adql.NewOperation(left, opType, right)
	case doc.Function != nil:
		return buildFunction(doc.Function)
	case doc.Cast != nil:
		return buildCast(doc.Cast)
	default:
		return nil, fmt.Errorf("an operand needs exactly one of column, number, string, negate, concat, operation, function, cast")
	}
}

func typeClassOf(name string) (adql.TypeClass, error) {
	switch name {
	case "numeric":
		return adql.TypeNumeric, nil
	case "string":
		return adql.TypeString, nil
	case "geometry":
		return adql.TypeGeometry, nil
	default:
		return adql.TypeUnknown, fmt.Errorf("unknown type class %q", name)
	}
}

func operationTypeOf(symbol string) (adql.OperationType, error) {
	switch symbol {
	case "+":
		return adql.OpAdd, nil
	case "-":
		return adql.OpSubtract, nil
	case "*":
		return adql.OpMultiply, nil
	case "/":
		return adql.OpDivide, nil
	default:
		return adql.OpAdd, fmt.Errorf("unknown arithmetic operator %q", symbol)
	}
}

// buildFunction resolves a function call by name: the aggregate catalog
// first, then the math catalog, then a UDF.
func buildFunction(doc *functionDoc) (adql.Operand, error) {
	if kind, ok := adql.AggregateKindOf(doc.Name); ok {
		if doc.Star {
			return adql.NewCountStar(doc.Distinct), nil
		}
		if len(doc.Args) != 1 {
			return nil, fmt.Errorf("%s takes exactly one argument", doc.Name)
		}
		param, err := buildOperand(&doc.Args[0])
		if err != nil {
			return nil, err
		}
		return adql.NewAggregate(kind, param, doc.Distinct)
	}
	args := make([]adql.Operand, 0, len(doc.Args))
	for _, ad := range doc.Args {
		a, err := buildOperand(&ad)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if kind, ok := adql.MathFunctionKindOf(doc.Name); ok {
		return adql.NewMathFunction(kind, args...)
	}
	return adql.NewUserFunction(doc.Name, args...)
}

func buildCast(doc *castDoc) (*adql.Cast, error) {
	value, err := buildOperand(&doc.Value)
	if err != nil {
		return nil, err
	}
	kind, ok := adql.DatatypeKindOf(doc.Target)
	if !ok {
		return nil, fmt.Errorf("unknown datatype %q", doc.Target)
	}
	var target *adql.Datatype
	if doc.Length > 0 {
		target, err = adql.NewSizedDatatype(kind, doc.Length)
		if err != nil {
			return nil, err
		}
	} else {
		target = adql.NewDatatype(kind)
	}
	return adql.NewCast(value, target)
}
