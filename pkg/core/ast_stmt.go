package core

// ---------- Statement Types ----------

// SelectStmt represents a complete SELECT statement with optional WITH clause.
type SelectStmt struct {
	NodeInfo
	With *WithClause
	Body *SelectBody
}

func (*SelectStmt) stmtNode() {}

// WithClause represents a WITH clause with CTEs.
type WithClause struct {
	NodeInfo
	Recursive bool
	CTEs      []*CTE
}

// CTE represents a Common Table Expression.
type CTE struct {
	NodeInfo
	Name   string
	Select *SelectStmt
}

// SelectBody represents the body of a SELECT with possible set operations.
type SelectBody struct {
	NodeInfo
	Left  *SelectCore
	Op    SetOpType   // UNION, INTERSECT, EXCEPT, or empty
	All   bool        // UNION ALL
	Right *SelectBody // For chained set operations
}

// SetOpType represents the type of set operation.
type SetOpType string

// SetOpType constants for set operations in queries.
const (
	SetOpNone      SetOpType = ""
	SetOpUnion     SetOpType = "UNION"
	SetOpUnionAll  SetOpType = "UNION ALL"
	SetOpIntersect SetOpType = "INTERSECT"
	SetOpExcept    SetOpType = "EXCEPT"
)

// SelectCore represents the core SELECT clause.
type SelectCore struct {
	NodeInfo
	Distinct bool
	Columns  []SelectItem
	From     *FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	Windows  []WindowDef // Named window definitions (WINDOW clause)
	OrderBy  []OrderByItem
	Limit    Expr
	Offset   Expr
	Fetch    *FetchClause // FETCH FIRST/NEXT support (SQL:2008)

	// Extensions holds rare dialect-specific clause nodes.
	Extensions []Node
}

// FetchClause represents FETCH FIRST/NEXT n ROWS ONLY/WITH TIES (SQL:2008).
type FetchClause struct {
	First    bool // true = FIRST, false = NEXT (semantically identical)
	Count    Expr // Number of rows (nil = 1 row implied)
	WithTies bool // true = WITH TIES, false = ONLY
}

// WindowDef represents a named window definition in the WINDOW clause.
// Example: WINDOW w AS (PARTITION BY x ORDER BY y)
type WindowDef struct {
	Name string
	Spec *WindowSpec
}

// SelectItem represents an item in the SELECT list.
type SelectItem struct {
	Star      bool   // SELECT *
	TableStar string // SELECT t.*
	Expr      Expr   // Expression
	Alias     string // AS alias
}

// FromClause represents the FROM clause.
type FromClause struct {
	NodeInfo
	Source TableRef
	Joins  []*Join
}

// Join represents a JOIN clause.
type Join struct {
	NodeInfo
	Type      JoinType
	Natural   bool // NATURAL JOIN modifier
	Right     TableRef
	Condition Expr     // ON clause (mutually exclusive with Using)
	Using     []string // USING (col1, col2) columns
}

// JoinType represents the type of join.
// The value is the SQL keyword (e.g., "LEFT", "INNER").
// Join type constants are defined in pkg/dialect/joins.go.
type JoinType string

// JoinComma represents an implicit cross join using comma syntax.
// This is kept in the core package because it's syntactically unique
// (not a TYPE JOIN keyword pattern) and universal across all SQL dialects.
const JoinComma JoinType = ","

// OrderByItem represents an item in ORDER BY clause.
type OrderByItem struct {
	Expr       Expr
	Desc       bool
	NullsFirst *bool // nil means default, true = NULLS FIRST, false = NULLS LAST
}

// ---------- DDL Statements ----------

// CreateTableStmt represents a CREATE TABLE statement.
// OrderBy and Segmentation carry physical-layout clauses used by
// columnar dialects; they stay nil for dialects without them.
type CreateTableStmt struct {
	NodeInfo
	Table       *TableName
	IfNotExists bool
	Columns     []ColumnDef
	OrderBy     []Expr
	Segmentation *Segmentation
}

func (*CreateTableStmt) stmtNode() {}

// ColumnDef represents a column definition in CREATE TABLE.
type ColumnDef struct {
	Name       string
	Type       DataType
	NotNull    bool
	PrimaryKey bool
	Default    Expr
}

// Segmentation represents physical data distribution for a table or
// projection: SEGMENTED BY expr ALL NODES, or UNSEGMENTED ALL NODES.
type Segmentation struct {
	ByExpr   Expr // nil means UNSEGMENTED
	AllNodes bool
}

// CreateProjectionStmt represents a CREATE PROJECTION statement:
// a named, physically ordered materialization of a query.
type CreateProjectionStmt struct {
	NodeInfo
	Name         *TableName
	Columns      []string
	Select       *SelectStmt
	OrderBy      []Expr
	Segmentation *Segmentation
}

func (*CreateProjectionStmt) stmtNode() {}

// ---------- Bulk Data Statements ----------

// CopyStmt represents a COPY ... FROM bulk-load statement.
type CopyStmt struct {
	NodeInfo
	Table        *TableName
	Columns      []string
	Local        bool   // FROM LOCAL: file read on the client host
	Stdin        bool   // FROM STDIN
	Path         string // source file path (empty for STDIN)
	Delimiter    string // DELIMITER 'c' (empty means dialect default)
	Skip         Expr   // SKIP n header rows
	RejectMax    Expr   // REJECTMAX n
	Direct       bool   // DIRECT: bypass memory staging
	AbortOnError bool   // ABORT ON ERROR
}

func (*CopyStmt) stmtNode() {}

// ExportStmt represents an EXPORT TO <format> (...) AS SELECT statement:
// unload of a query result to external storage.
type ExportStmt struct {
	NodeInfo
	Format  string // target format keyword (PARQUET, DELIMITED, ...)
	Options []ExportOption
	Select  *SelectStmt
}

func (*ExportStmt) stmtNode() {}

// ExportOption is a key=value option in the EXPORT option list.
type ExportOption struct {
	Key   string
	Value Expr
}
