package blocks

import "github.com/hpungsan/scribe/pkg/richtext"

// Divider is a horizontal rule.
type Divider struct{}

// Breadcrumb shows the page's position in the hierarchy.
type Breadcrumb struct{}

// TableOfContents lists the page's headings.
type TableOfContents struct {
	Color Color `json:"color,omitempty"`
}

// NewDivider builds a divider.
func NewDivider() Divider { return Divider{} }

// NewBreadcrumb builds a breadcrumb.
func NewBreadcrumb() Breadcrumb { return Breadcrumb{} }

// NewTableOfContents builds a table of contents. Honours WithColor.
func NewTableOfContents(opts ...Option) TableOfContents {
	return TableOfContents{Color: collect(opts).color}
}

// ColumnList lays its columns out side by side.
type ColumnList struct {
	Children []Column `json:"children"`
}

// Column is one column of a ColumnList.
type Column struct {
	Children []Block `json:"children"`
}

// NewColumnList builds a column list.
func NewColumnList(columns ...Column) ColumnList {
	return ColumnList{Children: orEmpty(columns)}
}

// NewColumn builds a column.
func NewColumn(children ...Block) Column {
	return Column{Children: orEmpty(children)}
}

// Table is a table block. HasColumnHeader and HasRowHeader stay nil unless
// set, since the API treats an absent flag differently from false.
type Table struct {
	TableWidth      int        `json:"table_width"`
	HasColumnHeader *bool      `json:"has_column_header,omitempty"`
	HasRowHeader    *bool      `json:"has_row_header,omitempty"`
	Children        []TableRow `json:"children"`
}

// NewTable builds a table with width columns. Honours WithRowHeader and
// WithColumnHeader.
func NewTable(width int, rows []TableRow, opts ...Option) Table {
	o := collect(opts)
	return Table{
		TableWidth:      width,
		HasColumnHeader: o.columnHeader,
		HasRowHeader:    o.rowHeader,
		Children:        orEmpty(rows),
	}
}

// TableRow is one table row; each cell is a rich-text sequence.
type TableRow struct {
	Cells [][]richtext.RichText `json:"cells"`
}

// NewTableRow builds a table row. No cells yields an empty cell list.
func NewTableRow(cells ...[]richtext.RichText) TableRow {
	return TableRow{Cells: orEmpty(cells)}
}

func (Divider) Type() Type         { return TypeDivider }
func (Breadcrumb) Type() Type      { return TypeBreadcrumb }
func (TableOfContents) Type() Type { return TypeTableOfContents }
func (ColumnList) Type() Type      { return TypeColumnList }
func (Column) Type() Type          { return TypeColumn }
func (Table) Type() Type           { return TypeTable }
func (TableRow) Type() Type        { return TypeTableRow }

func (Divider) block()         {}
func (Breadcrumb) block()      {}
func (TableOfContents) block() {}
func (ColumnList) block()      {}
func (Column) block()          {}
func (Table) block()           {}
func (TableRow) block()        {}

// MarshalJSON implements json.Marshaler.
func (Divider) MarshalJSON() ([]byte, error) { return envelope(TypeDivider, struct{}{}) }

// MarshalJSON implements json.Marshaler.
func (Breadcrumb) MarshalJSON() ([]byte, error) { return envelope(TypeBreadcrumb, struct{}{}) }

// MarshalJSON implements json.Marshaler.
func (b TableOfContents) MarshalJSON() ([]byte, error) {
	type payload TableOfContents
	return envelope(TypeTableOfContents, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b ColumnList) MarshalJSON() ([]byte, error) {
	type payload ColumnList
	return envelope(TypeColumnList, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b Column) MarshalJSON() ([]byte, error) {
	type payload Column
	return envelope(TypeColumn, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b Table) MarshalJSON() ([]byte, error) {
	type payload Table
	return envelope(TypeTable, payload(b))
}

// MarshalJSON implements json.Marshaler.
func (b TableRow) MarshalJSON() ([]byte, error) {
	type payload TableRow
	return envelope(TypeTableRow, payload(b))
}
