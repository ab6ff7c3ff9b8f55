// pkg/model/record.go
package model

// Row holds the field values of a single trial record keyed by column name.
// A missing key means the value is absent; an empty string is never stored,
// so absence is the one canonical representation of "no value".
type Row map[string]string

// Get returns the value of a column and whether it is present.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Set stores a value. Setting an empty string removes the column instead,
// preserving the absence invariant.
func (r Row) Set(col, value string) {
	if value == "" {
		delete(r, col)
		return
	}
	r[col] = value
}

// Delete removes a column from the row. No-op if already absent.
func (r Row) Delete(col string) {
	delete(r, col)
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an in-memory trial table: an ordered column list plus the rows.
// Column order is preserved from the source and determines output order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table schema contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the schema. Idempotent: re-adding an
// existing column leaves the order untouched.
func (t *Table) AddColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
}

// DropColumn removes a column from the schema and from every row.
// No-op if the column is not part of the schema.
func (t *Table) DropColumn(name string) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for _, row := range t.Rows {
		row.Delete(name)
	}
}

// Filter returns a new table containing the rows for which keep returns true.
// The column slice is shared; rows are not copied.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Columns: t.Columns}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
