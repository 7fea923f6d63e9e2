package repository

// TaskPatch stages column values for a partial task update. A column that
// was never staged is absent from the patch and left untouched by
// ApplyPatch; a column staged with a nil value is written as SQL NULL.
// The distinction between "absent" and "explicitly null" is what makes
// partial updates safe without dynamic query assembly.
type TaskPatch struct {
	columns map[string]any
}

// NewTaskPatch returns an empty patch.
func NewTaskPatch() TaskPatch {
	return TaskPatch{columns: make(map[string]any)}
}

// Set stages a value for one column. Passing a typed nil pointer stages
// SQL NULL.
func (p TaskPatch) Set(column string, value any) {
	p.columns[column] = value
}

// Has reports whether a column has been staged.
func (p TaskPatch) Has(column string) bool {
	_, ok := p.columns[column]
	return ok
}

// Empty reports whether no columns have been staged.
func (p TaskPatch) Empty() bool {
	return len(p.columns) == 0
}

// Columns exposes the staged column map for the store layer.
func (p TaskPatch) Columns() map[string]any {
	return p.columns
}
