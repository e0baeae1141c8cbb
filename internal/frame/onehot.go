package frame

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// OneHot replaces one categorical column with one indicator column per
// category seen at fit time.
type OneHot struct {
	Column     string
	Categories []string
}

// FitOneHot collects the sorted distinct values of column.
func FitOneHot(t *Table, column string) (*OneHot, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, fmt.Errorf("fitting one-hot: %w", err)
	}
	cats := lo.Uniq(values)
	sort.Strings(cats)
	return &OneHot{Column: column, Categories: cats}, nil
}

// Names returns the indicator column names, "<column>_<category>".
func (o *OneHot) Names() []string {
	return lo.Map(o.Categories, func(c string, _ int) string {
		return o.Column + "_" + c
	})
}

// Transform drops the encoded column and appends the indicator columns at
// the end of every row. A value not seen at fit time encodes as all zeros,
// so tables transformed by the same encoder always have the same width.
func (o *OneHot) Transform(t *Table) (*Table, error) {
	src := t.Index(o.Column)
	if src < 0 {
		return nil, fmt.Errorf("one-hot transform: unknown column %q", o.Column)
	}

	base := t.Drop(o.Column)
	out := &Table{
		Header: append(append([]string{}, base.Header...), o.Names()...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for r, row := range base.Rows {
		value := t.Rows[r][src]
		ind := make([]string, len(o.Categories))
		for i, c := range o.Categories {
			if c == value {
				ind[i] = "1"
			} else {
				ind[i] = "0"
			}
		}
		out.Rows[r] = append(append([]string{}, row...), ind...)
	}
	return out, nil
}
