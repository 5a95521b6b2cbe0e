package querybuilder

import "strings"

// ConflictBuilder renders an ON CONFLICT suffix for InsertModel/InsertModels.
type ConflictBuilder struct {
	target    []string
	table     string
	overwrite []string
	keep      []string
	nothing   bool
}

func OnConflict(target ...string) *ConflictBuilder {
	return &ConflictBuilder{target: append([]string(nil), target...)}
}

// DoUpdate overwrites cols with the incoming row.
func (c *ConflictBuilder) DoUpdate(cols ...string) *ConflictBuilder {
	c.overwrite = append(c.overwrite, cols...)
	return c
}

// DoUpdateExcept overwrites every column in cols that is not part of the conflict target.
func (c *ConflictBuilder) DoUpdateExcept(cols []string) *ConflictBuilder {
	skip := make(map[string]struct{}, len(c.target))
	for _, t := range c.target {
		skip[t] = struct{}{}
	}
	for _, col := range cols {
		if _, ok := skip[col]; ok {
			continue
		}
		c.overwrite = append(c.overwrite, col)
	}
	return c
}

// KeepExisting updates cols only where the incoming value is not NULL.
func (c *ConflictBuilder) KeepExisting(table string, cols ...string) *ConflictBuilder {
	c.table = table
	c.keep = append(c.keep, cols...)
	return c
}

func (c *ConflictBuilder) DoNothing() *ConflictBuilder {
	c.nothing = true
	return c
}

func (c *ConflictBuilder) String() string {
	var buf strings.Builder
	buf.WriteString("ON CONFLICT (")
	buf.WriteString(strings.Join(c.target, ", "))
	buf.WriteString(")")

	if c.nothing || (len(c.overwrite) == 0 && len(c.keep) == 0) {
		buf.WriteString(" DO NOTHING")
		return buf.String()
	}

	buf.WriteString(" DO UPDATE SET ")
	n := 0
	for _, col := range c.overwrite {
		if n > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(col)
		buf.WriteString(" = EXCLUDED.")
		buf.WriteString(col)
		n++
	}
	for _, col := range c.keep {
		if n > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(col)
		buf.WriteString(" = COALESCE(EXCLUDED.")
		buf.WriteString(col)
		buf.WriteString(", ")
		buf.WriteString(c.table)
		buf.WriteString(".")
		buf.WriteString(col)
		buf.WriteString(")")
		n++
	}
	return buf.String()
}
