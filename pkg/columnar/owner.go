package columnar

import (
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

// Owner holds the right to change the length and capacity of the columns
// attached to it. A Table keeps one Owner and routes every row and capacity
// change through it; an attached column rejects those calls from anyone
// else, so its length and capacity never drift from the table's.
type Owner struct {
	_ byte
}

// NewOwner returns a fresh owner.
func NewOwner() *Owner {
	return &Owner{}
}

// Attached reports whether c currently belongs to an owner.
func Attached(c Column) bool {
	return c.owner() != nil
}

func errAttached(op string) error {
	return tableerrors.Newf(tableerrors.ErrorTypeSchema,
		"%s: column is attached to a table; change rows through the table", op).
		WithDetail("operation", op)
}

// Attach takes ownership of c. It fails when c already has an owner.
func (o *Owner) Attach(c Column) error {
	if c.owner() != nil {
		return tableerrors.New(tableerrors.ErrorTypeValidation, "column already belongs to a table")
	}
	c.setOwner(o)
	return nil
}

// Detach releases c. Columns held by another owner are left alone.
func (o *Owner) Detach(c Column) {
	if c.owner() == o {
		c.setOwner(nil)
	}
}

func (o *Owner) check(c Column) error {
	if c.owner() != o {
		return tableerrors.New(tableerrors.ErrorTypeInternal, "column is not attached to this owner")
	}
	return nil
}

// Append adds v after the last element of c.
func (o *Owner) Append(c Column, v interface{}) error {
	if err := o.check(c); err != nil {
		return err
	}
	return c.insertValue(c.Len(), v)
}

// Insert stores v at i, shifting later elements right.
func (o *Owner) Insert(c Column, i int, v interface{}) error {
	if err := o.check(c); err != nil {
		return err
	}
	return c.insertValue(i, v)
}

// RemoveRange removes [from, to) from c.
func (o *Owner) RemoveRange(c Column, from, to int) error {
	if err := o.check(c); err != nil {
		return err
	}
	return c.removeRange(from, to)
}

// Resize sets the capacity of c.
func (o *Owner) Resize(c Column, capacity int) error {
	if err := o.check(c); err != nil {
		return err
	}
	return c.resizeTo(capacity)
}

// Permute reorders c.
func (o *Owner) Permute(c Column, perm []int) error {
	if err := o.check(c); err != nil {
		return err
	}
	return c.permute(perm)
}

// Clear drops every element of c and keeps its capacity.
func (o *Owner) Clear(c Column) error {
	if err := o.check(c); err != nil {
		return err
	}
	c.clear()
	return nil
}
