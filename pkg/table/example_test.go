package table_test

import (
	"fmt"

	"github.com/ajitpratap0/coltable/pkg/columnar"
	"github.com/ajitpratap0/coltable/pkg/table"
	"github.com/ajitpratap0/coltable/pkg/tableerrors"
)

func Example() {
	t, _ := table.FromSchema(table.Schema{
		{Name: "city", Kind: columnar.KindText},
		{Name: "population", Kind: columnar.KindInt64},
	})
	_ = t.AddRow("Lyon", int64(522000))
	_ = t.AddRow("Paris", int64(2102000))
	_ = t.AddRow("Nice", int64(348000))

	_ = t.SortBy(table.Name("population"))
	fmt.Println(t)

	avg, _ := t.Average(table.Name("population"))
	fmt.Printf("average: %.0f\n", avg)

	// Output:
	// city   population
	// Nice   348000
	// Lyon   522000
	// Paris  2102000
	// average: 990667
}

func ExampleTable_Filter() {
	t, _ := table.FromColumns([]columnar.Column{
		columnar.New("ann", "bob", "anna"),
		columnar.New[float32](1.5, 2, 3.25),
	}, []string{"name", "score"})

	out, _ := t.Filter(table.Name("name"), "an.*")
	fmt.Println(out.Rows(), out.Capacity())
	fmt.Println(out)

	// Output:
	// 2 2
	// name  score
	// ann   1.5
	// anna  3.25
}

func ExampleTable_Minimum() {
	t, _ := table.FromColumns([]columnar.Column{
		columnar.New[int32](10, 20, 30, 40, 50),
		columnar.New("a", "b", "c", "d", "e"),
	}, []string{"n", "s"})

	lo, _ := t.Minimum(table.Name("n"))
	hi, _ := t.Maximum(table.Name("n"))
	fmt.Println(lo, hi)

	_, err := t.Minimum(table.Name("s"))
	fmt.Println(tableerrors.IsType(err, tableerrors.ErrorTypeType))

	// Output:
	// 10 50
	// true
}

func ExampleGet() {
	t, _ := table.FromColumns([]columnar.Column{columnar.New[columnar.Char]('x', 'y')}, []string{"c"})

	c, _ := table.Get[columnar.Char](t, table.Name("c"), 1)
	fmt.Println(c)

	_, err := table.Get[columnar.Char](t, table.Name("c"), 2)
	fmt.Println(err)

	// Output:
	// y
	// out_of_range: index 2 out of range [0, 2)
}
