// Row composition convenience, external to the durability core.
package scroll

import (
	"fmt"
	"strings"
)

// Row stringifies its arguments and concatenates them into a single row,
// ready to hand to Append or Overwrite. No separator is inserted between
// arguments.
//
//	store.Append(scroll.Row("task ", 3, ": ", "buy milk"))
func Row(args ...any) string {
	var b strings.Builder
	for _, a := range args {
		fmt.Fprint(&b, a)
	}
	return b.String()
}
