package scroll

import "testing"

func TestRow(t *testing.T) {
	cases := []struct {
		args []any
		want string
	}{
		{nil, ""},
		{[]any{"plain"}, "plain"},
		{[]any{"task ", 3, ": ", "buy milk"}, "task 3: buy milk"},
		{[]any{1, 2, 3}, "123"},
		{[]any{"pi=", 3.5}, "pi=3.5"},
		{[]any{true, "!"}, "true!"},
	}
	for _, c := range cases {
		if got := Row(c.args...); got != c.want {
			t.Errorf("Row(%v) = %q, want %q", c.args, got, c.want)
		}
	}
}
