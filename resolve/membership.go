package resolve

// membership marks every cell whose downstream chain reaches the outlet
// cell: an upstream flood-fill over the (read-only) flow topology rather
// than a per-cell chain walk.
func (r *Resolver) membership(c *candidate) {
	mem := make([]bool, r.FM.Nc)
	stack := []int{c.cell}
	mem[c.cell] = true
	na := 1
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, u := range r.FM.UpslopeCells(i) {
			if !mem[u] {
				mem[u] = true
				na++
				stack = append(stack, u)
			}
		}
	}
	c.member, c.area = mem, na
}
