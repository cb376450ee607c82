package mines

// celltodo is the LIFO worklist of row-major cell indices driving the
// flood fill.
type celltodo struct {
	stack []int
}

func (std *celltodo) push(i int) {
	std.stack = append(std.stack, i)
}

func (std *celltodo) pop() (int, bool) {
	n := len(std.stack)
	if n == 0 {
		return -1, false
	}
	i := std.stack[n-1]
	std.stack = std.stack[:n-1]
	return i, true
}
