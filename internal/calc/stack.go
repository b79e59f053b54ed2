package calc

// Stack is an ordered sequence of values where index 0 is the top, the most
// recently pushed value. Values are stored bottom first so that pushing and
// popping only touch the end of the slice.
type Stack struct {
	values []Value
}

// Depth returns the number of values on the stack.
func (st *Stack) Depth() int { return len(st.values) }

// Push puts v on top.
func (st *Stack) Push(v Value) { st.values = append(st.values, v) }

// Pop removes and returns the top value; the caller checks Depth first.
func (st *Stack) Pop() Value {
	i := len(st.values) - 1
	v := st.values[i]
	st.values[i] = Value{}
	st.values = st.values[:i]
	return v
}

// Peek returns the value at index i, counting down from the top.
func (st *Stack) Peek(i int) Value { return st.values[len(st.values)-1-i] }

// Set replaces the value at index i, counting down from the top.
func (st *Stack) Set(i int, v Value) { st.values[len(st.values)-1-i] = v }

// Clear empties the stack.
func (st *Stack) Clear() {
	for i := range st.values {
		st.values[i] = Value{}
	}
	st.values = st.values[:0]
}

// Values returns a copy of the stack contents, top first.
func (st *Stack) Values() []Value {
	vals := make([]Value, len(st.values))
	for i := range vals {
		vals[i] = st.Peek(i)
	}
	return vals
}
