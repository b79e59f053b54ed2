/* Package main: rpn -- a Reverse Polish Notation calculator

rpn keeps a single stack of values and reads whitespace separated words.
Each word is an operator, a stack command, or a literal:

	> 3 4 +
	  0:   i: 7
	> 2 1/
	  1:   i: 7
	  0:   f: 0.5

Values are integers (i), floats (f) or text (s). Integer literals may use
0x, 0o and 0b prefixes; anything that is neither an integer nor a float is
pushed as text. After every line the whole stack is printed, deepest entry
first, so that the top of the stack (index 0) sits right above the prompt.

Operators take their operands from the top of the stack; for binary
operators the value pushed last is the right hand side, so "10 3 -" is 7.

	--  1/  !  sqrt  exp  ln loge  log log10  log2 lg
	sin  cos  tan  asin  acos  atan
	+  -  *  /  //  **  atan2

Integer arithmetic stays integral except for "/", which always produces a
float; transcendental operators always produce floats. "+" also
concatenates two texts.

Stack commands:

	dup  drop  swap  depth  clear  int  float  str
	pi  e  tau  inf  nan

A failed word prints a diagnostic, such as "drop error: requires 1 argument"
or "/ error: bad arguments", and leaves the stack as it was; the rest of the
line is still processed.

A line starting with ":" is an infix arithmetic expression whose result is
pushed:

	> :sqrt(2) * 2 ** 0.5
	  0:   f: 2.0000000000000004

When words are given on the command line they are processed once and the
final stack is printed. Flags come first; the words start at the first
argument that is not a flag, and a leading negative number counts as a word:

	rpn -trace -3 4 +

An explicit "--" also ends the flags, for words such as "--" itself.
Otherwise lines are read from standard input; when
that is a terminal, a line editor with history is used.
*/
package main
