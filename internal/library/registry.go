// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package library

// The built-in machines operate on the unary encoding: a number n is a run
// of n+1 consecutive 1s, and runs are separated by single 0s. Every machine
// leaves its result in the same encoding so compositions can be chained by
// pointing the program's initial and final states at the library's.

var registry = []Library{
	{
		Name:         "sum",
		Description:  "Adds two numbers: a, b -> a + b",
		InitialState: "q0",
		FinalState:   "q2",
		UsedStates:   []string{"q0", "q1", "qs", "q2"},
		Code: `/// Adds two numbers: a, b -> a + b

(q0, 1, 0, R, q1);

(q1, 1, 1, R, q1);
(q1, 0, 0, R, qs);

(qs, 1, 0, H, q2);
(qs, 0, 0, H, q2);
`,
	},
	{
		Name:         "double",
		Description:  "Doubles a number: a -> 2a",
		InitialState: "d0",
		FinalState:   "d9",
		UsedStates:   []string{"d0", "d1", "d2", "d3", "d4", "d5", "d6", "d7", "d8", "d9"},
		Code: `/// Doubles a number: a -> 2a
// Consumes the input run left to right; the first 1 seeds the result,
// every further 1 appends two 1s to it.

(d0, 1, 0, R, d1);

(d1, 1, 1, R, d1);
(d1, 0, 0, R, d2);

(d2, 1, 1, R, d2);
(d2, 0, 1, L, d3);

(d3, 1, 1, L, d3);
(d3, 0, 0, L, d4);

(d4, 1, 1, L, d4);
(d4, 0, 0, R, d5);

(d5, 1, 0, R, d6);
(d5, 0, 0, H, d9);

(d6, 1, 1, R, d6);
(d6, 0, 0, R, d7);

(d7, 1, 1, R, d7);
(d7, 0, 1, R, d8);

(d8, 0, 1, L, d3);
`,
	},
	{
		Name:         "half",
		Description:  "Halves a number, rounding down: a -> a / 2",
		InitialState: "h0",
		FinalState:   "h9",
		UsedStates:   []string{"h0", "h1", "h2", "h3", "h4", "h5", "h6", "h9"},
		Code: `/// Halves a number, rounding down: a -> a / 2
// The first 1 seeds the result, then every consumed pair appends one 1.
// A leftover single 1 is discarded, which rounds down.

(h0, 1, 0, R, h1);

(h1, 1, 1, R, h1);
(h1, 0, 0, R, h2);

(h2, 1, 1, R, h2);
(h2, 0, 1, L, h3);

(h3, 1, 1, L, h3);
(h3, 0, 0, L, h4);

(h4, 1, 1, L, h4);
(h4, 0, 0, R, h5);

(h5, 1, 0, R, h6);
(h5, 0, 0, H, h9);

(h6, 1, 0, R, h1);
(h6, 0, 0, H, h9);
`,
	},
	{
		Name:         "mod",
		Description:  "Parity of a number: a -> a mod 2",
		InitialState: "m0",
		FinalState:   "m4",
		UsedStates:   []string{"m0", "m1", "m2", "m3", "m4"},
		Code: `/// Parity of a number: a -> a mod 2
// Erases the input while alternating between two states, then writes the
// result run where the input ended.

(m0, 1, 0, R, m1);

(m1, 1, 0, R, m2);
(m1, 0, 1, H, m4);

(m2, 1, 0, R, m1);
(m2, 0, 1, R, m3);

(m3, 0, 1, H, m4);
`,
	},
	{
		Name:         "diff",
		Description:  "Bounded subtraction: a, b -> max(a - b, 0)",
		InitialState: "s0",
		FinalState:   "sf",
		UsedStates:   []string{"s0", "s1", "s2", "s3", "s4", "s5", "c0", "c1", "sf"},
		Code: `/// Bounded subtraction: a, b -> max(a - b, 0)
// Cancels ones pairwise across the separator, eroding the left block from
// the right and the right block from the left. If the left block runs out
// first the result is zero: one 1 is written back and the remainder of the
// right block is erased.

(s0, 1, 1, R, s0);
(s0, 0, 0, R, s1);

(s1, 1, 0, R, s2);

(s2, 1, 1, L, s3);
(s2, 0, 0, H, sf);

(s3, 0, 0, L, s3);
(s3, 1, 0, L, s4);

(s4, 1, 1, R, s5);
(s4, 0, 1, R, c0);

(s5, 0, 0, R, s5);
(s5, 1, 0, R, s2);

(c0, 0, 0, R, c0);
(c0, 1, 0, R, c1);

(c1, 1, 0, R, c1);
(c1, 0, 0, H, sf);
`,
	},
}
