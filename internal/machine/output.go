// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package machine

import "fmt"

// Output is the observable result of running a machine: the number of
// steps taken and the number of 1s left on the tape. Defined is false when
// the run died on a configuration with no transition; Steps then counts
// only the completed transitions and Ones is meaningless.
type Output struct {
	Defined bool
	Steps   int
	Ones    int
}

func (o Output) String() string {
	if !o.Defined {
		return "Undefined"
	}
	return fmt.Sprintf("(%d, %d)", o.Steps, o.Ones)
}
