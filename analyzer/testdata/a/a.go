// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package a

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

func conditional(strict bool, s string) int {
	var n int
	if strict {
		n = len(s)
	}

	return n // want "Use of unassigned variable 'n'"
}

func allPaths(strict bool, s string) int {
	var n int
	if strict {
		n = len(s)
	} else {
		n = -1
	}

	return n
}

func reportedOnce(ok bool) {
	var p *int
	if ok {
		p = new(int)
	}

	fmt.Println(p) // want "Use of unassigned variable 'p'"
	fmt.Println(p)
}

func zeroValues() {
	var (
		err error
		buf []byte
		m   map[string]int
		s   struct{ a, b int }
	)

	fmt.Println(err, buf, m, s.a)
}

func accumulate(xs []int) int {
	var sum int
	for _, x := range xs {
		sum += x
	}

	return sum // want "Use of unassigned variable 'sum'"
}

func accumulateInitialized(xs []int) int {
	sum := 0
	for _, x := range xs {
		sum += x
	}

	return sum
}

func addressTaken(s string) int {
	var n int
	if _, err := fmt.Sscan(s, &n); err != nil {
		return 0
	}

	return n
}

func exit(s string) int {
	var n int
	if v, err := strconv.Atoi(s); err == nil {
		n = v
	} else {
		os.Exit(1)
	}

	return n
}

func afterPanic() {
	panic("boom")
	fmt.Println("never") // want "Unreachable code"
	fmt.Println("again")
}

func afterReturn() int {
	return 1
	fmt.Println("never") // want "Unreachable code"
	return 2
}

func infinite(c chan int) {
	for {
		<-c
	}
	fmt.Println("never") // want "Unreachable code"
}

func namedResult(ok bool) (n int, err error) { // want "Result 'n' is not assigned on every return"
	if ok {
		n = 1
	}

	return
}

func namedResultAssigned(s string) (n int, err error) {
	n, err = strconv.Atoi(s)

	return
}

func deferredError() (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(err, errors.New("wrapped"))
		}
	}()

	return nil
}

func closure() func() int {
	var n int
	f := func() int { return n } // want "Use of unassigned variable 'n'"
	n = 1

	return f
}

func switchDefault(k int) string {
	var s string
	switch k {
	case 1:
		s = "one"
	case 2:
		s = "two"
	default:
		s = "many"
	}

	return s
}

func switchFallthrough(k int) string {
	var s string
	switch k {
	case 0:
		fallthrough
	case 1:
		s = "small"
	}

	return s // want "Use of unassigned variable 's'"
}

func typeSwitch(x any) int {
	var n int
	switch v := x.(type) {
	case int:
		n = v
	case string:
		n = len(v)
	default:
		return 0
	}

	return n
}

func selectAll(a, b chan int) int {
	var n int
	select {
	case n = <-a:
	case v := <-b:
		n = v
	}

	return n
}

func labeledBreak(rows [][]int) int {
	var found int
outer:
	for _, row := range rows {
		for _, v := range row {
			if v < 0 {
				found = v
				break outer
			}
		}
	}

	return found // want "Use of unassigned variable 'found'"
}

func gotoLoop(n int) int {
	var i int
	i = 0
loop:
	if i < n {
		i++
		goto loop
	}

	return i
}

func suppressed(ok bool) int {
	var n int
	if ok {
		n = 1
	}

	return n //nolint:flowguard
}

//nolint:flowguard
func suppressedFunc(ok bool) int {
	var n int
	if ok {
		n = 1
	}

	return n
}
