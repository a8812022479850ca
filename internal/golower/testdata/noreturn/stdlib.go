// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

package noreturn

import (
	"log"
	"os"
	"runtime"
	"syscall"
	"testing"
)

func logFatal() {
	log.Fatal() // want "no return"
}

func builtinPanic() {
	panic("") // want "no return"
}

func logFatalf() {
	l := log.Default()

	l.Fatalf("") // want "no return"
}

func osExit() {
	os.Exit(1) // want "no return"
}

func syscallExit() {
	syscall.Exit(1) // want "no return"
}

func runtimeGoexit() {
	runtime.Goexit() // want "no return"
}

func normalReturn() {
	println("hello") // OK
}

func funcReturn() {
	panic := log.Fatal

	panic("hello") // OK
}

func testingFatal(t *testing.T) {
	t.Fatal()   // want "no return"
	t.SkipNow() // want "no return"
}

func genericPanic() {
	fail[int]() // OK
}

func fail[T any]() {
	panic("fail") // want "no return"
}
