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
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"k8s.io/klog"
	klog2 "k8s.io/klog/v2"
)

func zapLog() {
	log := zap.NewNop()

	log.Fatal("") // want "no return"
	log.Panic("") // want "no return"

	sugaredlog := log.Sugar()

	sugaredlog.Fatal()    // want "no return"
	sugaredlog.Fatalf("") // want "no return"
	sugaredlog.Fatalln()  // want "no return"
	sugaredlog.Fatalw("") // want "no return"
	sugaredlog.Panic()    // want "no return"
	sugaredlog.Panicf("") // want "no return"
	sugaredlog.Panicln()  // want "no return"
	sugaredlog.Panicw("") // want "no return"
}

func logrusLog() {
	log := logrus.New()

	log.Exit(1)    // want "no return"
	log.Panic()    // want "no return"
	log.Panicf("") // want "no return"
	log.Panicln()  // want "no return"

	entry := logrus.NewEntry(log)

	entry.Panic()    // want "no return"
	entry.Panicf("") // want "no return"
	entry.Panicln()  // want "no return"
}

func kLog() {
	klog.Exit()        // want "no return"
	klog.ExitDepth(0)  // want "no return"
	klog.Exitf("")     // want "no return"
	klog.Exitln()      // want "no return"
	klog.Fatal()       // want "no return"
	klog.FatalDepth(0) // want "no return"
	klog.Fatalf("")    // want "no return"
	klog.Fatalln()     // want "no return"

	klog2.Exit()        // want "no return"
	klog2.ExitDepth(0)  // want "no return"
	klog2.Exitf("")     // want "no return"
	klog2.Exitln()      // want "no return"
	klog2.Fatal()       // want "no return"
	klog2.FatalDepth(0) // want "no return"
	klog2.Fatalf("")    // want "no return"
	klog2.Fatalln()     // want "no return"
}
