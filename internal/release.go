// Copyright 2026, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !debug && !gofuzz

package internal

// Debug enables extra invariant checks in the coding packages.
// GoFuzz reports whether the package was built for fuzzing.
const (
	Debug  = false
	GoFuzz = false
)
