// Copyright (c) 2013-2020 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package miniscript

import "go.uber.org/zap"

// log is the package-level logger, nil-safe via zap.NewNop() until a
// caller installs one with SetLogger.
var log = zap.NewNop()

// SetLogger installs the *zap.Logger used for diagnostic Debug/Warn
// records emitted at sanity failures and satisfier discard points. Passing
// nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		log = zap.NewNop()
		return
	}
	log = l
}
