// Copyright (c) 2025 The Parkcore Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import "github.com/openlot/parkcore/cmd/parkweb/command"

func main() {
	command.Execute()
}
