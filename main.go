// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/pfname/pfname/cmd/pfname"

func main() {
	cmd.Execute()
}
