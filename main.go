// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/cookdoc/cookdoc/cmd/cookdoc"

func main() {
	cmd.Execute()
}
