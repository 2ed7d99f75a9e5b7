// SPDX-License-Identifier: MPL-2.0

package main

import cmd "stagehand-cli/cmd/stagehand"

func main() {
	cmd.Execute()
}
