/*
Copyright © 2026 Tess Vale
*/
package main

import "github.com/tessvale/stablehand/cmd"

func main() {
	cmd.Execute()
}
