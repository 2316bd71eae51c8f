package main

import (
	"github.com/baselabs/baseutils/cmd"
)

func main() {
	cmd.Execute()
}
