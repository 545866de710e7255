package main

import (
	"github.com/thirdweb-dev/token-streams/cmd"
)

func main() {
	cmd.Execute()
}
