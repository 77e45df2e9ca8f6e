package main

import (
	"os"

	"github.com/minzf581/crypto-intel-engine-sub004/cmd/deploycheck/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
