package main

import "bnb-wallet/cmd/bnb-cli/cmd"

func main() {
	cmd.Execute()
}
