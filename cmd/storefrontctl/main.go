package main

import "storefront_backend/cmd/storefrontctl/commands"

func main() {
	commands.Execute()
}
