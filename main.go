package main

import "snipe-netbox-sync/cmd"

func main() {
	cmd.Execute()
}
