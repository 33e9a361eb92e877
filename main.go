package main

import "github.com/upistack/upi-gateway/cmd"

func main() {
	cmd.Execute()
}
