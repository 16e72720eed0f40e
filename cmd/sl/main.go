package main

import "stressless/cmd/sl/root"

func main() {
	root.Execute()
}
