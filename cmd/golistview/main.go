package main

import "github.com/dbsmedya/golistview/cmd/golistview/cmd"

func main() {
	cmd.Execute()
}
