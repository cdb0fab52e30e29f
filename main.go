// main.go
package main

import "movie-feedback/cmd"

func main() {
	cmd.Execute()
}
