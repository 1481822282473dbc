package main

import (
	"context"
	"os"
)

func main() {
	Run(context.Background(), os.Args[1:], nil)
}
