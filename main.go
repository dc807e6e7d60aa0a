package main

import (
	"context"
	"os"

	"blogapi/service"
)

func main() {
	if err := service.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
