package main

import (
	"context"
	"log"

	"github.com/myjhye/shop/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("shop API terminated: %v", err)
	}
}
