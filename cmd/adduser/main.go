package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/filesmanager/internal/adduser"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	if err := adduser.Run(ctx, cfg, adduser.ParseEmail(os.Args[1:]), os.Stdin, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

}
