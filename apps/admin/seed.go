package main

import (
	"context"

	"github.com/tshimanga/elimu/storage/database"
)

var seedFunc = database.Seed // mockable

func (cli *commandLine) seed() error {
	return seedFunc(context.Background(), cli.db)
}
