package main

import (
	"fmt"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

func get(cfg *configFlags, conf *getConfig) error {
	key, err := decode(cfg, conf.Key)
	if err != nil {
		return err
	}
	return withDatabase(cfg, func(db *database.DB) error {
		value, err := db.Get(key, nil)
		if err != nil {
			return err
		}
		fmt.Println(encode(cfg, value))
		return nil
	})
}
