package main

import (
	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

func put(cfg *configFlags, conf *putConfig) error {
	key, err := decode(cfg, conf.Key)
	if err != nil {
		return err
	}
	value, err := decode(cfg, conf.Value)
	if err != nil {
		return err
	}
	return withDatabase(cfg, func(db *database.DB) error {
		return db.Put(key, value, writeOptions(cfg))
	})
}

func del(cfg *configFlags, conf *deleteConfig) error {
	key, err := decode(cfg, conf.Key)
	if err != nil {
		return err
	}
	return withDatabase(cfg, func(db *database.DB) error {
		return db.Delete(key, writeOptions(cfg))
	})
}
