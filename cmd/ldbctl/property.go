package main

import (
	"fmt"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
)

func property(cfg *configFlags, conf *propertyConfig) error {
	return withDatabase(cfg, func(db *database.DB) error {
		value, err := db.Property(conf.Name)
		if err != nil {
			return err
		}
		fmt.Println(string(value))
		return nil
	})
}

func estimate(cfg *configFlags, conf *estimateConfig) error {
	start, err := decodeOptional(cfg, conf.Start)
	if err != nil {
		return err
	}
	limit, err := decodeOptional(cfg, conf.Limit)
	if err != nil {
		return err
	}
	return withDatabase(cfg, func(db *database.DB) error {
		size, err := db.EstimateSize(start, limit)
		if err != nil {
			return err
		}
		fmt.Println(size)
		return nil
	})
}

func compact(cfg *configFlags, conf *compactConfig) error {
	start, err := decodeOptional(cfg, conf.Start)
	if err != nil {
		return err
	}
	limit, err := decodeOptional(cfg, conf.Limit)
	if err != nil {
		return err
	}
	return withDatabase(cfg, func(db *database.DB) error {
		return db.Compact(start, limit)
	})
}
