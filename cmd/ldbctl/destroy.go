package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kaspanet/ldbview/infrastructure/db/database"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

func repair(cfg *configFlags) error {
	options, err := cfg.ResolveOptions()
	if err != nil {
		return err
	}
	return database.Repair(cfg.DBPath, options)
}

func destroy(cfg *configFlags, conf *destroyConfig) error {
	options, err := cfg.ResolveOptions()
	if err != nil {
		return err
	}

	if !conf.Force {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.Errorf("refusing to destroy %s without confirmation, use --force", &cfg.DBFlags)
		}
		confirmed, err := confirm(fmt.Sprintf("Destroy the %s? [y/N] ", &cfg.DBFlags))
		if err != nil {
			return err
		}
		if !confirmed {
			log.Infof("Destroy of %s aborted", &cfg.DBFlags)
			return nil
		}
	}
	return database.Destroy(cfg.DBPath, options)
}

func confirm(prompt string) (bool, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, errors.WithStack(err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
