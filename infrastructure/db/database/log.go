package database

import (
	"github.com/kaspanet/ldbview/infrastructure/logger"
)

var log = logger.RegisterSubSystem("DTBS")
