package ldb

import (
	"github.com/kaspanet/ldbview/infrastructure/logger"
)

var log = logger.RegisterSubSystem("LVDB")
