package main

import (
	"fmt"

	"github.com/swiftlabs/dataqueue"
	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

func newEngine(cfg Config) *dataqueue.Engine {
	return dataqueue.NewEngine(fsal.NewReal(), dataqueue.EngineOptions{
		QueueRoot:       cfg.QueueRoot,
		HandleTableSize: cfg.HandleTableSize,
		TagWidth:        cfg.LutWidth,
	})
}

func parseAccess(s string) (dataqueue.Access, error) {
	switch s {
	case "ro":
		return dataqueue.ReadOnly, nil
	case "wo":
		return dataqueue.WriteOnly, nil
	case "rw", "":
		return dataqueue.ReadWrite, nil
	default:
		return 0, fmt.Errorf("%w: got %q", errInvalidAccessFlag, s)
	}
}
