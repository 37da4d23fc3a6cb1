package main

import (
	"fmt"
	"strconv"
	"time"
)

// nowFunc is stubbed in tests that need a fixed clock.
var nowFunc = time.Now

// parseIDs converts positional arguments into transaction identities.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
