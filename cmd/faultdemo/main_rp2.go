// cmd/faultdemo/main_rp2.go
//go:build rp2040 || rp2350

package main

import (
	"time"

	"faultcore-go/fault"
)

// setup waits out USB CDC enumeration so early prints are not lost.
func setup() {
	time.Sleep(3 * time.Second)
}

func tune(*fault.Handler) {}
