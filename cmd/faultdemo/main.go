// cmd/faultdemo/main.go

// faultdemo boots the fault subsystem on the selected board, heartbeats,
// then fails an assertion on the fourth beat. On hardware the diagnostic
// message appears on the board's serial channel and the indicator pin
// throbs; hosted builds mirror the wire to stdout.
package main

import (
	"time"

	"faultcore-go/boards"
	"faultcore-go/fault"
	"faultcore-go/platform"
)

func main() {
	setup()

	h := fault.New(platform.Default(), boards.Selected)
	tune(h)
	fault.Install(h)

	println("[demo] board:", boards.Selected.Name)
	println("[demo] heartbeat; the fourth beat fails its assertion")

	beats := 0
	ticker := time.NewTicker(500 * time.Millisecond)
	for range ticker.C {
		beats++
		println("[demo] beat", beats)
		fault.Assert(beats < 4, "beats < 4")
	}
}
