// cmd/faultmon/main.go

// faultmon tails a device's diagnostic serial channel, decodes fault report
// lines, and either streams them to stdout or serves an interactive shell
// over the monitor's history.
//
// Usage:
//
//	faultmon -config faultmon.yaml
//	faultmon -config faultmon.yaml -shell
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"faultcore-go/monitor"
	"faultcore-go/types"
)

var (
	configPath = "faultmon.yaml"
	shellMode  bool
)

func init() {
	if val := os.Getenv("FAULTMON_CONFIG"); val != "" {
		configPath = val
	}
	flag.StringVar(&configPath, "config", configPath, "Monitor configuration file.")
	flag.BoolVar(&shellMode, "shell", shellMode, "Interactive shell instead of streaming output.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := monitor.Load(configPath)
	if err != nil {
		glog.Exitf("load config: %v", err)
	}
	m, err := monitor.New(cfg)
	if err != nil {
		glog.Exitf("monitor: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if shellMode {
		runShell(ctx, m)
		return
	}
	watch(ctx, m)
}

// watch streams fault and port-state events until interrupted.
func watch(ctx context.Context, m *monitor.Monitor) {
	faults := m.Events().Subscribe(monitor.TopicFault)
	states := m.Events().Subscribe(monitor.TopicPortState)

	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	for {
		select {
		case msg := <-faults.Channel():
			fmt.Println(formatEvent(msg.Payload.(types.FaultEvent)))
		case msg := <-states.Channel():
			st := msg.Payload.(monitor.PortState)
			if st.Error != "" {
				glog.Infof("port %s: %s", st.Link, st.Error)
			} else {
				glog.Infof("port %s", st.Link)
			}
		case err := <-done:
			if err != nil && ctx.Err() == nil {
				glog.Exitf("monitor stopped: %v", err)
			}
			return
		}
	}
}

// runShell serves last/history/stats against a monitor running in the
// background.
func runShell(ctx context.Context, m *monitor.Monitor) {
	go func() {
		if err := m.Run(ctx); err != nil && ctx.Err() == nil {
			glog.Warningf("monitor stopped: %v", err)
		}
	}()

	sh := ishell.New()
	sh.Println("faultmon shell; 'help' lists commands")
	sh.SetPrompt("faultmon > ")

	sh.AddCmd(&ishell.Cmd{
		Name:    "last",
		Aliases: []string{"l"},
		Help:    "show the most recent fault",
		Func: func(c *ishell.Context) {
			ev, ok := m.Events().Last()
			if !ok {
				c.Println("no faults recorded")
				return
			}
			c.Println(formatEvent(ev))
		},
	})
	sh.AddCmd(&ishell.Cmd{
		Name:    "history",
		Aliases: []string{"h"},
		Help:    "list recorded faults, oldest first",
		Func: func(c *ishell.Context) {
			hist := m.Events().History()
			if len(hist) == 0 {
				c.Println("no faults recorded")
				return
			}
			for _, ev := range hist {
				c.Println(formatEvent(ev))
			}
		},
	})
	sh.AddCmd(&ishell.Cmd{
		Name: "stats",
		Help: "monitor counters as JSON",
		Func: func(c *ishell.Context) {
			out, err := json.Marshal(m.Stats())
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(string(out))
		},
	})

	sh.Run()
}

func formatEvent(ev types.FaultEvent) string {
	return fmt.Sprintf("%s %s %s", ev.ReceivedAt.Format("15:04:05.000"), ev.Report.Kind, ev.Raw)
}
