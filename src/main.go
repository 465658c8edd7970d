package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/eiannone/keyboard"

	"liftbank/src/config"
	"liftbank/src/controller"
	"liftbank/src/types"
)

func main() {
	configPath := flag.String("config", "liftbank.yaml", "Path to the yaml config file")
	envPath := flag.String("env", ".env", "Path to the .env override file")
	numCars := flag.Int("cars", 0, "Override the number of cars")
	numFloors := flag.Int("floors", 0, "Override the number of floors")
	flag.Parse()

	initLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Config load failed", "err", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(*envPath); err != nil {
		slog.Error("Env overlay failed", "err", err)
		os.Exit(1)
	}
	if *numCars > 0 {
		cfg.NumCars = *numCars
	}
	if *numFloors > 0 {
		cfg.NumFloors = *numFloors
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "err", err)
		os.Exit(1)
	}

	ctl := controller.New(cfg, nil)

	keysEvents, err := keyboard.GetKeys(10)
	if err != nil {
		slog.Error("Keyboard init failed", "err", err)
		os.Exit(1)
	}
	defer keyboard.Close()

	fmt.Println("liftbank: u<floor>/d<floor> hall call, c<car><floor> cab call,")
	fmt.Println("          e<car> emergency, o<car> out of service, r<car> reset, q quit")

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	var pending []rune
	for {
		select {
		case <-ticker.C:
			ctl.Tick()
			printStatus(ctl)
		case ev := <-keysEvents:
			if ev.Err != nil {
				slog.Error("Keyboard read failed", "err", ev.Err)
				os.Exit(1)
			}
			if ev.Key == keyboard.KeyEsc || ev.Rune == 'q' {
				fmt.Println()
				return
			}
			pending = handleKey(ctl, pending, ev.Rune)
		}
	}
}

// handleKey accumulates one command: a letter followed by one digit per
// argument. Unknown input resets the buffer.
func handleKey(ctl *controller.Controller, pending []rune, r rune) []rune {
	pending = append(pending, r)
	cmd := pending[0]

	want := 1
	if cmd == 'c' {
		want = 2
	}
	if len(pending)-1 < want {
		return pending
	}

	args := make([]int, 0, want)
	for _, d := range pending[1:] {
		if d < '0' || d > '9' {
			return nil
		}
		args = append(args, int(d-'0'))
	}

	var err error
	switch cmd {
	case 'u':
		_, err = ctl.RequestElevator(args[0], types.DirUp)
	case 'd':
		_, err = ctl.RequestElevator(args[0], types.DirDown)
	case 'c':
		err = ctl.SelectDestination(args[0], args[1])
	case 'e':
		err = ctl.SetEmergency(args[0])
	case 'o':
		err = ctl.SetOutOfService(args[0])
	case 'r':
		err = ctl.ResetCar(args[0])
	}
	if err != nil {
		slog.Warn("Command rejected", "cmd", string(pending), "err", err)
	}
	return nil
}

func printStatus(ctl *controller.Controller) {
	parts := make([]string, 0, 8)
	for _, st := range ctl.Snapshot() {
		parts = append(parts, fmt.Sprintf("%d:[%d %s %s %s]",
			st.ID, st.Floor, st.Mode, st.Direction, st.Door))
	}
	service := "OK"
	if !ctl.InService() {
		service = "NO SERVICE"
	}
	fmt.Printf("\r%s | pending=%d | %s   ", strings.Join(parts, " "), ctl.PendingRequests(), service)
}

// initLogger sets up global logging with compact time format and file:line
// source, mirrored to liftbank.log so the status line stays readable.
func initLogger() {
	logFile, err := os.OpenFile("liftbank.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		panic(err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)

	handler := slog.NewTextHandler(multiWriter, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(handler))
}
