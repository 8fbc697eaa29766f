package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rkjdid/util"
	"github.com/solar3s/gotacx/brake"
)

var rootConfig *Config

var (
	device  = flag.String("dev", "", "path to serial port, if empty it will be searched automatically")
	rootDir = flag.String("root", "", "path to gotacx's main directory (defaults to executable path)")
	cfgPath = flag.String("config", "", "path to config (defaults to <root>/config.toml)")
	mode    = flag.String("mode", "", "brake mode, overrides config (Off, Ergo, Slope, Calibrate)")
	noRamp  = flag.Bool("noramp", false, "keep targets constant")
	verbose = flag.Bool("v", false, "higher verbosity")
	version = flag.Bool("version", false, "print version & exit")
)

// setup parses flags and loads or creates the config file.
func setup() {
	flag.Parse()

	// print version & exit
	if *version {
		fmt.Printf("gotacx %s\n", Version)
		os.Exit(0)
	}

	if *rootDir == "" {
		exe, err := os.Executable()
		if err != nil {
			log.Fatalf("couldn't get path to executable: %s", err)
		}
		*rootDir = filepath.Dir(exe)
	}
	err := os.MkdirAll(*rootDir, 0755)
	if err != nil {
		log.Fatalf("couldn't mkdir \"%s\": %s", *rootDir, err)
	}

	if *cfgPath == "" {
		*cfgPath = filepath.Join(*rootDir, "config.toml")
	}

	rootConfig, err = loadConfig(*cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("error reading config \"%s\": %s", *cfgPath, err)
		}
		cfg := DefaultConfig
		rootConfig = &cfg
		err = util.WriteTomlFile(rootConfig, *cfgPath)
		if err != nil {
			log.Fatalf("error creating config \"%s\": %s", *cfgPath, err)
		}
		log.Printf("created new config file \"%s\"", *cfgPath)
	}

	if *verbose {
		rootConfig.Verbose = true
	}
	if *device != "" {
		rootConfig.Device = *device
	}
	if *mode != "" {
		err = rootConfig.Brake.Targets.Mode.UnmarshalText([]byte(*mode))
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("using config file: %s", *cfgPath)
}

// dial opens the configured device, or probes every serial port if there's none.
func dial() (*brake.SerialConnection, error) {
	if rootConfig.Device == "" {
		conn, _, err := brake.FindSerial(&rootConfig.Serial, &rootConfig.Brake)
		return conn, err
	}
	conn, err := brake.OpenPortName(rootConfig.Device, &rootConfig.Serial)
	if err != nil {
		return nil, err
	}
	conn.Start()
	log.Printf("using \"%s\"", rootConfig.Device)
	return conn, nil
}

func main() {
	setup()

	conn, err := dial()
	if err != nil {
		log.Fatal("error connecting to brake: ", err)
	}

	b := brake.NewBrake(conn, &rootConfig.Brake)
	var policy brake.TargetPolicy
	if !*noRamp {
		policy = brake.NewRamp(&rootConfig.Ramp)
	}

	watcher := brake.NewWatcher(b, func() (brake.Transport, error) {
		conn, err := dial()
		if err != nil {
			return nil, err
		}
		return conn, nil
	}, &rootConfig.Watcher)
	watcher.WatchConn()

	log.Printf("starting control loop in %s mode (interval: %s)",
		rootConfig.Brake.Targets.Mode, time.Duration(rootConfig.Brake.Interval))
	runErr := b.Start(policy, func(ev brake.Event) {
		log.Println(formatEvent(ev, rootConfig.Verbose))
	})

	log.Println("Press <Ctrl-C> to quit")

	trap := make(chan os.Signal, 1)
	signal.Notify(trap, os.Interrupt)
	select {
	case <-trap:
		fmt.Println()
		log.Println("quit received...")
	case err = <-runErr:
		log.Println("control loop is out:", err)
	}

	cleanExit := make(chan struct{})
	go func() {
		watcher.Stop()
		b.Stop()
		b.Close()
		close(cleanExit)
	}()
	select {
	case <-time.After(time.Second * 10):
		log.Panicln("no clean exit after 10sec")
	case <-cleanExit:
	}
	if err != nil {
		os.Exit(1)
	}
}
