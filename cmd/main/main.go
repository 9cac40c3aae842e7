package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/term"

	"wlankeys/internal/config"
	"wlankeys/internal/logging"
	"wlankeys/internal/netsh"
	"wlankeys/internal/winapi/elevate"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// errRestarted means an elevated copy was started and this process should exit.
var errRestarted = errors.New("restarted as administrator")

type app struct {
	cfg         *config.Config
	logger      log.Logger
	client      *netsh.Client
	in          *bufio.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
	skipAdmin   bool
}

func main() {
	kp := kingpin.New("wlankeys", "View, export and delete saved WiFi profiles.")
	kp.Version(Version)
	kp.HelpFlag.Short('h')

	configPath := kp.Flag("config", "Path to the TOML config file.").String()
	logLevel := kp.Flag("log.level", "Log level: debug, info, warn, error.").String()
	netshPath := kp.Flag("netsh", "Path to netsh.exe.").String()
	skipAdmin := kp.Flag("skip-admin-check", "Do not require an elevated process.").Bool()

	tuiCmd := kp.Command("tui", "Interactive profile browser.").Default()

	listCmd := kp.Command("list", "List saved profiles with their keys.")
	listShow := listCmd.Flag("show-passwords", "Print keys in clear text.").Short('p').Bool()
	listJSON := listCmd.Flag("json", "Print the list as JSON.").Bool()

	showCmd := kp.Command("show", "Show every setting of a profile.")
	showName := showCmd.Arg("name", "Profile name.").Required().String()
	showClear := showCmd.Flag("clear", "Include the key in clear text.").Bool()

	deleteCmd := kp.Command("delete", "Delete saved profiles.")
	deleteNames := deleteCmd.Arg("names", "Profile names.").Required().Strings()
	deleteYes := deleteCmd.Flag("yes", "Do not ask for confirmation.").Short('y').Bool()

	deleteAllCmd := kp.Command("delete-all", "Delete every saved profile.")
	deleteAllYes := deleteAllCmd.Flag("yes", "Do not ask for confirmation.").Short('y').Bool()

	exportCmd := kp.Command("export", "Export profiles and keys to a file.")
	exportOut := exportCmd.Flag("output", "File to write; its extension picks the format.").Short('o').String()
	exportFormat := exportCmd.Flag("format", "csv, txt or json. Overrides the extension.").Enum("csv", "txt", "text", "json")

	connectCmd := kp.Command("connect", "Connect using a saved profile.")
	connectName := connectCmd.Arg("name", "Profile name.").Required().String()

	disconnectCmd := kp.Command("disconnect", "Disconnect from the current network.")
	statusCmd := kp.Command("status", "Show the current connection and internet reachability.")

	command := kingpin.MustParse(kp.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *netshPath != "" {
		cfg.NetshPath = *netshPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		cfg:         cfg,
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		skipAdmin:   *skipAdmin,
	}

	// The terminal UI owns the screen, so it logs to a file instead of stderr.
	if command == tuiCmd.FullCommand() {
		logger, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			fatal(err)
		}
		defer closer.Close()
		a.logger = logger
	} else {
		logger, err := logging.New(os.Stderr, cfg.LogLevel)
		if err != nil {
			fatal(err)
		}
		a.logger = logger
	}

	runner, err := newRunner(cfg)
	if err != nil {
		fatal(err)
	}
	a.client = netsh.NewClient(runner, log.With(a.logger, "component", "netsh"))
	level.Debug(a.logger).Log("msg", "starting", "command", command, "version", Version)

	switch command {
	case tuiCmd.FullCommand():
		err = a.runTUI(ctx)
	case listCmd.FullCommand():
		err = a.runList(ctx, *listShow, *listJSON)
	case showCmd.FullCommand():
		err = a.runShow(ctx, *showName, *showClear)
	case deleteCmd.FullCommand():
		err = a.runDelete(ctx, *deleteNames, *deleteYes)
	case deleteAllCmd.FullCommand():
		err = a.runDeleteAll(ctx, *deleteAllYes)
	case exportCmd.FullCommand():
		err = a.runExport(ctx, *exportOut, *exportFormat)
	case connectCmd.FullCommand():
		err = a.runConnect(ctx, *connectName)
	case disconnectCmd.FullCommand():
		err = a.runDisconnect(ctx)
	case statusCmd.FullCommand():
		err = a.runStatus(ctx)
	}

	if errors.Is(err, errRestarted) {
		return
	}
	if err != nil {
		stop()
		fatal(err)
	}
}

func newRunner(cfg *config.Config) (*netsh.Exec, error) {
	enc, err := netsh.CodePage(cfg.CodePage)
	if err != nil {
		return nil, err
	}
	return &netsh.Exec{Path: cfg.NetshPath, Encoding: enc, Timeout: cfg.CommandTimeout}, nil
}

// requireAdmin makes sure keys can be read. When the process is not elevated
// it offers to start an elevated copy.
func (a *app) requireAdmin() error {
	if !a.cfg.RequireAdmin || a.skipAdmin || elevate.IsAdmin() {
		return nil
	}
	if !a.interactive {
		return errors.New("administrator privileges are required to view and manage WiFi passwords; " +
			"run from an elevated prompt or pass --skip-admin-check")
	}
	ok, err := confirm(a.in, a.out,
		"This application requires administrator privileges to view and manage WiFi passwords.\n"+
			"Would you like to restart it as an administrator?")
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("administrator rights required")
	}
	if err := elevate.Restart(os.Args[1:]); err != nil {
		return err
	}
	level.Info(a.logger).Log("msg", "restarted elevated")
	return errRestarted
}

func fatal(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
