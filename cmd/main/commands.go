package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/term"

	"wlankeys/internal/export"
	"wlankeys/internal/probe"
	"wlankeys/internal/profile"
	"wlankeys/internal/ui"
	"wlankeys/internal/winapi/instance"
	"wlankeys/internal/winapi/wlan"
)

func (a *app) loader() *profile.Loader {
	opts := []profile.Option{profile.WithLogger(log.With(a.logger, "component", "loader"))}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		opts = append(opts, profile.WithProgress(func(done, total int, name string) {
			fmt.Fprintf(a.errOut, "\r\033[KReading profile %d/%d: %s", done, total, name)
			if done == total {
				fmt.Fprint(a.errOut, "\r\033[K")
			}
		}))
	}
	return profile.NewLoader(a.client, opts...)
}

func (a *app) runTUI(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	lock, err := instance.Acquire(instance.DefaultName)
	if err != nil {
		return err
	}
	defer lock.Release()

	format, err := export.ParseFormat(a.cfg.Export.Format)
	if err != nil {
		return err
	}
	return ui.Run(ctx, ui.Deps{
		Loader:        profile.NewLoader(a.client, profile.WithLogger(log.With(a.logger, "component", "loader"))),
		Deleter:       a.client,
		Logger:        a.logger,
		ExportDir:     a.cfg.Export.Dir,
		ExportFormat:  format,
		Mask:          a.cfg.Mask(),
		ShowPasswords: a.cfg.Display.ShowPasswords,
		Version:       Version,
	})
}

func (a *app) runList(ctx context.Context, showPasswords, asJSON bool) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	profiles, err := a.loader().Load(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		if !showPasswords && !a.cfg.Display.ShowPasswords {
			for i := range profiles {
				profiles[i].Password = profile.Mask(profiles[i].Password, a.cfg.Mask())
			}
		}
		if profiles == nil {
			profiles = []profile.Profile{}
		}
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	}

	if len(profiles) == 0 {
		printf(a.out, "No WiFi profiles found.\n")
		return nil
	}
	header := color.New(color.Bold, color.FgCyan).SprintFunc()
	if err := export.Table(a.out, profiles, export.TableOptions{
		Reveal: showPasswords || a.cfg.Display.ShowPasswords,
		Mask:   a.cfg.Mask(),
		Header: func(s string) string { return header(s) },
	}); err != nil {
		return err
	}
	printf(a.out, "\nLoaded %d WiFi profiles\n", len(profiles))
	return nil
}

func (a *app) runShow(ctx context.Context, name string, clear bool) error {
	if clear {
		if err := a.requireAdmin(); err != nil {
			return err
		}
	}
	fields, err := a.client.Details(ctx, name, clear)
	if err != nil {
		return err
	}

	section := color.New(color.Bold).SprintFunc()
	current := "\x00"
	for _, f := range fields {
		if f.Section != current {
			current = f.Section
			if current != "" {
				printf(a.out, "\n%s\n", section(current))
			}
		}
		printf(a.out, "  %-24s : %s\n", f.Label, f.Value)
	}
	return nil
}

func (a *app) runDelete(ctx context.Context, names []string, yes bool) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	ok, err := a.mustConfirm(yes, fmt.Sprintf(
		"Are you sure you want to delete %d WiFi profile(s)? This action cannot be undone.", len(names)))
	if err != nil || !ok {
		return err
	}
	if err := profile.DeleteAll(ctx, a.client, names); err != nil {
		return err
	}
	printf(a.out, "Deleted %d profile(s)\n", len(names))
	return nil
}

func (a *app) runDeleteAll(ctx context.Context, yes bool) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	names, err := a.client.Profiles(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		printf(a.out, "No WiFi profiles to delete.\n")
		return nil
	}
	ok, err := a.mustConfirm(yes,
		fmt.Sprintf("WARNING: This will delete ALL %d saved WiFi profiles!\n"+
			"You will need to re-enter passwords for all networks.\n"+
			"Are you absolutely sure you want to continue?", len(names)),
		"This is your final confirmation. Permanently delete all WiFi profiles?")
	if err != nil || !ok {
		return err
	}
	if err := profile.DeleteAll(ctx, a.client, names); err != nil {
		return err
	}
	printf(a.out, "All WiFi profiles have been deleted successfully.\n")
	return nil
}

func (a *app) runExport(ctx context.Context, output, formatName string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	now := time.Now()

	var format export.Format
	switch {
	case formatName != "":
		f, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		format = f
	case output != "":
		format = export.FormatFromPath(output)
	default:
		f, err := export.ParseFormat(a.cfg.Export.Format)
		if err != nil {
			return err
		}
		format = f
	}
	if output == "" {
		output = filepath.Join(a.cfg.Export.Dir, export.DefaultFileName(now)+"."+string(format))
	}

	profiles, err := a.loader().Load(ctx)
	if err != nil {
		return err
	}
	if err := export.WriteFile(output, format, profiles, now); err != nil {
		return err
	}
	level.Info(a.logger).Log("msg", "exported profiles", "path", output, "count", len(profiles))
	printf(a.out, "WiFi profiles exported successfully to:\n%s\n", output)
	return nil
}

func (a *app) runConnect(ctx context.Context, name string) error {
	h, err := wlan.Open()
	if err != nil && !errors.Is(err, wlan.ErrUnsupported) {
		return err
	}
	if h != nil {
		defer h.Close()
		if cur, err := h.Current(); err == nil && cur.Connected && cur.Profile != name && cur.SSID != name {
			level.Info(a.logger).Log("msg", "disconnecting from current network", "ssid", cur.SSID)
			if err := a.client.Disconnect(ctx); err != nil {
				return err
			}
			if err := wlan.WaitDisconnected(ctx, h, a.cfg.Connect.Wait, a.cfg.Connect.PollInterval); err != nil {
				return err
			}
		}
	}

	if err := a.client.Connect(ctx, name); err != nil {
		return err
	}
	if h == nil {
		printf(a.out, "Connection to %q requested\n", name)
		return nil
	}

	conn, err := wlan.WaitConnected(ctx, h, name, a.cfg.Connect.Wait, a.cfg.Connect.PollInterval)
	if err != nil {
		return err
	}
	printf(a.out, "Connected to %s (signal %d%%)\n", conn.SSID, conn.SignalQuality)
	return a.reportProbe(ctx)
}

func (a *app) runDisconnect(ctx context.Context) error {
	if err := a.client.Disconnect(ctx); err != nil {
		return err
	}
	h, err := wlan.Open()
	if err != nil && !errors.Is(err, wlan.ErrUnsupported) {
		return err
	}
	if h != nil {
		defer h.Close()
		if err := wlan.WaitDisconnected(ctx, h, a.cfg.Connect.Wait, a.cfg.Connect.PollInterval); err != nil {
			return err
		}
	}
	printf(a.out, "Disconnected\n")
	return nil
}

func (a *app) runStatus(ctx context.Context) error {
	h, err := wlan.Open()
	if err != nil {
		return err
	}
	defer h.Close()

	conn, err := h.Current()
	if err != nil {
		return err
	}
	printf(a.out, "Interface: %s\n", conn.Interface)
	if mac, err := wlan.LocalMAC(); err == nil {
		printf(a.out, "MAC:       %s\n", mac)
	}
	if !conn.Connected {
		printf(a.out, "State:     disconnected\n")
		return nil
	}
	printf(a.out, "State:     connected\nSSID:      %s\nProfile:   %s\nSignal:    %d%%\n",
		conn.SSID, conn.Profile, conn.SignalQuality)
	return a.reportProbe(ctx)
}

func (a *app) reportProbe(ctx context.Context) error {
	if !a.cfg.Probe.Enabled {
		return nil
	}
	p := probe.New(a.cfg.Probe.URL, a.cfg.Probe.Expect, a.cfg.Probe.Timeout)
	res, err := p.Check(ctx)
	if err != nil {
		level.Warn(a.logger).Log("msg", "connectivity probe failed", "err", err)
		printf(a.out, "Internet:  %s\n", color.YellowString("unreachable"))
		return nil
	}
	if res.Online {
		printf(a.out, "Internet:  %s (%s)\n", color.GreenString("online"), res.Latency.Round(time.Millisecond))
		return nil
	}
	printf(a.out, "Internet:  %s (%s)\n", color.YellowString("limited"), res.Reason)
	return nil
}
