package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/quartetsim/quartet/pkg/boundary"
	"github.com/quartetsim/quartet/pkg/device"
	"github.com/quartetsim/quartet/pkg/material"
)

var (
	cfgFile        string
	scriptPath     string
	reportFile     string
	watchChanges   bool
	strictOverlaps bool
)

// buildCmd assembles the device and prints a summary.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble the device geometry and summarize it",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, cfgUsed, err := loadConfig(cfgFile, scriptPath, cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		bctx := device.NewBuildContext()
		bctx.Placements.FatalOverlaps(strictOverlaps)
		asm, err := device.New(bctx)
		if err != nil {
			logrus.Fatalf("assembler: %v", err)
		}

		if _, err := asm.Build(cfg); err != nil {
			logrus.Fatalf("build: %v", err)
		}
		printResult(os.Stdout, asm.Result(), bctx.Registry)

		if reportFile != "" {
			if err := writeReport(reportFile, asm.Result(), bctx.Registry); err != nil {
				logrus.Fatalf("report: %v", err)
			}
			logrus.Infof("Report written to %s", reportFile)
		}

		if watchChanges {
			if err := watchAndRebuild(asm, cfgUsed, cmd.Flags()); err != nil {
				logrus.Fatalf("watch: %v", err)
			}
		}
	},
}

// addSelectionFlags registers the device-selection flags shared by
// build and export. Defaults mirror device.DefaultConfig; only flags
// the user actually set override the config file and script layers.
func addSelectionFlags(cmd *cobra.Command) {
	def := device.DefaultConfig()
	cmd.Flags().StringVar(&cfgFile, "config", "", "Config file (default quartet.yaml)")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Device script evaluated for the base configuration")
	cmd.Flags().Bool("housing", def.UseQubitHousing, "Build the copper qubit housing")
	cmd.Flags().Bool("ground-plane", def.UseGroundPlane, "Build the niobium ground plane")
	cmd.Flags().Bool("transmission-line", def.UseTransmissionLine, "Build the transmission line")
	cmd.Flags().Bool("resonators", def.UseResonatorAssembly, "Build the resonator assemblies")
	cmd.Flags().Bool("flux-lines", def.UseFluxLines, "Build the flux lines")
	cmd.Flags().Bool("qubit-elements", def.UseQubitElements, "Build the qubit elements")
	cmd.Flags().Int("resonator-count", def.ResonatorCount, "Number of resonator assemblies")
	cmd.Flags().String("flux-variant", def.FluxLineVariant, "Flux-line variant (curve, straight, corner)")
}

// displayRoles fixes the row order of the role summary.
var displayRoles = []material.Role{
	material.RoleSubstrate,
	material.RoleConductor,
	material.RoleVacuum,
	material.RoleHousingMetal,
	material.RoleUnknown,
}

// printResult renders the role and interface summaries.
func printResult(w io.Writer, res device.Result, reg *boundary.Registry) {
	fmt.Fprintf(w, "Generation %s: %s, %d volumes, %d interfaces\n",
		res.Generation, res.State, res.Volumes, len(res.Interfaces))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Role", "Volumes"})
	for _, role := range displayRoles {
		if n := res.ByRole[role]; n > 0 {
			t.AppendRow(table.Row{role.String(), n})
		}
	}
	t.Render()

	if len(res.Interfaces) == 0 {
		return
	}
	counts := make(map[boundary.PropertyID]int)
	for _, in := range res.Interfaces {
		counts[in.Property]++
	}
	ids := make([]boundary.PropertyID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	it := table.NewWriter()
	it.SetOutputMirror(w)
	it.SetStyle(table.StyleLight)
	it.AppendHeader(table.Row{"Boundary Property", "Interfaces"})
	for _, id := range ids {
		it.AppendRow(table.Row{propertyName(reg, id), counts[id]})
	}
	it.Render()
}

// propertyName resolves a property id for display.
func propertyName(reg *boundary.Registry, id boundary.PropertyID) string {
	if p := reg.Get(id); p != nil {
		return p.Name
	}
	return "none"
}

// buildReport is the yaml report payload.
type buildReport struct {
	Generation string            `yaml:"generation"`
	State      string            `yaml:"state"`
	Volumes    int               `yaml:"volumes"`
	ByRole     map[string]int    `yaml:"byRole"`
	Interfaces []interfaceReport `yaml:"interfaces"`
}

// interfaceReport is one classified boundary in the report.
type interfaceReport struct {
	Name     string `yaml:"name"`
	Volume   string `yaml:"volume"`
	Property string `yaml:"property"`
}

func writeReport(path string, res device.Result, reg *boundary.Registry) error {
	rep := buildReport{
		Generation: res.Generation,
		State:      res.State.String(),
		Volumes:    res.Volumes,
		ByRole:     make(map[string]int, len(res.ByRole)),
		Interfaces: make([]interfaceReport, 0, len(res.Interfaces)),
	}
	for role, n := range res.ByRole {
		rep.ByRole[role.String()] = n
	}
	for _, in := range res.Interfaces {
		rep.Interfaces = append(rep.Interfaces, interfaceReport{
			Name:     in.Name,
			Volume:   in.VolumeB.Name,
			Property: propertyName(reg, in.Property),
		})
	}
	data, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// watchAndRebuild rebuilds the device whenever the config file or
// device script changes. Parent directories are watched rather than
// the files themselves so editors that replace files on save do not
// break the watch.
func watchAndRebuild(asm *device.Assembler, cfgUsed string, flags *pflag.FlagSet) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range []string{cfgUsed, scriptPath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	if len(watched) == 0 {
		return fmt.Errorf("nothing to watch: no config file or script in use")
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for p := range watched {
		logrus.Infof("Watching %s", p)
	}
	logrus.Info("Press Ctrl+C to stop")

	var mu sync.Mutex
	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}

			// Debounce rebuilds
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				mu.Lock()
				defer mu.Unlock()
				logrus.Infof("Change detected: %s", filepath.Base(event.Name))
				cfg, _, err := loadConfig(cfgFile, scriptPath, flags)
				if err != nil {
					logrus.Errorf("Reload error: %v", err)
					return
				}
				if _, err := asm.Build(cfg); err != nil {
					logrus.Errorf("Rebuild error: %v", err)
					return
				}
				res := asm.Result()
				logrus.Infof("Generation %s: %d volumes, %d interfaces",
					res.Generation, res.Volumes, len(res.Interfaces))
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Errorf("Watcher error: %v", err)
		}
	}
}

func init() {
	addSelectionFlags(buildCmd)
	buildCmd.Flags().StringVar(&reportFile, "report", "", "Write a yaml build report to this file")
	buildCmd.Flags().BoolVar(&watchChanges, "watch", false, "Rebuild when the config file or script changes")
	buildCmd.Flags().BoolVar(&strictOverlaps, "strict-overlaps", false, "Treat overlapping sibling volumes as fatal")
	rootCmd.AddCommand(buildCmd)
}
