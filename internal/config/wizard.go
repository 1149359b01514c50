package config

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// InstanceSize is a preset resource sizing selectable in the wizard.
type InstanceSize struct {
	Cores    int
	MemoryMB int
}

func sizeOptions() []huh.Option[InstanceSize] {
	return []huh.Option[InstanceSize]{
		huh.NewOption("Small - 1 vCPU, 1GB RAM", InstanceSize{Cores: 1, MemoryMB: 1024}),
		huh.NewOption("Medium - 2 vCPU, 2GB RAM", InstanceSize{Cores: 2, MemoryMB: 2048}),
		huh.NewOption("Large - 4 vCPU, 4GB RAM", InstanceSize{Cores: 4, MemoryMB: 4096}),
		huh.NewOption("XLarge - 8 vCPU, 16GB RAM", InstanceSize{Cores: 8, MemoryMB: 16384}),
	}
}

// RunSizingWizard interactively collects resource sizing for the instance and
// writes the answers into cfg. It overrides whatever the config file set.
func RunSizingWizard(cfg *Config) error {
	size := InstanceSize{Cores: cfg.Instance.Cores, MemoryMB: cfg.Instance.MemoryMB}
	disk := strconv.Itoa(cfg.Instance.DiskGB)
	bridge := cfg.Instance.Bridge

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[InstanceSize]().
				Title("Instance size").
				Description("CPU and memory for the created container").
				Options(sizeOptions()...).
				Value(&size),
			huh.NewInput().
				Title("Root disk size (GB)").
				Value(&disk).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("enter a positive whole number of gigabytes")
					}
					return nil
				}),
			huh.NewInput().
				Title("Network bridge").
				Description("Host bridge the container's interface attaches to").
				Value(&bridge),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("sizing wizard aborted: %w", err)
	}

	cfg.Instance.Cores = size.Cores
	cfg.Instance.MemoryMB = size.MemoryMB
	cfg.Instance.DiskGB, _ = strconv.Atoi(disk)
	if bridge != "" {
		cfg.Instance.Bridge = bridge
	}
	return nil
}
