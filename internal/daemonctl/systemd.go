package daemonctl

import (
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

const unitFileName = "tamerd.service"

const systemdUnitTemplate = `[Unit]
Description=%s
After=local-fs.target

[Service]
Type=simple
ExecStart=%s run%s
Restart=on-failure
RestartSec=5

[Install]
WantedBy=%s
`

// UnitOptions parameterizes systemd unit rendering.
type UnitOptions struct {
	Description    string
	ExecutablePath string
	ConfigPath     string
	System         bool
}

// RenderUnit produces the systemd unit file content for the daemon.
func RenderUnit(opts UnitOptions) string {
	description := strings.TrimSpace(opts.Description)
	if description == "" {
		description = "Process priority taming service"
	}
	extraArgs := ""
	if cfg := strings.TrimSpace(opts.ConfigPath); cfg != "" {
		extraArgs = " --config " + cfg
	}
	target := "default.target"
	if opts.System {
		target = "multi-user.target"
	}
	return fmt.Sprintf(systemdUnitTemplate, description, opts.ExecutablePath, extraArgs, target)
}

// UnitPath resolves where the unit file is written. System mode targets
// /etc/systemd/system; user mode targets ~/.config/systemd/user.
func UnitPath(system bool) (string, error) {
	if system {
		return filepath.Join("/etc/systemd/system", unitFileName), nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("get current user: %w", err)
	}
	return filepath.Join(currentUser.HomeDir, ".config", "systemd", "user", unitFileName), nil
}

// InstallResult reports where the unit was written and whether systemd
// picked it up.
type InstallResult struct {
	UnitPath string
	Enabled  bool
	Warnings []string
}

// InstallService writes the unit file and asks systemd to enable it.
// systemctl failures degrade to warnings so the unit file itself still lands.
func InstallService(opts UnitOptions, force bool) (InstallResult, error) {
	exePath := strings.TrimSpace(opts.ExecutablePath)
	if exePath == "" {
		resolved, err := os.Executable()
		if err != nil {
			return InstallResult{}, fmt.Errorf("get executable path: %w", err)
		}
		if resolved, err = filepath.EvalSymlinks(resolved); err != nil {
			return InstallResult{}, fmt.Errorf("resolve executable path: %w", err)
		}
		opts.ExecutablePath = resolved
	}

	unitPath, err := UnitPath(opts.System)
	if err != nil {
		return InstallResult{}, err
	}
	if _, statErr := os.Stat(unitPath); statErr == nil && !force {
		return InstallResult{}, fmt.Errorf("service file already exists at %s (use --force to overwrite)", unitPath)
	}
	if err := os.MkdirAll(filepath.Dir(unitPath), 0o755); err != nil {
		return InstallResult{}, fmt.Errorf("create systemd directory: %w", err)
	}
	if err := os.WriteFile(unitPath, []byte(RenderUnit(opts)), 0o644); err != nil {
		return InstallResult{}, fmt.Errorf("write service file: %w", err)
	}

	result := InstallResult{UnitPath: unitPath}
	if err := runSystemctl(opts.System, "daemon-reload"); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to reload systemd: %v", err))
	}
	if err := runSystemctl(opts.System, "enable", "tamerd"); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("failed to enable service: %v", err))
	} else {
		result.Enabled = true
	}
	return result, nil
}

// UninstallService stops and disables the service, then removes the unit file.
func UninstallService(system bool) (string, error) {
	unitPath, err := UnitPath(system)
	if err != nil {
		return "", err
	}

	_ = runSystemctl(system, "stop", "tamerd")
	_ = runSystemctl(system, "disable", "tamerd")

	if err := os.Remove(unitPath); err != nil {
		if os.IsNotExist(err) {
			return unitPath, fmt.Errorf("service not installed at %s", unitPath)
		}
		return unitPath, fmt.Errorf("remove service file: %w", err)
	}
	_ = runSystemctl(system, "daemon-reload")
	return unitPath, nil
}

func runSystemctl(system bool, args ...string) error {
	if !system {
		args = append([]string{"--user"}, args...)
	}
	cmd := exec.Command("systemctl", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("systemctl %s: %v (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
