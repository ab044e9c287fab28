package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/quartetsim/quartet/pkg/device"
	"github.com/quartetsim/quartet/pkg/script"
)

// flagKeys maps device flags to config keys. Flags not listed here
// control the command itself and never reach the device config.
var flagKeys = map[string]string{
	"housing":           "useQubitHousing",
	"ground-plane":      "useGroundPlane",
	"transmission-line": "useTransmissionLine",
	"resonators":        "useResonatorAssembly",
	"flux-lines":        "useFluxLines",
	"qubit-elements":    "useQubitElements",
	"resonator-count":   "resonatorCount",
	"flux-variant":      "fluxLineVariant",
}

// configMap flattens a device config into koanf keys.
func configMap(c device.Config) map[string]interface{} {
	return map[string]interface{}{
		"useQubitHousing":      c.UseQubitHousing,
		"useGroundPlane":       c.UseGroundPlane,
		"useTransmissionLine":  c.UseTransmissionLine,
		"useResonatorAssembly": c.UseResonatorAssembly,
		"useFluxLines":         c.UseFluxLines,
		"useQubitElements":     c.UseQubitElements,
		"resonatorCount":       c.ResonatorCount,
		"fluxLineVariant":      c.FluxLineVariant,
	}
}

// findConfigFile finds the config file to use.
// Priority: explicit path > quartet.yaml > quartet.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("quartet.yaml"); err == nil {
		return "quartet.yaml"
	}
	if _, err := os.Stat("quartet.yml"); err == nil {
		return "quartet.yml"
	}
	return ""
}

// envKey converts QUARTET_USE_GROUND_PLANE to useGroundPlane.
func envKey(s string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(s, "QUARTET_")), "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}

// evalScriptFile runs a device script and returns the config it
// defines. Evaluation errors are joined into one error so callers can
// print them without knowing about the script package.
func evalScriptFile(path string) (*device.Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading script %s: %w", path, err)
	}
	cfg, evalErrs, err := script.NewEngine().Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("script %s: %s", path, strings.Join(msgs, "; "))
	}
	return cfg, nil
}

// loadConfig layers the device configuration and returns it along with
// the config file that was used, if any.
// Precedence (highest to lowest): flags > env vars > script > config file > defaults
func loadConfig(cfgFile, scriptPath string, flags *pflag.FlagSet) (device.Config, string, error) {
	k := koanf.New(".")

	// 1. Defaults: the full four-qubit device.
	if err := k.Load(confmap.Provider(configMap(device.DefaultConfig()), "."), nil); err != nil {
		return device.Config{}, "", fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file.
	configFileUsed := findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return device.Config{}, "", fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Device script.
	if scriptPath != "" {
		scripted, err := evalScriptFile(scriptPath)
		if err != nil {
			return device.Config{}, "", err
		}
		if err := k.Load(confmap.Provider(configMap(*scripted), "."), nil); err != nil {
			return device.Config{}, "", fmt.Errorf("failed to load script config: %w", err)
		}
	}

	// 4. Environment variables (QUARTET_ prefix).
	// Transform: QUARTET_RESONATOR_COUNT -> resonatorCount
	if err := k.Load(env.Provider("QUARTET_", ".", envKey), nil); err != nil {
		return device.Config{}, "", fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags (highest priority - overrides env vars, script, and config file).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return device.Config{}, "", fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg device.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return device.Config{}, "", fmt.Errorf("unable to decode config: %w", err)
	}
	return cfg, configFileUsed, nil
}
